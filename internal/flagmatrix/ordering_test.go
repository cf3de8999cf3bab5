package flagmatrix_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mostlyhumanagency/claude-plugins-sub004/internal/flagmatrix"
)

func TestSuggestRemediationOrder(testInstance *testing.T) {
	toolingFailure := errors.New("compiler crashed")

	testCases := []struct {
		name          string
		outcomes      []flagmatrix.FlagOutcome
		expectedOrder []string
	}{
		{
			name: "zero_counts_first_then_ascending",
			outcomes: []flagmatrix.FlagOutcome{
				{Flag: "A", DiagnosticCount: 0},
				{Flag: "B", DiagnosticCount: 3},
				{Flag: "C", DiagnosticCount: 0},
				{Flag: "D", DiagnosticCount: 1},
			},
			expectedOrder: []string{"A", "C", "D", "B"},
		},
		{
			name: "ties_keep_declared_order",
			outcomes: []flagmatrix.FlagOutcome{
				{Flag: "first", DiagnosticCount: 5},
				{Flag: "second", DiagnosticCount: 2},
				{Flag: "third", DiagnosticCount: 5},
				{Flag: "fourth", DiagnosticCount: 2},
			},
			expectedOrder: []string{"second", "fourth", "first", "third"},
		},
		{
			name: "tooling_failures_last_in_declared_order",
			outcomes: []flagmatrix.FlagOutcome{
				{Flag: "broken", ToolingError: toolingFailure},
				{Flag: "noisy", DiagnosticCount: 7},
				{Flag: "alsoBroken", ToolingError: toolingFailure},
				{Flag: "clean", DiagnosticCount: 0},
			},
			expectedOrder: []string{"clean", "noisy", "broken", "alsoBroken"},
		},
		{
			name:          "empty_matrix",
			outcomes:      nil,
			expectedOrder: []string{},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			require.Equal(subTest, testCase.expectedOrder, flagmatrix.SuggestRemediationOrder(testCase.outcomes))
		})
	}
}

func TestCountDiagnosticLines(testInstance *testing.T) {
	testCases := []struct {
		name          string
		output        string
		marker        string
		expectedCount int
	}{
		{
			name:          "counts_matching_lines",
			output:        "src/a.ts(1,5): error TS7006: Parameter 'x' implicitly has an 'any' type.\nsrc/b.ts(3,1): error TS2322: Type 'string' is not assignable.\nFound 2 errors.",
			marker:        "error TS",
			expectedCount: 2,
		},
		{
			name:          "no_output",
			output:        "",
			marker:        "error TS",
			expectedCount: 0,
		},
		{
			name:          "empty_marker_matches_nothing",
			output:        "error TS1000",
			marker:        "",
			expectedCount: 0,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			require.Equal(subTest, testCase.expectedCount, flagmatrix.CountDiagnosticLines(testCase.output, testCase.marker))
		})
	}
}

func TestNormalizeFlagNames(testInstance *testing.T) {
	normalized := flagmatrix.NormalizeFlagNames([]string{" --strictNullChecks", "noImplicitAny", "", "strictNullChecks", "  "})
	require.Equal(testInstance, []string{"strictNullChecks", "noImplicitAny"}, normalized)
}

func TestFirstLineContaining(testInstance *testing.T) {
	output := "src/a.ts(1,1): error TS2322: mismatch\n  error TS5023: Unknown compiler option '--bogus'.  \nFound 2 errors."

	require.Equal(testInstance, "error TS5023: Unknown compiler option '--bogus'.", flagmatrix.FirstLineContaining(output, "error TS5"))
	require.Empty(testInstance, flagmatrix.FirstLineContaining(output, "error TS9"))
	require.Empty(testInstance, flagmatrix.FirstLineContaining(output, ""))
}
