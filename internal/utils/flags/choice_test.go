package flags

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestFormatChoiceUsage(t *testing.T) {
	testCases := []struct {
		name           string
		defaultChoice  string
		choices        []string
		description    string
		expectedOutput string
	}{
		{
			name:           "DefaultFirstChoice",
			defaultChoice:  "local",
			choices:        []string{"local", "user"},
			description:    "Write configuration to LOCAL or user scope.",
			expectedOutput: "`<LOCAL|user>` Write configuration to LOCAL or user scope.",
		},
		{
			name:           "DefaultSecondChoice",
			defaultChoice:  "user",
			choices:        []string{"local", "user"},
			description:    "Persist configuration for the selected scope.",
			expectedOutput: "`<local|USER>` Persist configuration for the selected scope.",
		},
		{
			name:           "EmptyDescription",
			defaultChoice:  "alpha",
			choices:        []string{"alpha", "beta"},
			description:    "",
			expectedOutput: "`<ALPHA|beta>`",
		},
		{
			name:           "DuplicateChoicesIgnored",
			defaultChoice:  "beta",
			choices:        []string{"beta", "beta", "alpha", "alpha"},
			description:    "Select between options.",
			expectedOutput: "`<BETA|alpha>` Select between options.",
		},
		{
			name:           "WhitespaceTrimmed",
			defaultChoice:  "primary",
			choices:        []string{" primary ", " secondary "},
			description:    "Pick a palette.",
			expectedOutput: "`<PRIMARY|secondary>` Pick a palette.",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			actual := FormatChoiceUsage(testCase.defaultChoice, testCase.choices, testCase.description)
			require.Equal(t, testCase.expectedOutput, actual)
		})
	}
}

func TestAddChoiceFlagValidatesValues(t *testing.T) {
	testCases := []struct {
		name          string
		arguments     []string
		expectedValue string
		expectError   bool
	}{
		{name: "DefaultApplied", arguments: []string{}, expectedValue: "text"},
		{name: "ExplicitChoice", arguments: []string{"--format", "yaml"}, expectedValue: "yaml"},
		{name: "CaseInsensitive", arguments: []string{"--format=YAML"}, expectedValue: "yaml"},
		{name: "UnknownChoiceRejected", arguments: []string{"--format", "xml"}, expectedValue: "text", expectError: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			command := &cobra.Command{}

			var formatValue string
			AddChoiceFlag(command.Flags(), &formatValue, "format", "text", []string{"text", "yaml"}, "Report output format")

			parseError := command.ParseFlags(testCase.arguments)
			if testCase.expectError {
				require.Error(t, parseError)
			} else {
				require.NoError(t, parseError)
			}
			require.Equal(t, testCase.expectedValue, formatValue)
		})
	}
}
