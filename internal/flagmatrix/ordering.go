package flagmatrix

import (
	"sort"
	"strings"
)

// SuggestRemediationOrder lists zero-diagnostic flags first in declared order,
// then the remaining measured flags by ascending diagnostic count with ties kept
// in declared order, and finally the flags that could not be measured.
func SuggestRemediationOrder(outcomes []FlagOutcome) []string {
	cleanFlags := make([]string, 0, len(outcomes))
	pendingOutcomes := make([]FlagOutcome, 0, len(outcomes))
	unmeasuredFlags := make([]string, 0)

	for _, outcome := range outcomes {
		switch {
		case !outcome.Measured():
			unmeasuredFlags = append(unmeasuredFlags, outcome.Flag)
		case outcome.DiagnosticCount == 0:
			cleanFlags = append(cleanFlags, outcome.Flag)
		default:
			pendingOutcomes = append(pendingOutcomes, outcome)
		}
	}

	sort.SliceStable(pendingOutcomes, func(leftIndex int, rightIndex int) bool {
		return pendingOutcomes[leftIndex].DiagnosticCount < pendingOutcomes[rightIndex].DiagnosticCount
	})

	suggestedOrder := make([]string, 0, len(outcomes))
	suggestedOrder = append(suggestedOrder, cleanFlags...)
	for _, outcome := range pendingOutcomes {
		suggestedOrder = append(suggestedOrder, outcome.Flag)
	}
	return append(suggestedOrder, unmeasuredFlags...)
}

// CountDiagnosticLines counts the lines of output that contain marker.
func CountDiagnosticLines(output string, marker string) int {
	if len(marker) == 0 {
		return 0
	}
	diagnosticCount := 0
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, marker) {
			diagnosticCount++
		}
	}
	return diagnosticCount
}

// FirstLineContaining returns the first line of output that contains marker,
// trimmed, or an empty string when none does or marker is empty.
func FirstLineContaining(output string, marker string) string {
	if len(marker) == 0 {
		return ""
	}
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, marker) {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

// NormalizeFlagNames trims whitespace and leading dashes, drops blanks, and
// removes duplicates while keeping the first occurrence.
func NormalizeFlagNames(flagNames []string) []string {
	normalized := make([]string, 0, len(flagNames))
	seen := make(map[string]struct{}, len(flagNames))
	for _, flagName := range flagNames {
		trimmed := strings.TrimLeft(strings.TrimSpace(flagName), "-")
		if len(trimmed) == 0 {
			continue
		}
		if _, duplicate := seen[trimmed]; duplicate {
			continue
		}
		seen[trimmed] = struct{}{}
		normalized = append(normalized, trimmed)
	}
	return normalized
}
