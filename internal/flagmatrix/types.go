package flagmatrix

const (
	exitCodeSuccessConstant = 0
	exitCodeFailureConstant = 1
)

// FlagOutcome records the result of one isolated compiler run.
// ToolingError is set when the run could not be measured; DiagnosticCount is
// meaningful only when ToolingError is nil.
type FlagOutcome struct {
	Flag            string
	DiagnosticCount int
	ToolingError    error
}

// Measured reports whether the run produced a diagnostic count.
func (outcome FlagOutcome) Measured() bool {
	return outcome.ToolingError == nil
}

// Report holds the per-flag outcomes in declared order and the suggested remediation order.
type Report struct {
	SourcePath     string
	Compiler       string
	Outcomes       []FlagOutcome
	SuggestedOrder []string
}

// ToolingFailures returns the flags whose runs could not be measured, in declared order.
func (report Report) ToolingFailures() []string {
	failedFlags := make([]string, 0)
	for _, outcome := range report.Outcomes {
		if !outcome.Measured() {
			failedFlags = append(failedFlags, outcome.Flag)
		}
	}
	return failedFlags
}

// ExitCode returns 1 when any flag run failed for tooling reasons and 0 otherwise.
func (report Report) ExitCode() int {
	if len(report.ToolingFailures()) > 0 {
		return exitCodeFailureConstant
	}
	return exitCodeSuccessConstant
}
