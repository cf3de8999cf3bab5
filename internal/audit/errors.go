package audit

import "fmt"

const failingFindingsErrorTemplateConstant = "configuration audit reported %d error finding(s)"

// FailingFindingsError is returned by the audit command after the report is
// printed when at least one finding carries SeverityError.
type FailingFindingsError struct {
	ErrorCount int
}

func (failure FailingFindingsError) Error() string {
	return fmt.Sprintf(failingFindingsErrorTemplateConstant, failure.ErrorCount)
}
