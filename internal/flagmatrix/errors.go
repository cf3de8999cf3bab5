package flagmatrix

import (
	"errors"
	"fmt"
	"strings"
)

const (
	toolingFailuresErrorTemplateConstant    = "compiler runs failed for %d flag(s): %s"
	toolingFailuresSeparatorConstant        = ", "
	invocationRejectedMessageConstant       = "compiler rejected the invocation"
	invocationRejectedErrorTemplateConstant = "%s for flag %s: %s"
)

// ErrInvocationRejected indicates the compiler refused the options it was given.
var ErrInvocationRejected = errors.New(invocationRejectedMessageConstant)

// InvocationRejectedError carries the compiler's option or configuration
// diagnostic, such as an unknown compiler option.
type InvocationRejectedError struct {
	Flag       string
	Diagnostic string
}

func (failure InvocationRejectedError) Error() string {
	return fmt.Sprintf(invocationRejectedErrorTemplateConstant, invocationRejectedMessageConstant, failure.Flag, failure.Diagnostic)
}

// Is reports whether the target is ErrInvocationRejected.
func (failure InvocationRejectedError) Is(target error) bool {
	return target == ErrInvocationRejected
}

// ToolingFailuresError is returned after the report is printed when one or more
// flags could not be measured.
type ToolingFailuresError struct {
	Flags []string
}

func (failure ToolingFailuresError) Error() string {
	return fmt.Sprintf(toolingFailuresErrorTemplateConstant, len(failure.Flags), strings.Join(failure.Flags, toolingFailuresSeparatorConstant))
}
