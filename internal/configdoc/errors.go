package configdoc

import (
	"errors"
	"fmt"
)

const (
	fileNotFoundErrorTemplateConstant = "configuration file %s not found or unreadable: %v"
	parseErrorTemplateConstant        = "configuration file %s could not be parsed: %s"
	fileNotFoundMessageConstant       = "configuration file not found"
	parseFailureMessageConstant       = "configuration parse failure"
)

var (
	// ErrFileNotFound matches every FileNotFoundError through errors.Is.
	ErrFileNotFound = errors.New(fileNotFoundMessageConstant)
	// ErrParse matches every ParseError through errors.Is.
	ErrParse = errors.New(parseFailureMessageConstant)
)

// FileNotFoundError reports a configuration path that does not resolve to a readable file.
type FileNotFoundError struct {
	Path  string
	Cause error
}

// Error describes the missing file.
func (failure FileNotFoundError) Error() string {
	return fmt.Sprintf(fileNotFoundErrorTemplateConstant, failure.Path, failure.Cause)
}

// Is reports whether the target is ErrFileNotFound.
func (failure FileNotFoundError) Is(target error) bool {
	return target == ErrFileNotFound
}

// Unwrap exposes the underlying file system error.
func (failure FileNotFoundError) Unwrap() error {
	return failure.Cause
}

// ParseError reports content that is not well-formed after comment and trailing comma removal.
type ParseError struct {
	Path   string
	Reason string
}

// Error describes the parse failure.
func (failure ParseError) Error() string {
	return fmt.Sprintf(parseErrorTemplateConstant, failure.Path, failure.Reason)
}

// Is reports whether the target is ErrParse.
func (failure ParseError) Is(target error) bool {
	return target == ErrParse
}
