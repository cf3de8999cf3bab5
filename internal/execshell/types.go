package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	commandTypeScriptCompilerConstant          = "tsc"
	loggerNotConfiguredMessageConstant         = "shell executor requires a logger"
	commandRunnerNotConfiguredMessageConstant  = "shell executor requires a command runner"
	toolingUnavailableMessageConstant          = "required external tool is unavailable"
	commandFailedErrorTemplateConstant         = "%s exited with code %d%s"
	commandExecutionErrorTemplateConstant      = "%s could not be executed: %v"
	toolingUnavailableErrorTemplateConstant    = "%s is not available: %v"
	commandFailedStandardErrorTemplateConstant = ": %s"
	commandLabelSeparatorConstant              = " "
)

// CommandName identifies an executable by the name used to launch it.
type CommandName string

// CommandTypeScriptCompiler is the default type-checking executable.
const CommandTypeScriptCompiler CommandName = CommandName(commandTypeScriptCompilerConstant)

// CommandDetails describes the arguments and environment of a tool invocation.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
}

// ShellCommand combines an executable name with its invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// Label renders the command the way a user would type it.
func (command ShellCommand) Label() string {
	parts := append([]string{string(command.Name)}, command.Details.Arguments...)
	return strings.Join(parts, commandLabelSeparatorConstant)
}

// ExecutionResult captures the observable output of a finished command.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CombinedOutput joins standard output and standard error.
func (result ExecutionResult) CombinedOutput() string {
	if len(result.StandardError) == 0 {
		return result.StandardOutput
	}
	if len(result.StandardOutput) == 0 {
		return result.StandardError
	}
	return result.StandardOutput + "\n" + result.StandardError
}

// CommandRunner executes shell commands.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// ToolLocator resolves an executable name to a launchable path.
type ToolLocator interface {
	Locate(name CommandName) (string, error)
}

var (
	// ErrLoggerNotConfigured indicates a missing logger dependency.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrCommandRunnerNotConfigured indicates a missing runner dependency.
	ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)
	// ErrToolingUnavailable matches every ToolingUnavailableError through errors.Is.
	ErrToolingUnavailable = errors.New(toolingUnavailableMessageConstant)
)

// CommandFailedError reports a command that ran and exited with a non-zero code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command.
func (failure CommandFailedError) Error() string {
	standardErrorSuffix := ""
	if trimmed := strings.TrimSpace(failure.Result.StandardError); len(trimmed) > 0 {
		standardErrorSuffix = fmt.Sprintf(commandFailedStandardErrorTemplateConstant, trimmed)
	}
	return fmt.Sprintf(commandFailedErrorTemplateConstant, failure.Command.Label(), failure.Result.ExitCode, standardErrorSuffix)
}

// CommandExecutionError reports a command that could not be started or awaited.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (failure CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, failure.Command.Label(), failure.Cause)
}

// Unwrap exposes the underlying cause.
func (failure CommandExecutionError) Unwrap() error {
	return failure.Cause
}

// ToolingUnavailableError reports an executable that cannot be located or launched.
type ToolingUnavailableError struct {
	Tool  CommandName
	Cause error
}

// Error describes the unavailable tool.
func (failure ToolingUnavailableError) Error() string {
	return fmt.Sprintf(toolingUnavailableErrorTemplateConstant, failure.Tool, failure.Cause)
}

// Is reports whether the target is ErrToolingUnavailable.
func (failure ToolingUnavailableError) Is(target error) bool {
	return target == ErrToolingUnavailable
}

// Unwrap exposes the underlying cause.
func (failure ToolingUnavailableError) Unwrap() error {
	return failure.Cause
}
