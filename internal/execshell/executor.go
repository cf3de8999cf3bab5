package execshell

import (
	"context"
	"errors"
	"os/exec"

	"go.uber.org/zap"
)

const (
	logMessageCommandStartedConstant   = "executing external command"
	logMessageCommandCompletedConstant = "external command completed"
	logMessageCommandFailedConstant    = "external command exited with failure"
	logMessageCommandErroredConstant   = "external command could not be executed"
	logFieldCommandNameConstant        = "command_name"
	logFieldArgumentsConstant          = "arguments"
	logFieldWorkingDirectoryConstant   = "working_directory"
	logFieldExitCodeConstant           = "exit_code"
)

// ShellExecutor runs external commands, logs their lifecycle, and classifies failures.
type ShellExecutor struct {
	logger        *zap.Logger
	runner        CommandRunner
	eventObserver CommandEventObserver
}

// NewShellExecutor constructs a ShellExecutor. A nil observer discards lifecycle events.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner, observer CommandEventObserver) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}
	if observer == nil {
		observer = noopCommandEventObserver{}
	}
	return &ShellExecutor{logger: logger, runner: runner, eventObserver: observer}, nil
}

// Execute runs the command. A non-zero exit code yields CommandFailedError carrying
// the captured output; a command that cannot start yields ToolingUnavailableError when
// the executable is missing and CommandExecutionError otherwise.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	commandFields := []zap.Field{
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Strings(logFieldArgumentsConstant, command.Details.Arguments),
		zap.String(logFieldWorkingDirectoryConstant, command.Details.WorkingDirectory),
	}

	executor.logger.Debug(logMessageCommandStartedConstant, commandFields...)
	executor.eventObserver.CommandStarted(command)

	executionResult, runError := executor.runner.Run(executionContext, command)
	if runError != nil {
		executor.logger.Warn(logMessageCommandErroredConstant, append(commandFields, zap.Error(runError))...)
		executor.eventObserver.CommandExecutionFailed(command, runError)
		if errors.Is(runError, exec.ErrNotFound) {
			return ExecutionResult{}, ToolingUnavailableError{Tool: command.Name, Cause: runError}
		}
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runError}
	}

	executor.eventObserver.CommandCompleted(command, executionResult)

	if executionResult.ExitCode != 0 {
		executor.logger.Debug(logMessageCommandFailedConstant, append(commandFields, zap.Int(logFieldExitCodeConstant, executionResult.ExitCode))...)
		return ExecutionResult{}, CommandFailedError{Command: command, Result: executionResult}
	}

	executor.logger.Debug(logMessageCommandCompletedConstant, append(commandFields, zap.Int(logFieldExitCodeConstant, executionResult.ExitCode))...)
	return executionResult, nil
}
