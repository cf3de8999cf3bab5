package ui

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mostlyhumanagency/claude-plugins-sub004/internal/execshell"
)

const (
	commandStartedMessageTemplateConstant          = "Running %s"
	commandCompletedMessageTemplateConstant        = "Completed %s"
	commandExitCodeMessageTemplateConstant         = "%s exited with code %d"
	commandExecutionFailureMessageTemplateConstant = "%s failed: %s"
	workingDirectorySuffixTemplateConstant         = " (in %s)"
	outputExcerptSuffixTemplateConstant            = ": %s"
	unknownFailureMessageConstant                  = "unknown error"
	lineSeparatorConstant                          = "\n"
)

// CommandEventFormatter builds human-readable messages for command lifecycle events.
type CommandEventFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandEventFormatter) BuildStartedMessage(command execshell.ShellCommand) string {
	return fmt.Sprintf(commandStartedMessageTemplateConstant, formatter.formatCommandLabel(command))
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandEventFormatter) BuildSuccessMessage(command execshell.ShellCommand) string {
	return fmt.Sprintf(commandCompletedMessageTemplateConstant, formatter.formatCommandLabel(command))
}

// BuildExitCodeMessage formats the message for a non-zero exit, quoting the first
// non-empty output line. Type checkers print one line per diagnostic, so only the
// first one is shown.
func (formatter CommandEventFormatter) BuildExitCodeMessage(command execshell.ShellCommand, result execshell.ExecutionResult) string {
	baseMessage := fmt.Sprintf(commandExitCodeMessageTemplateConstant, formatter.formatCommandLabel(command), result.ExitCode)
	excerpt := firstNonEmptyLine(result.StandardError)
	if len(excerpt) == 0 {
		excerpt = firstNonEmptyLine(result.StandardOutput)
	}
	if len(excerpt) == 0 {
		return baseMessage
	}
	return baseMessage + fmt.Sprintf(outputExcerptSuffixTemplateConstant, excerpt)
}

// BuildExecutionFailureMessage formats the message describing a command that could not run.
func (formatter CommandEventFormatter) BuildExecutionFailureMessage(command execshell.ShellCommand, failure error) string {
	failureMessage := unknownFailureMessageConstant
	if failure != nil {
		failureMessage = failure.Error()
	}
	return fmt.Sprintf(commandExecutionFailureMessageTemplateConstant, formatter.formatCommandLabel(command), failureMessage)
}

func (formatter CommandEventFormatter) formatCommandLabel(command execshell.ShellCommand) string {
	workingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(workingDirectory) == 0 {
		return command.Label()
	}
	return command.Label() + fmt.Sprintf(workingDirectorySuffixTemplateConstant, workingDirectory)
}

func firstNonEmptyLine(output string) string {
	for _, line := range strings.Split(output, lineSeparatorConstant) {
		if trimmed := strings.TrimSpace(line); len(trimmed) > 0 {
			return trimmed
		}
	}
	return ""
}

// ConsoleCommandEventLogger renders command lifecycle events using a zap logger configured for human-readable output.
type ConsoleCommandEventLogger struct {
	logger    *zap.Logger
	formatter CommandEventFormatter
}

// NewConsoleCommandEventLogger constructs a console event logger backed by the provided zap logger.
func NewConsoleCommandEventLogger(logger *zap.Logger) *ConsoleCommandEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleCommandEventLogger{logger: logger, formatter: CommandEventFormatter{}}
}

// CommandStarted implements execshell.CommandEventObserver.
func (eventLogger *ConsoleCommandEventLogger) CommandStarted(command execshell.ShellCommand) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Info(eventLogger.formatter.BuildStartedMessage(command))
}

// CommandCompleted implements execshell.CommandEventObserver.
func (eventLogger *ConsoleCommandEventLogger) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if eventLogger == nil {
		return
	}
	if result.ExitCode == 0 {
		eventLogger.logger.Info(eventLogger.formatter.BuildSuccessMessage(command))
		return
	}
	eventLogger.logger.Warn(eventLogger.formatter.BuildExitCodeMessage(command, result))
}

// CommandExecutionFailed implements execshell.CommandEventObserver.
func (eventLogger *ConsoleCommandEventLogger) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Error(eventLogger.formatter.BuildExecutionFailureMessage(command, failure))
}
