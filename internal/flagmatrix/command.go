package flagmatrix

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mostlyhumanagency/claude-plugins-sub004/internal/audit"
	"github.com/mostlyhumanagency/claude-plugins-sub004/internal/execshell"
	"github.com/mostlyhumanagency/claude-plugins-sub004/internal/utils/flags"
	pathutils "github.com/mostlyhumanagency/claude-plugins-sub004/internal/utils/path"
)

const (
	commandUseConstant                        = "strict-flags [path]"
	commandShortDescriptionConstant           = "Measure the diagnostics each strictness flag would add"
	commandLongDescriptionConstant            = "strict-flags type-checks the project once per strictness flag with only that flag forced on, counts the resulting diagnostics, and suggests an order for enabling the flags, starting with those that are already clean."
	commandExecutionErrorTemplateConstant     = "strict flag matrix failed: %w"
	renderErrorTemplateConstant               = "failed to render flag matrix report: %w"
	flagFlagNameConstant                      = "flag"
	flagFlagUsageConstant                     = "Compiler flag to measure (repeatable); replaces the configured list"
	commandMaximumPositionalArgumentsConstant = 1
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the strict-flags cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	Executor              CommandExecutor
	ToolLocator           execshell.ToolLocator
	CommandEventsObserver execshell.CommandEventObserver
	WorkingDirectory      string
}

// Build constructs the strict-flags command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(commandMaximumPositionalArgumentsConstant),
	}

	defaultConfiguration := DefaultCommandConfiguration()
	outputValues := flags.BindOutputFlags(
		command,
		flags.OutputFlagValues{Format: defaultConfiguration.Format, Color: defaultConfiguration.Color},
		[]string{string(audit.OutputFormatText), string(audit.OutputFormatYAML)},
	)
	command.Flags().StringArray(flagFlagNameConstant, nil, flagFlagUsageConstant)

	command.RunE = func(command *cobra.Command, arguments []string) error {
		return builder.run(command, arguments, *outputValues)
	}

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string, outputValues flags.OutputFlagValues) error {
	configuration := builder.resolveConfiguration()

	requestedPath := ""
	if len(arguments) > 0 {
		requestedPath = arguments[0]
	}
	configurationPath := pathutils.NewDocumentPathResolver().Resolve(requestedPath, configuration.DefaultPath)

	flagNames := configuration.Flags
	if command.Flags().Changed(flagFlagNameConstant) {
		requestedFlags, _ := command.Flags().GetStringArray(flagFlagNameConstant)
		flagNames = NormalizeFlagNames(requestedFlags)
	}

	if !command.Flags().Changed(flags.FormatFlagName) {
		outputValues.Format = configuration.Format
	}
	if !command.Flags().Changed(flags.ColorFlagName) {
		outputValues.Color = configuration.Color
	}

	outputFormat, formatError := audit.ParseOutputFormat(outputValues.Format)
	if formatError != nil {
		return formatError
	}

	renderer, rendererError := NewRenderer(outputFormat, outputValues.Color)
	if rendererError != nil {
		return rendererError
	}

	logger := builder.resolveLogger()
	executor, executorError := builder.resolveExecutor(logger)
	if executorError != nil {
		return executorError
	}

	service, serviceError := NewService(logger, executor, builder.resolveToolLocator(), CompilerSettings{
		Compiler:              execshell.CommandName(configuration.Compiler),
		CompilerArguments:     configuration.CompilerArguments,
		DiagnosticMarker:      configuration.DiagnosticMarker,
		InvocationErrorMarker: configuration.InvocationErrorMarker,
		WorkingDirectory:      builder.WorkingDirectory,
	})
	if serviceError != nil {
		return serviceError
	}

	report, _, matrixError := service.RunFlagMatrixAudit(command.Context(), configurationPath, flagNames)
	if matrixError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, matrixError)
	}

	if renderError := renderer.Render(command.OutOrStdout(), report); renderError != nil {
		return fmt.Errorf(renderErrorTemplateConstant, renderError)
	}

	if failedFlags := report.ToolingFailures(); len(failedFlags) > 0 {
		return ToolingFailuresError{Flags: failedFlags}
	}

	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration().sanitize()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveExecutor(logger *zap.Logger) (CommandExecutor, error) {
	if builder.Executor != nil {
		return builder.Executor, nil
	}

	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), builder.CommandEventsObserver)
	if creationError != nil {
		return nil, creationError
	}

	return shellExecutor, nil
}

func (builder *CommandBuilder) resolveToolLocator() execshell.ToolLocator {
	if builder.ToolLocator != nil {
		return builder.ToolLocator
	}
	return execshell.NewPathToolLocator()
}
