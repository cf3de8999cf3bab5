package audit

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mostlyhumanagency/claude-plugins-sub004/internal/utils/flags"
	pathutils "github.com/mostlyhumanagency/claude-plugins-sub004/internal/utils/path"
)

const (
	commandUseConstant                        = "audit [path]"
	commandShortDescriptionConstant           = "Audit a tsconfig.json against the built-in check table"
	commandLongDescriptionConstant            = "audit loads a TypeScript compiler configuration (comments and trailing commas allowed), evaluates every check in order, prints one line per check grouped by category, and exits with status 1 when any check reports an error."
	commandExecutionErrorTemplateConstant     = "configuration audit failed: %w"
	severityOverrideErrorTemplateConstant     = "invalid severity overrides: %w"
	renderErrorTemplateConstant               = "failed to render audit report: %w"
	commandMaximumPositionalArgumentsConstant = 1
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the audit cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	DocumentLoader        DocumentLoader
	CheckDefinitions      []CheckDefinition
}

// Build constructs the cobra command for tsconfig audits.
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
		[]string{string(OutputFormatText), string(OutputFormatYAML)},
	)

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
	auditedPath := pathutils.NewDocumentPathResolver().Resolve(requestedPath, configuration.DefaultPath)

	if !command.Flags().Changed(flags.FormatFlagName) {
		outputValues.Format = configuration.Format
	}
	if !command.Flags().Changed(flags.ColorFlagName) {
		outputValues.Color = configuration.Color
	}

	outputFormat, formatError := ParseOutputFormat(outputValues.Format)
	if formatError != nil {
		return formatError
	}

	renderer, rendererError := NewRenderer(outputFormat, outputValues.Color)
	if rendererError != nil {
		return rendererError
	}

	definitions, overrideError := ApplySeverityOverrides(builder.resolveCheckDefinitions(), configuration.SeverityOverrides)
	if overrideError != nil {
		return fmt.Errorf(severityOverrideErrorTemplateConstant, overrideError)
	}

	logger := builder.resolveLogger()
	service := NewService(builder.DocumentLoader, NewAuditor(definitions, logger), logger)

	report, _, auditError := service.RunAudit(auditedPath)
	if auditError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, auditError)
	}

	if renderError := renderer.Render(command.OutOrStdout(), report); renderError != nil {
		return fmt.Errorf(renderErrorTemplateConstant, renderError)
	}

	if report.HasErrors() {
		return FailingFindingsError{ErrorCount: report.Counts.Errors}
	}

	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration().sanitize()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolveCheckDefinitions() []CheckDefinition {
	if len(builder.CheckDefinitions) > 0 {
		return builder.CheckDefinitions
	}
	return DefaultCheckDefinitions()
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
