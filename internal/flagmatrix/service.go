package flagmatrix

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mostlyhumanagency/claude-plugins-sub004/internal/configdoc"
	"github.com/mostlyhumanagency/claude-plugins-sub004/internal/execshell"
)

const (
	noEmitArgumentConstant               = "--noEmit"
	projectArgumentConstant              = "-p"
	flagArgumentPrefixConstant           = "--"
	silentFailureTemplateConstant        = "compiler exited with code %d without reporting diagnostics: %w"
	noColorEnvironmentKeyConstant        = "NO_COLOR"
	noColorEnvironmentValueConstant      = "1"
	forceColorEnvironmentKeyConstant     = "FORCE_COLOR"
	forceColorEnvironmentValueConstant   = "0"
	executorNotConfiguredMessageConstant = "flag matrix requires a command executor"
	locatorNotConfiguredMessageConstant  = "flag matrix requires a tool locator"
	compilerNotConfiguredMessageConstant = "flag matrix requires a compiler executable name"
	markerNotConfiguredMessageConstant   = "flag matrix requires a diagnostic marker"
	logMessageFlagMeasuredConstant       = "strictness flag measured"
	logMessageFlagToolingFailureConstant = "strictness flag could not be measured"
	logMessageMatrixCompletedConstant    = "flag matrix audit completed"
	logMessageMatrixAbortedConstant      = "flag matrix audit aborted"
	logFieldFlagConstant                 = "flag"
	logFieldDiagnosticCountConstant      = "diagnostics"
	logFieldSourcePathConstant           = "source_path"
	logFieldCompilerConstant             = "compiler"
	logFieldFlagCountConstant            = "flags"
	logFieldToolingFailureCountConstant  = "tooling_failures"
	logFieldExitCodeConstant             = "exit_code"
)

var (
	// ErrExecutorNotConfigured indicates a missing command executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
	// ErrToolLocatorNotConfigured indicates a missing tool locator.
	ErrToolLocatorNotConfigured = errors.New(locatorNotConfiguredMessageConstant)
	// ErrCompilerNotConfigured indicates an empty compiler executable name.
	ErrCompilerNotConfigured = errors.New(compilerNotConfiguredMessageConstant)
	// ErrDiagnosticMarkerNotConfigured indicates an empty diagnostic marker.
	ErrDiagnosticMarkerNotConfigured = errors.New(markerNotConfiguredMessageConstant)
)

// CommandExecutor runs a single compiler invocation.
type CommandExecutor interface {
	Execute(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error)
}

// CompilerSettings describes how the type checker is launched and how diagnostics are recognized.
// Output lines containing InvocationErrorMarker mean the compiler rejected the
// invocation itself, so the flag is reported as a tooling error; an empty marker
// disables that check.
type CompilerSettings struct {
	Compiler              execshell.CommandName
	CompilerArguments     []string
	DiagnosticMarker      string
	InvocationErrorMarker string
	WorkingDirectory      string
}

// Service runs the strictness flag matrix.
type Service struct {
	logger   *zap.Logger
	executor CommandExecutor
	locator  execshell.ToolLocator
	settings CompilerSettings
}

// NewService validates dependencies and constructs a Service.
func NewService(logger *zap.Logger, executor CommandExecutor, locator execshell.ToolLocator, settings CompilerSettings) (*Service, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	if locator == nil {
		return nil, ErrToolLocatorNotConfigured
	}
	if len(settings.Compiler) == 0 {
		return nil, ErrCompilerNotConfigured
	}
	if len(settings.DiagnosticMarker) == 0 {
		return nil, ErrDiagnosticMarkerNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	duplicatedSettings := settings
	duplicatedSettings.CompilerArguments = append([]string{}, settings.CompilerArguments...)
	return &Service{logger: logger, executor: executor, locator: locator, settings: duplicatedSettings}, nil
}

// RunFlagMatrixAudit type-checks configurationPath once per flag with only that flag
// forced on. A missing configuration file or compiler is fatal and no flag is run;
// a failure of an individual run is recorded on that flag and the matrix continues.
func (service *Service) RunFlagMatrixAudit(executionContext context.Context, configurationPath string, flagNames []string) (Report, int, error) {
	if resolveError := configdoc.EnsureReadableFile(configurationPath); resolveError != nil {
		service.logger.Warn(logMessageMatrixAbortedConstant, zap.String(logFieldSourcePathConstant, configurationPath), zap.Error(resolveError))
		return Report{}, exitCodeFailureConstant, resolveError
	}

	if _, locateError := service.locator.Locate(service.settings.Compiler); locateError != nil {
		service.logger.Warn(logMessageMatrixAbortedConstant, zap.String(logFieldCompilerConstant, string(service.settings.Compiler)), zap.Error(locateError))
		return Report{}, exitCodeFailureConstant, locateError
	}

	report := Report{
		SourcePath: configurationPath,
		Compiler:   string(service.settings.Compiler),
		Outcomes:   make([]FlagOutcome, 0, len(flagNames)),
	}

	for _, flagName := range NormalizeFlagNames(flagNames) {
		if contextError := executionContext.Err(); contextError != nil {
			return Report{}, exitCodeFailureConstant, contextError
		}
		report.Outcomes = append(report.Outcomes, service.measureFlag(executionContext, configurationPath, flagName))
	}

	report.SuggestedOrder = SuggestRemediationOrder(report.Outcomes)
	exitCode := report.ExitCode()

	service.logger.Info(
		logMessageMatrixCompletedConstant,
		zap.String(logFieldSourcePathConstant, configurationPath),
		zap.Int(logFieldFlagCountConstant, len(report.Outcomes)),
		zap.Int(logFieldToolingFailureCountConstant, len(report.ToolingFailures())),
		zap.Int(logFieldExitCodeConstant, exitCode),
	)

	return report, exitCode, nil
}

func (service *Service) measureFlag(executionContext context.Context, configurationPath string, flagName string) FlagOutcome {
	command := service.buildCommand(configurationPath, flagName)

	executionResult, executionError := service.executor.Execute(executionContext, command)
	if executionError != nil {
		var commandFailure execshell.CommandFailedError
		if !errors.As(executionError, &commandFailure) {
			return service.recordToolingFailure(flagName, executionError)
		}
		executionResult = commandFailure.Result
	}

	output := executionResult.CombinedOutput()
	if rejectionLine := FirstLineContaining(output, service.settings.InvocationErrorMarker); len(rejectionLine) > 0 {
		return service.recordToolingFailure(flagName, InvocationRejectedError{Flag: flagName, Diagnostic: rejectionLine})
	}

	diagnosticCount := CountDiagnosticLines(output, service.settings.DiagnosticMarker)
	if executionError != nil && diagnosticCount == 0 {
		return service.recordToolingFailure(flagName, fmt.Errorf(silentFailureTemplateConstant, executionResult.ExitCode, executionError))
	}
	return service.recordMeasurement(flagName, diagnosticCount)
}

func (service *Service) buildCommand(configurationPath string, flagName string) execshell.ShellCommand {
	arguments := append([]string{}, service.settings.CompilerArguments...)
	arguments = append(arguments, noEmitArgumentConstant, projectArgumentConstant, configurationPath, flagArgumentPrefixConstant+flagName)
	return execshell.ShellCommand{
		Name: service.settings.Compiler,
		Details: execshell.CommandDetails{
			Arguments:        arguments,
			WorkingDirectory: service.settings.WorkingDirectory,
			EnvironmentVariables: map[string]string{
				noColorEnvironmentKeyConstant:    noColorEnvironmentValueConstant,
				forceColorEnvironmentKeyConstant: forceColorEnvironmentValueConstant,
			},
		},
	}
}

func (service *Service) recordMeasurement(flagName string, diagnosticCount int) FlagOutcome {
	service.logger.Debug(logMessageFlagMeasuredConstant, zap.String(logFieldFlagConstant, flagName), zap.Int(logFieldDiagnosticCountConstant, diagnosticCount))
	return FlagOutcome{Flag: flagName, DiagnosticCount: diagnosticCount}
}

func (service *Service) recordToolingFailure(flagName string, toolingError error) FlagOutcome {
	service.logger.Warn(logMessageFlagToolingFailureConstant, zap.String(logFieldFlagConstant, flagName), zap.Error(toolingError))
	return FlagOutcome{Flag: flagName, ToolingError: toolingError}
}
