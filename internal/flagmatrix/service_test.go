package flagmatrix_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mostlyhumanagency/claude-plugins-sub004/internal/configdoc"
	"github.com/mostlyhumanagency/claude-plugins-sub004/internal/execshell"
	"github.com/mostlyhumanagency/claude-plugins-sub004/internal/flagmatrix"
)

const (
	matrixConfigurationFileNameConstant = "tsconfig.json"
	matrixDiagnosticMarkerConstant      = "error TS"
	matrixDiagnosticLineConstant        = "src/index.ts(1,1): error TS2322: Type 'string' is not assignable to type 'number'."
)

type scriptedResponse struct {
	result execshell.ExecutionResult
	err    error
}

type scriptedExecutor struct {
	responses        map[string]scriptedResponse
	recordedCommands []execshell.ShellCommand
}

func (executor *scriptedExecutor) Execute(_ context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	executor.recordedCommands = append(executor.recordedCommands, command)
	arguments := command.Details.Arguments
	flagArgument := strings.TrimPrefix(arguments[len(arguments)-1], "--")
	response, known := executor.responses[flagArgument]
	if !known {
		return execshell.ExecutionResult{}, nil
	}
	return response.result, response.err
}

type stubToolLocator struct {
	locateError error
	locatedName execshell.CommandName
}

func (locator *stubToolLocator) Locate(name execshell.CommandName) (string, error) {
	locator.locatedName = name
	if locator.locateError != nil {
		return "", locator.locateError
	}
	return "/usr/local/bin/" + string(name), nil
}

func diagnosticsFailure(command string, diagnosticCount int) scriptedResponse {
	lines := make([]string, 0, diagnosticCount)
	for lineIndex := 0; lineIndex < diagnosticCount; lineIndex++ {
		lines = append(lines, matrixDiagnosticLineConstant)
	}
	result := execshell.ExecutionResult{StandardOutput: strings.Join(lines, "\n"), ExitCode: 2}
	return scriptedResponse{
		err: execshell.CommandFailedError{
			Command: execshell.ShellCommand{Name: execshell.CommandName(command)},
			Result:  result,
		},
	}
}

func writeMatrixConfiguration(testInstance *testing.T) string {
	testInstance.Helper()
	configurationPath := filepath.Join(testInstance.TempDir(), matrixConfigurationFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(`{"compilerOptions": {}}`), 0o600))
	return configurationPath
}

func newMatrixService(testInstance *testing.T, executor flagmatrix.CommandExecutor, locator execshell.ToolLocator, compilerArguments []string) *flagmatrix.Service {
	testInstance.Helper()
	service, serviceError := flagmatrix.NewService(zap.NewNop(), executor, locator, flagmatrix.CompilerSettings{
		Compiler:          execshell.CommandTypeScriptCompiler,
		CompilerArguments: compilerArguments,
		DiagnosticMarker:  matrixDiagnosticMarkerConstant,
	})
	require.NoError(testInstance, serviceError)
	return service
}

func TestRunFlagMatrixAuditMeasuresEachFlag(testInstance *testing.T) {
	configurationPath := writeMatrixConfiguration(testInstance)
	executor := &scriptedExecutor{
		responses: map[string]scriptedResponse{
			"A": {result: execshell.ExecutionResult{StandardOutput: "", ExitCode: 0}},
			"B": diagnosticsFailure("tsc", 3),
			"C": {result: execshell.ExecutionResult{ExitCode: 0}},
			"D": diagnosticsFailure("tsc", 1),
		},
	}
	service := newMatrixService(testInstance, executor, &stubToolLocator{}, nil)

	report, exitCode, runError := service.RunFlagMatrixAudit(context.Background(), configurationPath, []string{"A", "B", "C", "D"})
	require.NoError(testInstance, runError)
	require.Equal(testInstance, 0, exitCode)

	require.Equal(testInstance, []flagmatrix.FlagOutcome{
		{Flag: "A", DiagnosticCount: 0},
		{Flag: "B", DiagnosticCount: 3},
		{Flag: "C", DiagnosticCount: 0},
		{Flag: "D", DiagnosticCount: 1},
	}, report.Outcomes)
	require.Equal(testInstance, []string{"A", "C", "D", "B"}, report.SuggestedOrder)

	require.Len(testInstance, executor.recordedCommands, 4)
	require.Equal(testInstance, execshell.CommandTypeScriptCompiler, executor.recordedCommands[0].Name)
	require.Equal(testInstance, []string{"--noEmit", "-p", configurationPath, "--A"}, executor.recordedCommands[0].Details.Arguments)
}

func TestRunFlagMatrixAuditIsolatesToolingFailures(testInstance *testing.T) {
	configurationPath := writeMatrixConfiguration(testInstance)
	executor := &scriptedExecutor{
		responses: map[string]scriptedResponse{
			"silentCrash":  {err: execshell.CommandFailedError{Result: execshell.ExecutionResult{StandardError: "Segmentation fault", ExitCode: 139}}},
			"cannotStart":  {err: execshell.CommandExecutionError{Cause: errors.New("permission denied")}},
			"toolVanished": {err: execshell.ToolingUnavailableError{Tool: execshell.CommandTypeScriptCompiler, Cause: errors.New("executable file not found in $PATH")}},
			"noisy":        diagnosticsFailure("tsc", 4),
		},
	}
	service := newMatrixService(testInstance, executor, &stubToolLocator{}, nil)

	report, exitCode, runError := service.RunFlagMatrixAudit(context.Background(), configurationPath, []string{"silentCrash", "noisy", "cannotStart", "toolVanished", "clean"})
	require.NoError(testInstance, runError)
	require.Equal(testInstance, 1, exitCode)
	require.Len(testInstance, executor.recordedCommands, 5)

	require.Equal(testInstance, []string{"silentCrash", "cannotStart", "toolVanished"}, report.ToolingFailures())
	require.Equal(testInstance, []string{"clean", "noisy", "silentCrash", "cannotStart", "toolVanished"}, report.SuggestedOrder)

	var commandFailure execshell.CommandFailedError
	require.True(testInstance, errors.As(report.Outcomes[0].ToolingError, &commandFailure))
	require.Equal(testInstance, 139, commandFailure.Result.ExitCode)
	require.ErrorIs(testInstance, report.Outcomes[3].ToolingError, execshell.ErrToolingUnavailable)
	require.Equal(testInstance, flagmatrix.FlagOutcome{Flag: "clean", DiagnosticCount: 0}, report.Outcomes[4])
}

func TestRunFlagMatrixAuditReportsRejectedInvocations(testInstance *testing.T) {
	configurationPath := writeMatrixConfiguration(testInstance)
	unknownOptionResult := execshell.ExecutionResult{
		StandardOutput: "error TS5023: Unknown compiler option '--strictNulChecks'.",
		ExitCode:       1,
	}
	executor := &scriptedExecutor{
		responses: map[string]scriptedResponse{
			"strictNulChecks":  {err: execshell.CommandFailedError{Result: unknownOptionResult}},
			"strictNullChecks": diagnosticsFailure("tsc", 2),
		},
	}
	service, serviceError := flagmatrix.NewService(zap.NewNop(), executor, &stubToolLocator{}, flagmatrix.CompilerSettings{
		Compiler:              execshell.CommandTypeScriptCompiler,
		DiagnosticMarker:      matrixDiagnosticMarkerConstant,
		InvocationErrorMarker: "error TS5",
	})
	require.NoError(testInstance, serviceError)

	report, exitCode, runError := service.RunFlagMatrixAudit(context.Background(), configurationPath, []string{"strictNulChecks", "strictNullChecks"})
	require.NoError(testInstance, runError)
	require.Equal(testInstance, 1, exitCode)

	require.Equal(testInstance, []string{"strictNulChecks"}, report.ToolingFailures())
	require.Equal(testInstance, []string{"strictNullChecks", "strictNulChecks"}, report.SuggestedOrder)

	var rejection flagmatrix.InvocationRejectedError
	require.True(testInstance, errors.As(report.Outcomes[0].ToolingError, &rejection))
	require.Equal(testInstance, "strictNulChecks", rejection.Flag)
	require.Equal(testInstance, "error TS5023: Unknown compiler option '--strictNulChecks'.", rejection.Diagnostic)
	require.ErrorIs(testInstance, report.Outcomes[0].ToolingError, flagmatrix.ErrInvocationRejected)
	require.Equal(testInstance, 2, report.Outcomes[1].DiagnosticCount)
}

func TestRunFlagMatrixAuditDisablesCompilerColor(testInstance *testing.T) {
	configurationPath := writeMatrixConfiguration(testInstance)
	executor := &scriptedExecutor{}
	service := newMatrixService(testInstance, executor, &stubToolLocator{}, nil)

	_, _, runError := service.RunFlagMatrixAudit(context.Background(), configurationPath, []string{"alwaysStrict"})
	require.NoError(testInstance, runError)

	require.Len(testInstance, executor.recordedCommands, 1)
	require.Equal(testInstance, map[string]string{"NO_COLOR": "1", "FORCE_COLOR": "0"}, executor.recordedCommands[0].Details.EnvironmentVariables)
}

func TestRunFlagMatrixAuditFatalConditions(testInstance *testing.T) {
	configurationPath := writeMatrixConfiguration(testInstance)

	testCases := []struct {
		name              string
		configurationPath string
		locator           *stubToolLocator
		expectedError     error
	}{
		{
			name:              "missing_compiler",
			configurationPath: configurationPath,
			locator:           &stubToolLocator{locateError: execshell.ToolingUnavailableError{Tool: execshell.CommandTypeScriptCompiler, Cause: errors.New("executable file not found in $PATH")}},
			expectedError:     execshell.ErrToolingUnavailable,
		},
		{
			name:              "missing_configuration",
			configurationPath: filepath.Join(testInstance.TempDir(), "absent.json"),
			locator:           &stubToolLocator{},
			expectedError:     configdoc.ErrFileNotFound,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			executor := &scriptedExecutor{}
			service := newMatrixService(subTest, executor, testCase.locator, nil)

			report, exitCode, runError := service.RunFlagMatrixAudit(context.Background(), testCase.configurationPath, flagmatrix.DefaultStrictnessFlags())
			require.Error(subTest, runError)
			require.True(subTest, errors.Is(runError, testCase.expectedError))
			require.Equal(subTest, 1, exitCode)
			require.Empty(subTest, report.Outcomes)
			require.Empty(subTest, executor.recordedCommands)
		})
	}
}

func TestRunFlagMatrixAuditPrefixesCompilerArguments(testInstance *testing.T) {
	configurationPath := writeMatrixConfiguration(testInstance)
	executor := &scriptedExecutor{}
	locator := &stubToolLocator{}
	service, serviceError := flagmatrix.NewService(zap.NewNop(), executor, locator, flagmatrix.CompilerSettings{
		Compiler:          execshell.CommandName("npx"),
		CompilerArguments: []string{"tsc"},
		DiagnosticMarker:  matrixDiagnosticMarkerConstant,
	})
	require.NoError(testInstance, serviceError)

	_, _, runError := service.RunFlagMatrixAudit(context.Background(), configurationPath, []string{"--strictNullChecks", "strictNullChecks"})
	require.NoError(testInstance, runError)

	require.Equal(testInstance, execshell.CommandName("npx"), locator.locatedName)
	require.Len(testInstance, executor.recordedCommands, 1)
	require.Equal(testInstance, []string{"tsc", "--noEmit", "-p", configurationPath, "--strictNullChecks"}, executor.recordedCommands[0].Details.Arguments)
}

func TestNewServiceValidatesDependencies(testInstance *testing.T) {
	validSettings := flagmatrix.CompilerSettings{Compiler: execshell.CommandTypeScriptCompiler, DiagnosticMarker: matrixDiagnosticMarkerConstant}

	testCases := []struct {
		name          string
		executor      flagmatrix.CommandExecutor
		locator       execshell.ToolLocator
		settings      flagmatrix.CompilerSettings
		expectedError error
	}{
		{name: "missing_executor", locator: &stubToolLocator{}, settings: validSettings, expectedError: flagmatrix.ErrExecutorNotConfigured},
		{name: "missing_locator", executor: &scriptedExecutor{}, settings: validSettings, expectedError: flagmatrix.ErrToolLocatorNotConfigured},
		{name: "missing_compiler", executor: &scriptedExecutor{}, locator: &stubToolLocator{}, settings: flagmatrix.CompilerSettings{DiagnosticMarker: matrixDiagnosticMarkerConstant}, expectedError: flagmatrix.ErrCompilerNotConfigured},
		{name: "missing_marker", executor: &scriptedExecutor{}, locator: &stubToolLocator{}, settings: flagmatrix.CompilerSettings{Compiler: execshell.CommandTypeScriptCompiler}, expectedError: flagmatrix.ErrDiagnosticMarkerNotConfigured},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			_, serviceError := flagmatrix.NewService(nil, testCase.executor, testCase.locator, testCase.settings)
			require.ErrorIs(subTest, serviceError, testCase.expectedError)
		})
	}
}
