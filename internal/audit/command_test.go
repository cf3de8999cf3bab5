package audit_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mostlyhumanagency/claude-plugins-sub004/internal/audit"
	"github.com/mostlyhumanagency/claude-plugins-sub004/internal/configdoc"
)

const (
	commandConfigurationFileNameConstant = "tsconfig.json"
	commandSummaryPrefixConstant         = "Summary: "
)

func writeCommandConfiguration(testInstance *testing.T, content string) string {
	testInstance.Helper()
	configurationPath := filepath.Join(testInstance.TempDir(), commandConfigurationFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(content), 0o600))
	return configurationPath
}

func TestAuditCommandRendersReportAndExitStatus(testInstance *testing.T) {
	cleanPath := writeCommandConfiguration(testInstance, auditCleanConfigurationConstant)
	emptyPath := writeCommandConfiguration(testInstance, auditEmptyConfigurationConstant)

	testCases := []struct {
		name               string
		arguments          []string
		configuration      audit.CommandConfiguration
		expectFailing      bool
		expectedFragments  []string
		expectedErrorCount int
	}{
		{
			name:              "clean_configuration_from_argument",
			arguments:         []string{cleanPath},
			expectedFragments: []string{"[OK] strict is enabled", commandSummaryPrefixConstant + "0 error(s), 0 warning(s), 0 info, 19 passed"},
		},
		{
			name:               "failing_configuration_from_configured_default_path",
			arguments:          []string{},
			configuration:      audit.CommandConfiguration{DefaultPath: emptyPath},
			expectFailing:      true,
			expectedErrorCount: 2,
			expectedFragments:  []string{"[ERROR] compilerOptions is missing", commandSummaryPrefixConstant + "2 error(s)"},
		},
		{
			name:          "severity_override_downgrades_errors",
			arguments:     []string{emptyPath},
			configuration: audit.CommandConfiguration{SeverityOverrides: map[string]audit.Severity{audit.CheckStrict: audit.SeverityWarning, audit.CheckCompilerOptions: audit.SeverityInfo}},
			expectedFragments: []string{
				"[WARN] strict is not enabled",
				commandSummaryPrefixConstant + "0 error(s), 5 warning(s), 5 info, 9 passed",
			},
		},
		{
			name:              "yaml_format_flag",
			arguments:         []string{"--format", "yaml", cleanPath},
			expectedFragments: []string{"check: strict", "passed: 19"},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			builder := audit.CommandBuilder{
				LoggerProvider:        func() *zap.Logger { return zap.NewNop() },
				ConfigurationProvider: func() audit.CommandConfiguration { return testCase.configuration },
			}

			command, buildError := builder.Build()
			require.NoError(subTest, buildError)

			command.SetContext(context.Background())
			command.SetArgs(testCase.arguments)

			outputBuffer := &strings.Builder{}
			command.SetOut(outputBuffer)
			command.SetErr(&strings.Builder{})

			executionError := command.Execute()
			if testCase.expectFailing {
				var failingFindings audit.FailingFindingsError
				require.True(subTest, errors.As(executionError, &failingFindings))
				require.Equal(subTest, testCase.expectedErrorCount, failingFindings.ErrorCount)
			} else {
				require.NoError(subTest, executionError)
			}

			for _, expectedFragment := range testCase.expectedFragments {
				require.Contains(subTest, outputBuffer.String(), expectedFragment)
			}
		})
	}
}

func TestAuditCommandReportsFatalErrorsWithoutReport(testInstance *testing.T) {
	builder := audit.CommandBuilder{
		ConfigurationProvider: func() audit.CommandConfiguration {
			return audit.CommandConfiguration{DefaultPath: filepath.Join(testInstance.TempDir(), "absent.json")}
		},
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetContext(context.Background())
	command.SetArgs([]string{})
	outputBuffer := &strings.Builder{}
	command.SetOut(outputBuffer)
	command.SetErr(&strings.Builder{})

	executionError := command.Execute()
	require.Error(testInstance, executionError)
	require.True(testInstance, errors.Is(executionError, configdoc.ErrFileNotFound))
	require.Empty(testInstance, outputBuffer.String())
}

func TestAuditCommandRejectsUnknownOverrides(testInstance *testing.T) {
	configurationPath := writeCommandConfiguration(testInstance, auditCleanConfigurationConstant)
	builder := audit.CommandBuilder{
		ConfigurationProvider: func() audit.CommandConfiguration {
			return audit.CommandConfiguration{SeverityOverrides: map[string]audit.Severity{"unknown-check": audit.SeverityInfo}}
		},
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetContext(context.Background())
	command.SetArgs([]string{configurationPath})
	command.SetOut(&strings.Builder{})
	command.SetErr(&strings.Builder{})

	executionError := command.Execute()
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "unknown-check")
}

func TestAuditCommandRejectsExtraArguments(testInstance *testing.T) {
	builder := audit.CommandBuilder{}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetContext(context.Background())
	command.SetArgs([]string{"first.json", "second.json"})
	command.SetOut(&strings.Builder{})
	command.SetErr(&strings.Builder{})

	require.Error(testInstance, command.Execute())
}
