package flagmatrix

import (
	"strings"

	"github.com/mostlyhumanagency/claude-plugins-sub004/internal/audit"
	"github.com/mostlyhumanagency/claude-plugins-sub004/internal/execshell"
)

const (
	defaultConfigurationPathConstant = "tsconfig.json"
	defaultDiagnosticMarkerConstant  = "error TS"
	defaultInvocationMarkerConstant  = "error TS5"
)

// CommandConfiguration captures persistent settings for the strict-flags command.
type CommandConfiguration struct {
	DefaultPath           string   `mapstructure:"default_path"`
	Compiler              string   `mapstructure:"compiler"`
	CompilerArguments     []string `mapstructure:"compiler_arguments"`
	DiagnosticMarker      string   `mapstructure:"diagnostic_marker"`
	InvocationErrorMarker string   `mapstructure:"invocation_error_marker"`
	Flags                 []string `mapstructure:"flags"`
	Format                string   `mapstructure:"format"`
	Color                 bool     `mapstructure:"color"`
}

// DefaultStrictnessFlags lists the strict family members and related checks measured by default.
func DefaultStrictnessFlags() []string {
	return []string{
		"noImplicitAny",
		"strictNullChecks",
		"strictFunctionTypes",
		"strictBindCallApply",
		"strictPropertyInitialization",
		"noImplicitThis",
		"useUnknownInCatchVariables",
		"alwaysStrict",
		"noUncheckedIndexedAccess",
		"exactOptionalPropertyTypes",
		"noImplicitOverride",
		"noPropertyAccessFromIndexSignature",
		"noImplicitReturns",
		"noFallthroughCasesInSwitch",
	}
}

// DefaultCommandConfiguration returns baseline configuration values for the strict-flags command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		DefaultPath:           defaultConfigurationPathConstant,
		Compiler:              string(execshell.CommandTypeScriptCompiler),
		CompilerArguments:     nil,
		DiagnosticMarker:      defaultDiagnosticMarkerConstant,
		InvocationErrorMarker: defaultInvocationMarkerConstant,
		Flags:                 DefaultStrictnessFlags(),
		Format:                string(audit.OutputFormatText),
		Color:                 false,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := configuration

	sanitized.DefaultPath = valueOrDefault(configuration.DefaultPath, defaults.DefaultPath)
	sanitized.Compiler = valueOrDefault(configuration.Compiler, defaults.Compiler)
	sanitized.Format = strings.ToLower(valueOrDefault(configuration.Format, defaults.Format))

	if len(configuration.DiagnosticMarker) == 0 {
		sanitized.DiagnosticMarker = defaults.DiagnosticMarker
	}
	if len(configuration.InvocationErrorMarker) == 0 {
		sanitized.InvocationErrorMarker = defaults.InvocationErrorMarker
	}

	sanitized.CompilerArguments = sanitizeArguments(configuration.CompilerArguments)

	sanitized.Flags = NormalizeFlagNames(configuration.Flags)
	if len(sanitized.Flags) == 0 {
		sanitized.Flags = defaults.Flags
	}

	return sanitized
}

func valueOrDefault(value string, defaultValue string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return defaultValue
	}
	return trimmed
}

func sanitizeArguments(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for _, argument := range raw {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}
