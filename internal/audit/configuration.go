package audit

import (
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

const defaultConfigurationPathConstant = "tsconfig.json"

// CommandConfiguration captures persistent settings for the audit command.
type CommandConfiguration struct {
	DefaultPath       string              `mapstructure:"default_path"`
	Format            string              `mapstructure:"format"`
	Color             bool                `mapstructure:"color"`
	SeverityOverrides map[string]Severity `mapstructure:"severity_overrides"`
}

// DefaultCommandConfiguration returns baseline configuration values for the audit command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		DefaultPath:       defaultConfigurationPathConstant,
		Format:            string(OutputFormatText),
		Color:             false,
		SeverityOverrides: nil,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.DefaultPath = strings.TrimSpace(configuration.DefaultPath)
	if len(sanitized.DefaultPath) == 0 {
		sanitized.DefaultPath = defaultConfigurationPathConstant
	}

	sanitized.Format = strings.ToLower(strings.TrimSpace(configuration.Format))
	if len(sanitized.Format) == 0 {
		sanitized.Format = string(OutputFormatText)
	}

	if len(configuration.SeverityOverrides) > 0 {
		sanitized.SeverityOverrides = make(map[string]Severity, len(configuration.SeverityOverrides))
		for checkIdentifier, severity := range configuration.SeverityOverrides {
			sanitized.SeverityOverrides[strings.ToLower(strings.TrimSpace(checkIdentifier))] = severity
		}
	}

	return sanitized
}

// SeverityDecodeHook converts configuration strings such as "warn" into Severity values.
func SeverityDecodeHook() mapstructure.DecodeHookFuncType {
	severityType := reflect.TypeOf(SeverityPass)
	return func(sourceType reflect.Type, targetType reflect.Type, data any) (any, error) {
		if targetType != severityType || sourceType.Kind() != reflect.String {
			return data, nil
		}
		severity, parseError := ParseSeverity(reflect.ValueOf(data).String())
		if parseError != nil {
			return nil, parseError
		}
		return severity, nil
	}
}
