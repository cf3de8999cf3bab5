// Package utils exposes reusable helpers consumed by multiple commands.
//
// It houses ConfigurationLoader and LoggerFactory, which integrate Viper,
// mapstructure decode hooks, environment variables, and zap logging for the CLI.
package utils
