// Package cli constructs the configaudit command-line interface. It wires the
// Cobra command hierarchy to the viper-backed configuration loader and the zap
// logger factory, and registers the audit and strict-flags subcommands.
package cli
