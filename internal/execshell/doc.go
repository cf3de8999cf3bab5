// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner for
// default process execution and PathToolLocator for resolving executables, and
// defines the typed errors used to tell a tool that cannot start apart from a
// tool that ran and reported failures.
package execshell
