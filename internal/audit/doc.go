// Package audit evaluates a fixed, ordered table of checks against a
// tsconfig-style configuration document and renders the findings.
//
// Each CheckDefinition pairs a reader (which value to look at) with a pure
// predicate and the severity to report when the predicate fails. The Auditor
// produces exactly one Finding per definition in declaration order; the
// Report accumulates per-severity counts and derives the process exit code.
// CommandBuilder wires the cobra `audit` command around Service.
package audit
