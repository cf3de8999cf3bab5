// Package flagmatrix measures how much work each strictness flag would take to
// enable. It runs the TypeScript compiler once per flag, counts the diagnostic
// lines each run produces, and suggests an enablement order that starts with
// the flags that are already clean.
package flagmatrix
