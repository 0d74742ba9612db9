//go:build !raqmtrace

// Package trace implements the engine's test-mode text output (spec §6):
// debug lines written to standard error, gated behind the raqmtrace build
// tag so production builds pay no cost for it, matching
// fontconfig/pattern.go's stdlib-log-only diagnostic path. Engine.Layout
// traces one line, the number of code points it lays out; the run list
// and the shaped glyphs are not dumped.
package trace

// Enabled reports whether the raqmtrace build tag was set.
const Enabled = false

// Printf is a no-op when built without the raqmtrace tag.
func Printf(format string, args ...interface{}) {}
