//go:build raqmtrace

package trace

import (
	"fmt"
	"os"
)

// Enabled reports whether the raqmtrace build tag was set.
const Enabled = true

// Printf writes a trace line to stderr.
func Printf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
}
