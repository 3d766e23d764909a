// Package diag prints user-facing diagnostics to stderr in the shell's own
// voice, the way a REPL reports warnings and errors without aborting.
package diag

import (
	"fmt"
	"os"
)

const prefix = "ion: "

// Warn prints a non-fatal warning to stderr.
func Warn(msg string) {
	fmt.Fprint(os.Stderr, prefix, msg, "\n")
}

// Warnf prints a formatted non-fatal warning to stderr.
func Warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, prefix+format+"\n", args...)
}

// Error prints a non-fatal error to stderr, mirroring Warn's format but
// reserved for failures rather than advisories.
func Error(msg string) {
	fmt.Fprint(os.Stderr, prefix, msg, "\n")
}

// Errorf prints a formatted non-fatal error to stderr.
func Errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, prefix+format+"\n", args...)
}
