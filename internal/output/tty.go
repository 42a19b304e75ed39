// Package output prints session results for people and for scripts, and
// detects whether a stream is attached to a terminal.
package output

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether v is a file descriptor attached to a terminal.
// Buffers, pipes and redirected files are not.
func IsTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// IsStdinTTY reports whether input is typed rather than piped.
func IsStdinTTY() bool {
	return IsTerminal(os.Stdin)
}
