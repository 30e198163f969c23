// Package terminal detects whether the toolkit can show its interactive menu.
package terminal

import (
	"os"

	"golang.org/x/term"
)

var (
	isTerminal = term.IsTerminal
	stdin      = func() uintptr { return os.Stdin.Fd() }
	stdout     = func() uintptr { return os.Stdout.Fd() }
)

// IsInteractive reports whether stdin and stdout are both terminals.
// The menu needs both: huh reads keys from stdin and renders to stdout.
func IsInteractive() bool {
	return isTerminal(int(stdin())) && isTerminal(int(stdout()))
}
