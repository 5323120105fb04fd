package tui

import (
	"errors"
	"fmt"
	"io"
)

// ErrInteractiveRequired is returned when the lock screen cannot run
// because stdout is not a terminal.
var ErrInteractiveRequired = errors.New("the lock screen needs an interactive terminal")

// runFallback handles non-TTY execution by pointing at the headless dive.
func runFallback(w io.Writer) error {
	fmt.Fprintln(w, "Non-TTY environment detected.")
	fmt.Fprintln(w, "Use 'freeflow dive --plain' for a headless dive.")
	return ErrInteractiveRequired
}
