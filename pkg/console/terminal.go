package console

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// ErrNotATerminal is returned when the process has no controlling terminal
// on standard input. Callers fall back to a non-interactive mode.
var ErrNotATerminal = errors.New("standard input is not a terminal")

// Terminal owns the controlling terminal's raw mode for the lifetime of a
// session. Acquisition saves the prior settings; Restore puts them back.
// Restore may be called from multiple exit paths; only the first call acts.
type Terminal struct {
	in  *os.File
	out io.Writer

	mu       sync.Mutex
	oldState *term.State
	restores int
}

// OpenTerminal switches in to raw mode (no line buffering, no echo) and
// returns the capability that restores the prior settings.
func OpenTerminal(in *os.File, out io.Writer) (*Terminal, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotATerminal
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}
	return &Terminal{in: in, out: out, oldState: oldState}, nil
}

// Restore puts the terminal back into its pre-session mode. Idempotent.
func (t *Terminal) Restore() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.oldState == nil {
		return nil
	}
	err := term.Restore(int(t.in.Fd()), t.oldState)
	t.oldState = nil
	t.restores++
	if err != nil {
		return fmt.Errorf("restore terminal: %w", err)
	}
	return nil
}

// Restored reports whether raw mode has been released.
func (t *Terminal) Restored() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.oldState == nil
}

// Width returns the terminal width in columns, defaulting to 80 when the
// size cannot be determined.
func (t *Terminal) Width() int {
	if w, _, err := term.GetSize(int(t.in.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// Read reads raw input bytes; it blocks until at least one byte arrives.
func (t *Terminal) Read(p []byte) (int, error) {
	return t.in.Read(p)
}

// InputFd exposes the input descriptor for the reader's bounded-wait poll.
func (t *Terminal) InputFd() int {
	return int(t.in.Fd())
}

// Output returns the terminal's output stream.
func (t *Terminal) Output() io.Writer {
	return t.out
}
