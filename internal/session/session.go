// Package session holds the state that lives for the whole interpreter
// run and is shared between the loop and the built-ins.
//
// Built-ins operate on a Session rather than on globals, so they don't
// need to know whether they're writing to os.Stdout or a test buffer.
package session

import (
	"io"
	"os"

	"smallsh/internal/signals"
	"smallsh/internal/status"
	"smallsh/util"
)

// Session is the ShellSession: the shell's own pid, the foreground-only
// flag, and the last foreground termination.
type Session struct {
	PID         int
	Interactive bool // stdin is a terminal

	Stdout io.Writer
	Stderr io.Writer
	Logger *util.Logger

	Mode   *signals.Mode
	Status *status.Tracker
}

// New creates a Session for the current process.  The pid is captured
// once here and never changes.
func New(stdout, stderr io.Writer, logger *util.Logger) *Session {
	return &Session{
		PID:    os.Getpid(),
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
		Mode:   &signals.Mode{},
		Status: status.NewTracker(),
	}
}

// ForegroundOnly reports whether background requests are currently
// ignored.
func (s *Session) ForegroundOnly() bool { return s.Mode.Active() }
