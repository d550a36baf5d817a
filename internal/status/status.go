// Package status records how foreground commands ended and reaps
// finished children without blocking.
package status

import (
	"fmt"
	"syscall"
)

// Cause says whether a process exited or was killed.
type Cause int

const (
	NormalExit Cause = iota
	KilledBySignal
)

// Termination is the cause of a child's end together with its exit code
// or signal number.
type Termination struct {
	Cause  Cause
	Code   int // exit code when Cause == NormalExit
	Signal int // signal number when Cause == KilledBySignal
}

// Exited returns a normal-exit Termination.
func Exited(code int) Termination {
	return Termination{Cause: NormalExit, Code: code}
}

// Signaled returns a killed-by-signal Termination.
func Signaled(sig int) Termination {
	return Termination{Cause: KilledBySignal, Signal: sig}
}

// WaitStatus is the subset of syscall.WaitStatus and unix.WaitStatus
// used here.
type WaitStatus interface {
	Exited() bool
	ExitStatus() int
	Signaled() bool
	Signal() syscall.Signal
}

// FromWaitStatus decodes a raw wait status.
func FromWaitStatus(ws WaitStatus) Termination {
	if ws.Signaled() {
		return Signaled(int(ws.Signal()))
	}
	return Exited(ws.ExitStatus())
}

// String formats t the way the status built-in prints it.
func (t Termination) String() string {
	if t.Cause == KilledBySignal {
		return fmt.Sprintf("terminated by signal %d", t.Signal)
	}
	return fmt.Sprintf("exit value %d", t.Code)
}

// Tracker holds the last foreground termination.  It is only touched by
// the interpreter loop.
type Tracker struct {
	last Termination
}

// NewTracker returns a Tracker that reports "exit value 0" until the
// first foreground command finishes.
func NewTracker() *Tracker {
	return &Tracker{last: Exited(0)}
}

// Record overwrites the last foreground termination.
func (t *Tracker) Record(term Termination) { t.last = term }

// Last returns the last foreground termination.
func (t *Tracker) Last() Termination { return t.last }
