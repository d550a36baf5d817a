// Package errors provides domain-specific error types for smallsh.
//
// The types carry the one distinction the interpreter loop cares about:
// whether a failure is fatal to the shell itself or only to the command
// that was being launched.  Child-only failures are reported and the
// loop continues; fatal ones unwind to main and end the process.
package errors

import (
	"errors"
	"fmt"
)

// ── Sentinel errors ──────────────────────────────────────────────────

var (
	ErrExit           = errors.New("exit requested")
	ErrLineTooLong    = errors.New("input line too long")
	ErrMissingCommand = errors.New("missing command")
)

// ── Structured error types ───────────────────────────────────────────

// LaunchError represents a failure to create or run a child process.
type LaunchError struct {
	Op      string // "fork", "exec", "wait"
	Program string // argv[0]
	Err     error  // underlying error
	Fatal   bool   // true when the shell itself cannot continue
}

func (e *LaunchError) Error() string {
	if !e.Fatal && e.Op == "exec" {
		return fmt.Sprintf("%s: no such file or directory", e.Program)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Program, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// RedirectError represents a redirect target that could not be opened.
// It never stops the shell.
type RedirectError struct {
	Dir  string // "input" or "output"
	Path string
	Err  error
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("cannot open %s for %s", e.Path, e.Dir)
}

func (e *RedirectError) Unwrap() error { return e.Err }

// SyntaxError represents a command line that cannot be dispatched.
type SyntaxError struct {
	Token   string // offending control token, if any
	Message string
	Err     error
}

func (e *SyntaxError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("%s %s", e.Message, e.Token)
	}
	return e.Message
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Field   string      // config field name
	Value   interface{} // the invalid value (nil if missing)
	Message string      // human-readable explanation
	Hint    string      // suggestion for the user (optional)
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("config: --%s", e.Field)
	if e.Value != nil {
		msg += fmt.Sprintf("=%v", e.Value)
	}
	msg += ": " + e.Message
	if e.Hint != "" {
		msg += "\n  hint: " + e.Hint
	}
	return msg
}

// ── Constructors ─────────────────────────────────────────────────────

// Exec creates a child-only LaunchError for a program that could not be
// found or executed.
func Exec(program string, err error) *LaunchError {
	return &LaunchError{Op: "exec", Program: program, Err: err}
}

// Fork creates a fatal LaunchError for a process-creation failure.
func Fork(program string, err error) *LaunchError {
	return &LaunchError{Op: "fork", Program: program, Err: err, Fatal: true}
}

// MissingTarget creates a SyntaxError for a redirect operator with no
// following path.
func MissingTarget(op string) *SyntaxError {
	return &SyntaxError{Token: op, Message: "missing redirect target after"}
}

// ── Classification helpers ───────────────────────────────────────────

// IsFatal reports whether err must terminate the interpreter.  Launch
// errors carry the decision; other typed errors are child-only or
// user errors.  Unknown errors are treated as fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var le *LaunchError
	if errors.As(err, &le) {
		return le.Fatal
	}
	var re *RedirectError
	if errors.As(err, &re) {
		return false
	}
	var se *SyntaxError
	if errors.As(err, &se) {
		return false
	}
	if errors.Is(err, ErrLineTooLong) || errors.Is(err, ErrMissingCommand) {
		return false
	}
	return true
}

// IsChildFailure reports whether err describes a launch that failed
// before the program ran but must be accounted as the child exiting
// with status 1.
func IsChildFailure(err error) bool {
	var le *LaunchError
	if errors.As(err, &le) {
		return !le.Fatal
	}
	var re *RedirectError
	return errors.As(err, &re)
}

// ── Re-exports for convenience ───────────────────────────────────────

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }
