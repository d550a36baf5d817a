// Package util holds the shell's line reader and its diagnostic logger.
package util

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// LogLevel is the number of -v flags given on the command line.
type LogLevel int

const (
	LogQuiet   LogLevel = iota // no diagnostics
	LogNormal                  // -v: fork retries
	LogVerbose                 // -vv: cd failures, reaped pids, mode changes
	LogDebug                   // -vvv: every launch and builtin, with timestamps
)

var levelTags = map[LogLevel]string{
	LogNormal:  "WRN",
	LogVerbose: "VRB",
	LogDebug:   "DBG",
}

// Logger traces what the shell does behind the user's back.  Prompts,
// status lines and the foreground-only messages are shell output, not
// diagnostics, and never go through it.
//
// A Logger is shared by the read loop and the signal goroutine.
type Logger struct {
	level  LogLevel
	out    io.Writer
	stamps bool

	mu sync.Mutex
}

// NewLogger returns a Logger writing to stderr for the given -v count.
func NewLogger(verbosity int) *Logger {
	return newLogger(os.Stderr, verbosity)
}

func newLogger(w io.Writer, verbosity int) *Logger {
	lvl := LogLevel(verbosity)
	return &Logger{level: lvl, out: w, stamps: lvl >= LogDebug}
}

// Enabled reports whether lvl messages are printed.  Callers use it to
// skip building expensive messages such as the metrics dump.
func (l *Logger) Enabled(lvl LogLevel) bool { return l.level >= lvl }

// Warn reports a recoverable problem in the shell itself, like a fork
// that had to be retried.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.logf(LogNormal, format, args...)
}

// Verbose reports user-visible events the shell otherwise keeps quiet
// about: a cd that failed, a child that was reaped.
func (l *Logger) Verbose(format string, args ...interface{}) {
	l.logf(LogVerbose, format, args...)
}

// Debug traces each step of a command's life.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logf(LogDebug, format, args...)
}

func (l *Logger) logf(lvl LogLevel, format string, args ...interface{}) {
	if !l.Enabled(lvl) {
		return
	}
	msg := fmt.Sprintf(format, args...)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stamps {
		fmt.Fprintf(l.out, "%s ", time.Now().Format("15:04:05.000"))
	}
	fmt.Fprintf(l.out, "[%s] smallsh: %s\n", levelTags[lvl], msg)
}
