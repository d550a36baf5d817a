package builtin

import (
	"context"
	"fmt"
	"os"

	smallerrors "smallsh/internal/errors"
	"smallsh/internal/session"
)

// Exit stops the interpreter.  Background children are left running.
type Exit struct{}

// Run returns ErrExit; the loop turns it into a clean shutdown.
func (e *Exit) Run(_ context.Context, sess *session.Session, _ []string) error {
	sess.Logger.Verbose("exit requested")
	return smallerrors.ErrExit
}

// ChangeDir changes the shell's working directory.
type ChangeDir struct{}

// Run changes to args[0], or to $HOME when no argument is given.
// Failures are only visible in the verbose log.
func (c *ChangeDir) Run(_ context.Context, sess *session.Session, args []string) error {
	dir := os.Getenv("HOME")
	if len(args) > 0 {
		dir = args[0]
	}
	if err := os.Chdir(dir); err != nil {
		sess.Logger.Verbose("cd %s: %v", dir, err)
		return nil
	}
	sess.Logger.Debug("cwd = %s", dir)
	return nil
}

// Status prints the last foreground termination.
type Status struct{}

// Run writes "exit value N" or "terminated by signal N".
func (s *Status) Run(_ context.Context, sess *session.Session, _ []string) error {
	_, err := fmt.Fprintln(sess.Stdout, sess.Status.Last())
	return err
}
