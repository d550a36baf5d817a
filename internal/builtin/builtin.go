// Package builtin implements the commands the shell runs in its own
// process: exit, cd and status.  Each Builtin operates on the Session
// rather than on process globals, which keeps them testable.
package builtin

import (
	"context"

	"smallsh/internal/command"
	"smallsh/internal/session"
)

// Builtin runs one built-in command.  args excludes the command name.
// Redirection and background tokens are not interpreted for built-ins.
type Builtin interface {
	Run(ctx context.Context, sess *session.Session, args []string) error
}

// Table maps each built-in kind to its implementation.
func Table() map[command.Kind]Builtin {
	return map[command.Kind]Builtin{
		command.Exit:            &Exit{},
		command.ChangeDirectory: &ChangeDir{},
		command.Status:          &Status{},
	}
}
