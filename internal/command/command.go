// Package command turns a token list into something the shell can
// dispatch: it classifies built-ins and resolves redirection and
// background control tokens for external programs.
package command

import (
	"strings"

	smallerrors "smallsh/internal/errors"
)

// Control tokens recognised on the command line.
const (
	InputOp    = "<"
	OutputOp   = ">"
	Background = "&"
)

// Kind classifies the first token of a line.
type Kind int

const (
	External Kind = iota
	Exit
	ChangeDirectory
	Status
)

var kindNames = map[Kind]string{
	External:        "external",
	Exit:            "exit",
	ChangeDirectory: "cd",
	Status:          "status",
}

func (k Kind) String() string { return kindNames[k] }

// Classify inspects only the first token.
func Classify(tokens []string) Kind {
	if len(tokens) == 0 {
		return External
	}
	switch tokens[0] {
	case "exit":
		return Exit
	case "cd":
		return ChangeDirectory
	case "status":
		return Status
	}
	return External
}

// IsComment reports whether the line is a comment.
func IsComment(tokens []string) bool {
	return len(tokens) > 0 && strings.HasPrefix(tokens[0], "#")
}

// IsBareEcho reports whether the line is "echo" with no arguments.
func IsBareEcho(tokens []string) bool {
	return len(tokens) == 1 && tokens[0] == "echo"
}

// Command is one parsed external command line.
type Command struct {
	Args       []string // cleaned argument vector
	Input      string   // "<" target, empty when absent
	Output     string   // ">" target, empty when absent
	Background bool     // run without waiting
}

// Program returns argv[0].
func (c *Command) Program() string {
	if len(c.Args) == 0 {
		return ""
	}
	return c.Args[0]
}

// Parse resolves control tokens.  The last "<" and the last ">" win;
// every operator and its target are removed from Args.  A trailing "&"
// requests background execution unless foregroundOnly is set or the
// command is echo, in which case it is kept as a literal argument.  When
// foregroundOnly suppresses the request, the "&" is still dropped.
func Parse(tokens []string, foregroundOnly bool) (*Command, error) {
	cmd := &Command{}
	skip := make([]bool, len(tokens))

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok != InputOp && tok != OutputOp {
			continue
		}
		if i+1 >= len(tokens) {
			return nil, smallerrors.MissingTarget(tok)
		}
		if tok == InputOp {
			cmd.Input = tokens[i+1]
		} else {
			cmd.Output = tokens[i+1]
		}
		skip[i], skip[i+1] = true, true
		i++
	}

	if last := len(tokens) - 1; last > 0 && !skip[last] && tokens[last] == Background && tokens[0] != "echo" {
		skip[last] = true
		cmd.Background = !foregroundOnly
	}

	for i, tok := range tokens {
		if !skip[i] {
			cmd.Args = append(cmd.Args, tok)
		}
	}
	if len(cmd.Args) == 0 {
		return nil, &smallerrors.SyntaxError{Message: "missing command", Err: smallerrors.ErrMissingCommand}
	}
	return cmd, nil
}
