// Package shell implements the interpreter loop: reap finished
// children, prompt, read a line, expand, classify and dispatch.
package shell

import (
	"context"
	"fmt"
	"io"

	"smallsh/config"
	"smallsh/internal/builtin"
	"smallsh/internal/command"
	smallerrors "smallsh/internal/errors"
	"smallsh/internal/launcher"
	"smallsh/internal/metrics"
	"smallsh/internal/session"
	"smallsh/internal/signals"
	"smallsh/internal/status"
	"smallsh/internal/token"
	"smallsh/util"
)

// Shell orchestrates a single interactive session.
type Shell struct {
	Config   *config.Config
	Session  *session.Session
	Input    *util.LineReader
	Expander *token.Expander
	Builtins map[command.Kind]builtin.Builtin
	Launcher *launcher.Launcher
	Reaper   *status.Reaper
	Signals  *signals.Coordinator
	Metrics  *metrics.Collector
	Logger   *util.Logger
}

// New wires the components for one session reading lines from in.
func New(cfg *config.Config, sess *session.Session, in io.Reader, m *metrics.Collector) (*Shell, error) {
	mode, err := token.ParseMode(cfg.ExpandMode)
	if err != nil {
		return nil, err
	}

	logger := sess.Logger
	coord := signals.New(sess.Mode, sess.Stdout, logger, m)

	return &Shell{
		Config:   cfg,
		Session:  sess,
		Input:    util.NewLineReader(in, cfg.MaxLine),
		Expander: token.NewExpander(sess.PID, mode),
		Builtins: builtin.Table(),
		Launcher: launcher.New(cfg.NullDevice, coord.GuardForeground, logger, m),
		Reaper:   status.NewReaper(nil, sess.Stdout, logger, m),
		Signals:  coord,
		Metrics:  m,
		Logger:   logger,
	}, nil
}

// Run installs the signal handlers and loops until exit, end of input
// or a fatal error.  exit and EOF return nil.
func (s *Shell) Run(ctx context.Context) error {
	s.Signals.Start()
	defer s.Signals.Stop()
	defer s.dumpMetrics()

	s.Logger.Verbose("pid %d, expand=%s, max line %d", s.Session.PID, s.Config.ExpandMode, s.Config.MaxLine)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.Reaper.Reap()
		io.WriteString(s.Session.Stdout, s.Config.Prompt) //nolint:errcheck

		line, err := s.Input.ReadLine()
		switch {
		case err == nil:
		case smallerrors.Is(err, io.EOF):
			if s.Session.Interactive {
				io.WriteString(s.Session.Stdout, "\n") //nolint:errcheck
			}
			s.Logger.Verbose("end of input")
			return nil
		case smallerrors.Is(err, smallerrors.ErrLineTooLong):
			s.report(err)
			continue
		default:
			return fmt.Errorf("read input: %w", err)
		}

		if err := s.Execute(ctx, line); err != nil {
			if smallerrors.Is(err, smallerrors.ErrExit) {
				return nil
			}
			return err
		}
	}
}

// Execute runs one input line.  User-level failures are reported on
// the session's stderr and yield nil; the returned error is either
// ErrExit or fatal to the shell.
func (s *Shell) Execute(ctx context.Context, line string) error {
	s.Metrics.LineRead()

	tokens := token.Split(line)
	if len(tokens) == 0 || command.IsComment(tokens) {
		return nil
	}
	tokens = s.Expander.Expand(tokens)

	if command.IsBareEcho(tokens) {
		io.WriteString(s.Session.Stdout, "\n") //nolint:errcheck
		return nil
	}

	kind := command.Classify(tokens)
	if b, ok := s.Builtins[kind]; ok {
		s.Metrics.BuiltinRun()
		s.Logger.Debug("builtin %s %q", kind, tokens[1:])
		return b.Run(ctx, s.Session, tokens[1:])
	}
	return s.runExternal(ctx, tokens)
}

func (s *Shell) runExternal(ctx context.Context, tokens []string) error {
	cmd, err := command.Parse(tokens, s.Session.ForegroundOnly())
	if err != nil {
		s.report(err)
		return nil
	}

	res, err := s.Launcher.Launch(ctx, launcher.Request{
		Args:       cmd.Args,
		Input:      cmd.Input,
		Output:     cmd.Output,
		Background: cmd.Background,
	})
	switch {
	case err == nil:
	case smallerrors.IsFatal(err):
		return err
	default:
		s.report(err)
		if cmd.Background {
			// No child was created, so no pid is announced or reaped.
			s.Logger.Verbose("background %s not started", cmd.Program())
		} else {
			s.Session.Status.Record(status.Exited(1))
		}
		s.Reaper.Reap()
		return nil
	}

	if res.Background {
		fmt.Fprintf(s.Session.Stdout, "background pid is %d\n", res.Pid)
	} else {
		s.Session.Status.Record(res.Termination)
	}
	s.Reaper.Reap()
	return nil
}

// report prints a non-fatal error.  Launch and redirect failures speak
// for themselves; input problems carry the shell's name.
func (s *Shell) report(err error) {
	if smallerrors.IsChildFailure(err) {
		fmt.Fprintln(s.Session.Stderr, err)
		return
	}
	fmt.Fprintf(s.Session.Stderr, "smallsh: %v\n", err)
}

func (s *Shell) dumpMetrics() {
	if s.Logger.Enabled(util.LogDebug) {
		s.Logger.Debug("session metrics:\n%s", s.Metrics.JSON())
	}
}
