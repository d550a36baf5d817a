// Package launcher starts external commands.  It applies redirections,
// detaches background children into their own process group, and waits
// for foreground children.
//
// Redirect targets are opened in the shell before the child is created,
// so a bad path is reported without a fork.  The caller accounts such a
// failure as the child exiting with status 1.
package launcher

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"syscall"

	smallerrors "smallsh/internal/errors"
	"smallsh/internal/metrics"
	"smallsh/internal/retry"
	"smallsh/internal/status"
	"smallsh/util"
)

// Request is a parsed external command ready to run.
type Request struct {
	Args       []string // argv, Args[0] is the program
	Input      string   // "" = inherit (or null device when Background)
	Output     string   // "" = inherit (or null device when Background)
	Background bool
}

// Result describes a started child.  Termination is only meaningful for
// a foreground child.
type Result struct {
	Pid         int
	Background  bool
	Termination status.Termination
}

// Launcher creates child processes.  The zero value is not usable; fill
// in at least the three standard streams.
type Launcher struct {
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File

	// NullDevice replaces unredirected streams of background children.
	NullDevice string

	// Guard wraps the Start of a foreground child.  The shell passes
	// signals.Coordinator.GuardForeground here.
	Guard func(start func() error) error

	// Retry re-attempts a spawn that failed with EAGAIN.  Nil means a
	// single attempt.
	Retry *retry.Backoff

	Logger  *util.Logger
	Metrics *metrics.Collector
}

// New returns a Launcher bound to the process's own standard streams.
func New(nullDevice string, guard func(func() error) error, logger *util.Logger, m *metrics.Collector) *Launcher {
	return &Launcher{
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		NullDevice: nullDevice,
		Guard:      guard,
		Retry:      retry.ForkBackoff(),
		Logger:     logger,
		Metrics:    m,
	}
}

// Launch runs req.  A foreground child is waited for and its termination
// decoded.  A background child is left running and is collected later by
// the status reaper.
//
// Errors are *RedirectError or child-only *LaunchError when the program
// never ran, and a fatal *LaunchError when the shell could not create a
// process at all.
func (l *Launcher) Launch(ctx context.Context, req Request) (Result, error) {
	if len(req.Args) == 0 {
		return Result{}, smallerrors.ErrMissingCommand
	}

	stdin, stdout, closeAll, err := l.openStreams(req)
	if err != nil {
		l.Metrics.LaunchFailed(err.Error())
		return Result{}, err
	}
	defer closeAll()

	l.Logger.Debug("start %q background=%v", req.Args, req.Background)

	// An exec.Cmd cannot be started twice, so each attempt builds its own.
	var cmd *exec.Cmd
	err = l.Retry.Do(ctx, func(attempt int) error {
		cmd = l.command(req, stdin, stdout)
		if attempt > 1 {
			l.Logger.Warn("fork: retry %d for %s", attempt, req.Args[0])
		}
		if !req.Background && l.Guard != nil {
			return l.Guard(cmd.Start)
		}
		return cmd.Start()
	})
	if err != nil {
		lerr := classify(req.Args[0], err)
		l.Metrics.LaunchFailed(lerr.Error())
		return Result{}, lerr
	}

	res := Result{Pid: cmd.Process.Pid, Background: req.Background}

	if req.Background {
		l.Metrics.BackgroundStarted()
		// The reaper collects it with wait4(-1); os/exec must not.
		if err := cmd.Process.Release(); err != nil {
			l.Logger.Debug("release pid %d: %v", res.Pid, err)
		}
		return res, nil
	}

	l.Metrics.ForegroundStarted()
	err = cmd.Wait()
	if cmd.ProcessState == nil {
		return res, &smallerrors.LaunchError{Op: "wait", Program: req.Args[0], Err: err, Fatal: true}
	}
	if ws, ok := cmd.ProcessState.Sys().(syscall.WaitStatus); ok {
		res.Termination = status.FromWaitStatus(ws)
	} else {
		res.Termination = status.Exited(cmd.ProcessState.ExitCode())
	}
	l.Logger.Verbose("pid %d: %s", res.Pid, res.Termination)
	return res, nil
}

func (l *Launcher) command(req Request, stdin, stdout *os.File) *exec.Cmd {
	cmd := exec.Command(req.Args[0], req.Args[1:]...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = l.Stderr
	if req.Background {
		// Own process group: keyboard signals go to the terminal's
		// foreground group and never reach background children.
		cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	}
	return cmd
}

// openStreams resolves the child's stdin and stdout.  The returned
// closer releases every file opened here; the child keeps its own
// descriptors.
func (l *Launcher) openStreams(req Request) (stdin, stdout *os.File, closeAll func(), err error) {
	var opened []*os.File
	closeAll = func() {
		for _, f := range opened {
			f.Close()
		}
	}

	in, out := req.Input, req.Output
	if req.Background {
		if in == "" {
			in = l.NullDevice
		}
		if out == "" {
			out = l.NullDevice
		}
	}

	stdin, stdout = l.Stdin, l.Stdout

	if in != "" {
		f, err := os.Open(in)
		if err != nil {
			closeAll()
			return nil, nil, nil, &smallerrors.RedirectError{Dir: "input", Path: in, Err: err}
		}
		opened = append(opened, f)
		stdin = f
	}
	if out != "" {
		f, err := os.OpenFile(out, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			closeAll()
			return nil, nil, nil, &smallerrors.RedirectError{Dir: "output", Path: out, Err: err}
		}
		opened = append(opened, f)
		stdout = f
	}
	return stdin, stdout, closeAll, nil
}

// childErrnos are the errors a forked child would have hit in exec.
// Anything else means the shell could not create a process.
var childErrnos = []syscall.Errno{
	syscall.ENOENT,
	syscall.EACCES,
	syscall.ENOEXEC,
	syscall.ENOTDIR,
	syscall.EISDIR,
	syscall.ELOOP,
	syscall.ENAMETOOLONG,
	syscall.EPERM,
}

func classify(program string, err error) *smallerrors.LaunchError {
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return smallerrors.Exec(program, err)
	}
	for _, errno := range childErrnos {
		if errors.Is(err, errno) {
			return smallerrors.Exec(program, err)
		}
	}
	return smallerrors.Fork(program, err)
}
