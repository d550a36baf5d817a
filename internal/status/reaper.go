package status

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/sys/unix"

	"smallsh/internal/metrics"
	"smallsh/util"
)

// WaitFunc performs one non-blocking wait for any child.  It returns the
// reaped pid (0 when no child has finished) and its status.
type WaitFunc func() (int, WaitStatus, error)

// WaitAny is the default WaitFunc: wait4(-1, WNOHANG).
func WaitAny() (int, WaitStatus, error) {
	var ws unix.WaitStatus
	for {
		pid, err := unix.Wait4(-1, &ws, unix.WNOHANG, nil)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return pid, ws, err
	}
}

// Reaped is one child collected by the Reaper.
type Reaped struct {
	Pid         int
	Termination Termination
}

// Reaper collects any terminated children and announces each one.
type Reaper struct {
	wait    WaitFunc
	out     io.Writer
	logger  *util.Logger
	metrics *metrics.Collector
}

// NewReaper returns a Reaper that writes reports to out.  A nil wait
// uses WaitAny.
func NewReaper(wait WaitFunc, out io.Writer, logger *util.Logger, m *metrics.Collector) *Reaper {
	if wait == nil {
		wait = WaitAny
	}
	return &Reaper{wait: wait, out: out, logger: logger, metrics: m}
}

// Reap collects every child that has already terminated and prints
// "background pid <pid> is done: <status>" for each.  It never blocks.
// Having no children at all (ECHILD) is not an error.
func (r *Reaper) Reap() []Reaped {
	var done []Reaped
	for {
		pid, ws, err := r.wait()
		if err != nil {
			if !errors.Is(err, unix.ECHILD) {
				r.logger.Debug("reap: %v", err)
			}
			return done
		}
		if pid <= 0 {
			return done
		}

		term := FromWaitStatus(ws)
		fmt.Fprintf(r.out, "background pid %d is done: %s\n", pid, term)
		r.logger.Verbose("reaped pid %d (%s)", pid, term)
		r.metrics.ChildReaped()
		done = append(done, Reaped{Pid: pid, Termination: term})
	}
}
