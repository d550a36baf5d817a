// Package signals owns the shell's reaction to the two keyboard
// signals.  SIGINT only produces a notice in the shell; SIGTSTP flips
// foreground-only mode.  Handling happens on one goroutine fed by
// os/signal, so the interpreter loop is never interrupted and simply
// observes the mode flag at its next decision point.
package signals

import (
	"io"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/unix"

	"smallsh/internal/metrics"
	"smallsh/util"
)

// Notices written by the handlers.
const (
	InterruptNotice = "terminated by signal 2\n"
	EnterNotice     = "Entering foreground-only mode (& is now ignored)\n"
	ExitNotice      = "Exiting foreground-only mode\n"
)

// Mode is the foreground-only flag.  It starts off, is written only by
// the Coordinator, and may be read from any goroutine.
type Mode struct {
	on atomic.Bool
}

// Active reports whether foreground-only mode is on.
func (m *Mode) Active() bool { return m.on.Load() }

// toggle flips the flag and returns the new state.
func (m *Mode) toggle() bool {
	for {
		old := m.on.Load()
		if m.on.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Coordinator installs and serves the SIGINT / SIGTSTP handlers.
type Coordinator struct {
	mode    *Mode
	out     io.Writer
	logger  *util.Logger
	metrics *metrics.Collector

	sigCh   chan os.Signal
	done    chan struct{}
	wg      sync.WaitGroup
	started atomic.Bool
}

// New returns a Coordinator that toggles mode and writes notices to out.
// out should be unbuffered; a *util.SyncWriter over os.Stdout is what
// the shell uses.
func New(mode *Mode, out io.Writer, logger *util.Logger, m *metrics.Collector) *Coordinator {
	return &Coordinator{
		mode:    mode,
		out:     out,
		logger:  logger,
		metrics: m,
		sigCh:   make(chan os.Signal, 4),
		done:    make(chan struct{}),
	}
}

// Start installs the handlers.  It must be called once, after the mode
// flag is in its initial state.
func (c *Coordinator) Start() {
	if !c.started.CompareAndSwap(false, true) {
		return
	}
	signal.Notify(c.sigCh, unix.SIGINT, unix.SIGTSTP)
	c.wg.Add(1)
	go c.loop()
	c.logger.Debug("signal handlers installed")
}

// Stop restores default dispositions and waits for the handler
// goroutine to exit.
func (c *Coordinator) Stop() {
	if !c.started.CompareAndSwap(true, false) {
		return
	}
	signal.Stop(c.sigCh)
	close(c.done)
	c.wg.Wait()
}

func (c *Coordinator) loop() {
	defer c.wg.Done()
	for {
		select {
		case <-c.done:
			return
		case sig := <-c.sigCh:
			c.Handle(sig)
		}
	}
}

// Handle reacts to a single signal.  It is exported so the loop's
// behaviour can be exercised without delivering real signals.
func (c *Coordinator) Handle(sig os.Signal) {
	switch sig {
	case unix.SIGINT:
		c.metrics.Interrupted()
		io.WriteString(c.out, InterruptNotice) //nolint:errcheck
	case unix.SIGTSTP:
		on := c.mode.toggle()
		c.metrics.ModeToggled()
		if on {
			io.WriteString(c.out, EnterNotice) //nolint:errcheck
		} else {
			io.WriteString(c.out, ExitNotice) //nolint:errcheck
		}
		c.logger.Verbose("foreground-only mode = %v", on)
	}
}

// GuardForeground runs start with SIGTSTP ignored, so a child created
// inside it inherits SIG_IGN across exec and only the shell reacts to
// the stop key.  SIGINT stays caught, which exec resets to the default
// action in the child.  A SIGTSTP that arrives while start runs is
// dropped.
func (c *Coordinator) GuardForeground(start func() error) error {
	if !c.started.Load() {
		return start()
	}
	signal.Ignore(unix.SIGTSTP)
	defer signal.Notify(c.sigCh, unix.SIGTSTP)
	return start()
}
