// Package metrics provides lightweight, lock-free counters for tracking
// what an interpreter session has done.
//
// All methods are safe for concurrent use: the signal goroutine and the
// loop both record into the same Collector.  A nil *Collector is a valid
// no-op receiver, so callers never need to nil-check.
package metrics

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Collector tracks runtime metrics for a shell session.
// A nil Collector is safe to use; all methods become no-ops.
type Collector struct {
	linesRead      atomic.Int64
	builtinsRun    atomic.Int64
	foregroundRun  atomic.Int64
	backgroundRun  atomic.Int64
	childrenReaped atomic.Int64
	launchFailures atomic.Int64
	interrupts     atomic.Int64
	modeToggles    atomic.Int64

	mu          sync.RWMutex
	startTime   time.Time
	lastFailure time.Time
	lastFailMsg string
}

// New creates a metrics collector with the start time set to now.
func New() *Collector {
	return &Collector{startTime: time.Now()}
}

// ── Loop metrics ─────────────────────────────────────────────────────

// LineRead records one input line accepted by the loop.
func (c *Collector) LineRead() {
	if c == nil {
		return
	}
	c.linesRead.Add(1)
}

// BuiltinRun records a built-in dispatch.
func (c *Collector) BuiltinRun() {
	if c == nil {
		return
	}
	c.builtinsRun.Add(1)
}

// ── Process metrics ──────────────────────────────────────────────────

// ForegroundStarted records a foreground child launch.
func (c *Collector) ForegroundStarted() {
	if c == nil {
		return
	}
	c.foregroundRun.Add(1)
}

// BackgroundStarted records a background child launch.
func (c *Collector) BackgroundStarted() {
	if c == nil {
		return
	}
	c.backgroundRun.Add(1)
}

// ChildReaped records a child collected by the reaper.
func (c *Collector) ChildReaped() {
	if c == nil {
		return
	}
	c.childrenReaped.Add(1)
}

// ForegroundCount returns the number of foreground launches.
func (c *Collector) ForegroundCount() int64 {
	if c == nil {
		return 0
	}
	return c.foregroundRun.Load()
}

// BackgroundCount returns the number of background launches.
func (c *Collector) BackgroundCount() int64 {
	if c == nil {
		return 0
	}
	return c.backgroundRun.Load()
}

// ReapedCount returns the number of reaped children.
func (c *Collector) ReapedCount() int64 {
	if c == nil {
		return 0
	}
	return c.childrenReaped.Load()
}

// ── Signal metrics ───────────────────────────────────────────────────

// Interrupted records a SIGINT delivered to the shell.
func (c *Collector) Interrupted() {
	if c == nil {
		return
	}
	c.interrupts.Add(1)
}

// ModeToggled records a foreground-only mode switch.
func (c *Collector) ModeToggled() {
	if c == nil {
		return
	}
	c.modeToggles.Add(1)
}

// ── Failure metrics ──────────────────────────────────────────────────

// LaunchFailed increments the failure counter and stores the message.
func (c *Collector) LaunchFailed(msg string) {
	if c == nil {
		return
	}
	c.launchFailures.Add(1)
	c.mu.Lock()
	c.lastFailure = time.Now()
	c.lastFailMsg = msg
	c.mu.Unlock()
}

// FailureCount returns the total number of launch failures recorded.
func (c *Collector) FailureCount() int64 {
	if c == nil {
		return 0
	}
	return c.launchFailures.Load()
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time view of all metrics.
type Snapshot struct {
	Uptime            string `json:"uptime"`
	LinesRead         int64  `json:"lines_read"`
	BuiltinsRun       int64  `json:"builtins_run"`
	ForegroundRun     int64  `json:"foreground_run"`
	BackgroundRun     int64  `json:"background_run"`
	ChildrenReaped    int64  `json:"children_reaped"`
	LaunchFailures    int64  `json:"launch_failures"`
	Interrupts        int64  `json:"interrupts"`
	ModeToggles       int64  `json:"mode_toggles"`
	LastFailure       string `json:"last_failure,omitempty"`
	LastFailureReason string `json:"last_failure_reason,omitempty"`
}

// Snapshot returns a copy of all current metrics.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Uptime:         time.Since(c.startTime).Truncate(time.Second).String(),
		LinesRead:      c.linesRead.Load(),
		BuiltinsRun:    c.builtinsRun.Load(),
		ForegroundRun:  c.foregroundRun.Load(),
		BackgroundRun:  c.backgroundRun.Load(),
		ChildrenReaped: c.childrenReaped.Load(),
		LaunchFailures: c.launchFailures.Load(),
		Interrupts:     c.interrupts.Load(),
		ModeToggles:    c.modeToggles.Load(),
	}
	if !c.lastFailure.IsZero() {
		s.LastFailure = c.lastFailure.Format(time.RFC3339)
		s.LastFailureReason = c.lastFailMsg
	}
	return s
}

// JSON returns the snapshot as an indented JSON string.
func (c *Collector) JSON() string {
	s := c.Snapshot()
	data, _ := json.MarshalIndent(s, "", "  ")
	return string(data)
}
