// Package retry re-attempts process creation while the kernel reports a
// transient resource shortage, backing off exponentially between tries.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"syscall"
	"time"
)

// ExhaustedError is returned when every attempt failed with a retryable
// error.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("gave up after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error { return e.Err }

// IsTransient reports whether err is a shortage that may clear on its
// own: too many processes for the user (EAGAIN).
func IsTransient(err error) bool {
	return errors.Is(err, syscall.EAGAIN)
}

// Backoff retries an operation with exponentially growing delays.
type Backoff struct {
	// Initial is the delay before the second attempt (default 100ms).
	Initial time.Duration
	// Max caps a single delay (default 2s).
	Max time.Duration
	// Attempts is the total number of tries including the first.
	// Values below 1 mean a single try.
	Attempts int
	// Jitter adds ±25% randomisation to each delay.
	Jitter bool
	// Retryable decides which errors are worth another attempt.
	// Nil means IsTransient.
	Retryable func(error) bool
	// OnRetry, if set, is called before each wait.
	OnRetry func(attempt int, err error, wait time.Duration)
}

// ForkBackoff is the schedule used for spawning children: five tries
// over roughly three seconds.
func ForkBackoff() *Backoff {
	return &Backoff{
		Initial:  100 * time.Millisecond,
		Max:      2 * time.Second,
		Attempts: 5,
		Jitter:   true,
	}
}

// Do calls fn until it succeeds, fails with a non-retryable error, the
// attempts run out, or ctx is done.  A nil Backoff calls fn once.
//
// The attempt passed to fn is 1-based.  Non-retryable errors are
// returned unchanged.
func (b *Backoff) Do(ctx context.Context, fn func(attempt int) error) error {
	if b == nil {
		return fn(1)
	}
	retryable := b.Retryable
	if retryable == nil {
		retryable = IsTransient
	}
	delay := b.Initial
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}
	maxDelay := b.Max
	if maxDelay <= 0 {
		maxDelay = 2 * time.Second
	}
	attempts := b.Attempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; ; attempt++ {
		err := fn(attempt)
		if err == nil || !retryable(err) {
			return err
		}
		if attempt >= attempts {
			return &ExhaustedError{Attempts: attempt, Err: err}
		}

		wait := delay
		if b.Jitter {
			wait = addJitter(delay)
		}
		if b.OnRetry != nil {
			b.OnRetry(attempt, err, wait)
		}

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return fmt.Errorf("retry cancelled: %w", errors.Join(ctx.Err(), err))
		case <-t.C:
		}

		delay *= 2
		if delay > maxDelay {
			delay = maxDelay
		}
	}
}

// addJitter adds ±25% randomisation to a duration.
func addJitter(d time.Duration) time.Duration {
	quarter := float64(d) * 0.25
	delta := (rand.Float64() * 2 * quarter) - quarter
	return time.Duration(math.Max(float64(d)+delta, float64(time.Millisecond)))
}
