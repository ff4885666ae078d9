package service

import "time"

// Backoff defaults. Three attempts total, one second doubling to a cap.
const (
	DefaultMaxAttempts = 3
	DefaultBackoffBase = 1 * time.Second
	DefaultBackoffCap  = 8 * time.Second
)

// Backoff is the retry schedule for transient lookup failures. It is a
// value, not a timer: it decides whether another attempt may run and how
// long to wait first, while the caller owns the sleeping. Copy it to start
// a fresh schedule.
type Backoff struct {
	maxAttempts int
	base        time.Duration
	ceiling     time.Duration

	failures int
}

// NewBackoff builds a schedule allowing maxAttempts total attempts with
// delays doubling from base up to ceiling. Out-of-range arguments fall
// back to the defaults.
func NewBackoff(maxAttempts int, base, ceiling time.Duration) Backoff {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	if base <= 0 {
		base = DefaultBackoffBase
	}
	if ceiling < base {
		ceiling = base
	}
	return Backoff{maxAttempts: maxAttempts, base: base, ceiling: ceiling}
}

// Next records a failed attempt. It returns the delay to wait before the
// next attempt, or ok=false when the schedule is exhausted and the failure
// is final.
func (b *Backoff) Next() (delay time.Duration, ok bool) {
	b.failures++
	if b.failures >= b.maxAttempts {
		return 0, false
	}
	delay = b.base << (b.failures - 1)
	if delay > b.ceiling || delay <= 0 {
		delay = b.ceiling
	}
	return delay, true
}

// Attempts returns how many attempts have failed so far.
func (b *Backoff) Attempts() int {
	return b.failures
}
