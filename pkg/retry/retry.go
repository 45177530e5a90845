// Package retry provides a bounded retry loop with pluggable backoff,
// reusable for any fallible operation.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Backoff returns the delay to sleep before the given attempt.
// Attempt numbering starts at 1 for the first retry.
type Backoff func(attempt int) time.Duration

// Exponential returns a backoff of base * 2^(attempt-1).
func Exponential(base time.Duration) Backoff {
	return func(attempt int) time.Duration {
		return base << (attempt - 1)
	}
}

// Policy bounds how often and how fast an operation is retried.
type Policy struct {
	MaxAttempts int
	Backoff     Backoff
}

// Do runs fn up to MaxAttempts times, sleeping per the backoff between
// attempts. It returns the first success, or the last error once the
// attempts are exhausted. Context cancellation interrupts the sleep.
func Do(ctx context.Context, p Policy, fn func() error) error {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if attempt > 1 && p.Backoff != nil {
			select {
			case <-time.After(p.Backoff(attempt - 1)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if lastErr = fn(); lastErr == nil {
			return nil
		}
	}

	return fmt.Errorf("giving up after %d attempts: %w", p.MaxAttempts, lastErr)
}
