// Package resilience provides the pure retry-policy primitives used by the
// call engine: exponential back-off delays, per-attempt timeout escalation,
// and a context-aware sleep.
//
// Delays and timeouts are pure functions of the attempt index and the base
// configuration, so the retry loop can be unit-tested without real clocks.
package resilience

import (
	"context"
	"math"
	"time"
)

// maxShift caps the exponent so repeated retries cannot overflow a Duration.
const maxShift = 32

// Delay returns the back-off sleep applied before the retry that follows the
// given zero-based attempt: base × 2^attempt.
func Delay(base time.Duration, attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if attempt > maxShift {
		attempt = maxShift
	}
	return base * time.Duration(int64(1)<<uint(attempt))
}

// Timeout returns the wall-clock budget for the given zero-based attempt:
// base × 1.5^attempt.
//
// The budget grows on every attempt regardless of why the previous one
// failed. This hedges against a service that is uniformly slow or overloaded
// rather than only compensating for explicit timeout errors.
func Timeout(base time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return base
	}
	if attempt > maxShift {
		attempt = maxShift
	}
	return time.Duration(float64(base) * math.Pow(1.5, float64(attempt)))
}

// Sleep blocks for d or until ctx is done, returning ctx.Err() in the
// latter case. Only the calling goroutine blocks.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
