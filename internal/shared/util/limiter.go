// # internal/shared/util/limiter.go
package util

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter wraps rate.Limiter to provide a simpler interface.
type Limiter struct {
	inner *rate.Limiter
}

// NewLimiter creates a new token bucket limiter.
// r: tokens per second.
// b: burst size.
func NewLimiter(r float64, b int) *Limiter {
	return &Limiter{
		inner: rate.NewLimiter(rate.Limit(r), b),
	}
}

// NewIntervalLimiter allows one event per interval. A non-positive interval
// never limits.
func NewIntervalLimiter(interval time.Duration) *Limiter {
	if interval <= 0 {
		return NewLimiter(float64(rate.Inf), 1)
	}
	return NewLimiter(float64(rate.Every(interval)), 1)
}

// Allow reports whether an event with weight n may happen now.
func (l *Limiter) Allow(n int) bool {
	return l.inner.AllowN(time.Now(), n)
}

// Wait blocks until n tokens are available.
func (l *Limiter) Wait(ctx context.Context, n int) error {
	return l.inner.WaitN(ctx, n)
}
