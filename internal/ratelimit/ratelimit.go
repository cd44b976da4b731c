// Package ratelimit provides the process-wide EDGAR request limiter.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// DefaultRequestsPerSecond is the SEC fair-access ceiling.
const DefaultRequestsPerSecond = 10

// Limiter admits at most R requests per second across all callers. Burst is
// fixed at 1 so admissions are evenly spaced; a wider burst could let more
// than R calls land inside a single one-second window.
type Limiter struct {
	lim *rate.Limiter
}

// New creates a limiter admitting rps requests per second.
func New(rps int) *Limiter {
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	return &Limiter{lim: rate.NewLimiter(rate.Limit(rps), 1)}
}

// Acquire blocks until a token is available or ctx is cancelled.
func (l *Limiter) Acquire(ctx context.Context) error {
	return l.lim.Wait(ctx)
}

// Allow reports whether a token is immediately available, consuming it if so.
func (l *Limiter) Allow() bool {
	return l.lim.Allow()
}
