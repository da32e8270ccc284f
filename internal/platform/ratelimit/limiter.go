// Package ratelimit throttles requests per client key. Two backends are
// provided: an in-process token bucket and a Redis sliding window shared
// between replicas.
package ratelimit

import (
	"context"
	"time"
)

// Limiter decides whether one more request for key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// Result describes the limiter state after a decision.
type Result struct {
	Allowed bool
	// Limit is the number of requests permitted per window.
	Limit int
	// Remaining is how many further requests would be allowed right now.
	Remaining int
	// ResetAt is when the next request would be allowed again, or when the
	// window fully refills if requests remain.
	ResetAt time.Time
}

// RetryAfter is the wait before ResetAt, never negative.
func (r Result) RetryAfter(now time.Time) time.Duration {
	if d := r.ResetAt.Sub(now); d > 0 {
		return d
	}
	return 0
}
