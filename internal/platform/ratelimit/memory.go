package ratelimit

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleTTL is how long an unused bucket is kept before it is evicted.
const idleTTL = 10 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter is a token bucket per key, refilled at RequestsPerMinute.
type MemoryLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	limit     rate.Limit
	perMinute int
	burst     int
	now       func() time.Time
	lastSweep time.Time
}

// NewMemoryLimiter allows requestsPerMinute steady-state requests per key
// with bursts of up to burst requests. A burst of zero uses requestsPerMinute.
func NewMemoryLimiter(requestsPerMinute, burst int) (*MemoryLimiter, error) {
	if requestsPerMinute <= 0 {
		return nil, errors.New("requests per minute must be greater than 0")
	}
	if burst <= 0 {
		burst = requestsPerMinute
	}
	return &MemoryLimiter{
		buckets:   make(map[string]*bucket),
		limit:     rate.Limit(float64(requestsPerMinute) / 60.0),
		perMinute: requestsPerMinute,
		burst:     burst,
		now:       time.Now,
	}, nil
}

// Allow implements Limiter.
func (m *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweepLocked(now)

	b, ok := m.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(m.limit, m.burst)}
		m.buckets[key] = b
	}
	b.lastSeen = now

	allowed := b.limiter.AllowN(now, 1)
	tokens := b.limiter.TokensAt(now)

	res := Result{
		Allowed:   allowed,
		Limit:     m.perMinute,
		Remaining: max(0, int(math.Floor(tokens))),
	}
	perToken := time.Duration(float64(time.Second) / float64(m.limit))
	if tokens < 1 {
		res.ResetAt = now.Add(time.Duration((1 - tokens) * float64(perToken)))
	} else {
		res.ResetAt = now.Add(time.Duration((float64(m.burst) - tokens) * float64(perToken)))
	}
	return res, nil
}

// sweepLocked evicts idle buckets at most once per idleTTL.
func (m *MemoryLimiter) sweepLocked(now time.Time) {
	if now.Sub(m.lastSweep) < idleTTL {
		return
	}
	m.lastSweep = now
	for key, b := range m.buckets {
		if now.Sub(b.lastSeen) > idleTTL {
			delete(m.buckets, key)
		}
	}
}

// Len reports the number of tracked keys.
func (m *MemoryLimiter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.buckets)
}
