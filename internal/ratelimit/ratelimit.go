// Package ratelimit paces outbound requests with one token bucket per
// key. The sheets and drive clients key by destination host, so every
// Google endpoint is throttled independently.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// KeyedRateLimiter hands out a token bucket per key on first use. The
// key space here is a couple of Google hosts, so buckets are never
// evicted.
type KeyedRateLimiter struct {
	limit rate.Limit
	burst int

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// New creates a keyed limiter allowing rps sustained requests per key,
// with burst tokens available immediately.
func New(rps float64, burst int) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		buckets: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether a request for the key may proceed right now.
func (l *KeyedRateLimiter) Allow(key string) bool {
	return l.bucket(key).Allow()
}

// Wait blocks until the key's bucket releases a token or the context
// ends. All outbound sync fetches go through this.
func (l *KeyedRateLimiter) Wait(ctx context.Context, key string) error {
	return l.bucket(key).Wait(ctx)
}

// Stop releases the limiter. Present for symmetry with the clients'
// Close; no background work runs.
func (l *KeyedRateLimiter) Stop() {}

func (l *KeyedRateLimiter) bucket(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = rate.NewLimiter(l.limit, l.burst)
		l.buckets[key] = b
	}
	return b
}
