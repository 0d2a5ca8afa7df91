// Package ratelimit provides per-client token bucket rate limiting for the
// PioneerPool HTTP surface.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter hands each client key its own token bucket.
type Limiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// NewLimiter creates a limiter with the specified per-client RPS and burst.
func NewLimiter(rps float64, burst int) *Limiter {
	return &Limiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    burst,
	}
}

func (l *Limiter) getLimiter(key string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[key]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring the write lock.
	if limiter, exists := l.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(l.rps), l.burst)
	l.limiters[key] = limiter
	return limiter
}

// Allow reports whether a request for the given client key may proceed now.
func (l *Limiter) Allow(key string) bool {
	return l.getLimiter(key).Allow()
}

// Wait blocks until a request for the given client key is allowed or the
// context is cancelled.
func (l *Limiter) Wait(ctx context.Context, key string) error {
	return l.getLimiter(key).Wait(ctx)
}

// Clients returns the number of distinct client keys seen so far.
func (l *Limiter) Clients() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.limiters)
}
