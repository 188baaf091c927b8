package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// sweepEvery is how many calls pass between removals of idle keys.
const sweepEvery = 1024

// InMemoryRateLimiter keeps one token bucket per key. Counters are local to
// the process.
type InMemoryRateLimiter struct {
	requests int
	window   time.Duration
	now      func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
	sinceGC int
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewInMemoryRateLimiter(requests int, window time.Duration) *InMemoryRateLimiter {
	return &InMemoryRateLimiter{
		requests: requests,
		window:   window,
		now:      time.Now,
		buckets:  make(map[string]*bucket),
	}
}

func (r *InMemoryRateLimiter) GetLimitDetails() (int, time.Duration) {
	return r.requests, r.window
}

func (r *InMemoryRateLimiter) IsLimited(_ context.Context, key string) (bool, error) {
	key = withPrefix(key)
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.buckets[key]
	if !ok {
		every := r.window / time.Duration(max(r.requests, 1))
		b = &bucket{limiter: rate.NewLimiter(rate.Every(every), r.requests)}
		r.buckets[key] = b
	}
	b.lastSeen = now

	r.sinceGC++
	if r.sinceGC >= sweepEvery {
		r.sinceGC = 0
		r.sweep(now)
	}

	return !b.limiter.AllowN(now, 1), nil
}

// sweep drops buckets idle for two windows; a bucket that old is full again.
func (r *InMemoryRateLimiter) sweep(now time.Time) {
	cutoff := now.Add(-2 * r.window)
	for key, b := range r.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(r.buckets, key)
		}
	}
}

func (r *InMemoryRateLimiter) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buckets)
}

func (r *InMemoryRateLimiter) Close() error {
	return nil
}
