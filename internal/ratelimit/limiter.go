// Package ratelimit implements the per-user sliding-window request
// limiter. State is process-local and advisory; it is not a security
// boundary and is not persisted.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter counts request timestamps per key inside a moving window. Safe
// for concurrent use; a single lock guards the map, which is sufficient at
// the expected contention level.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string][]time.Time
	max     int
	window  time.Duration
	now     func() time.Time
}

func New(max int, window time.Duration) *Limiter {
	return &Limiter{
		buckets: make(map[string][]time.Time),
		max:     max,
		window:  window,
		now:     time.Now,
	}
}

// Allow records a request for key and reports whether it is within the
// ceiling. Timestamps older than the window are dropped first, so a
// request issued after the window has elapsed always succeeds.
func (l *Limiter) Allow(key string) bool {
	now := l.now()
	windowStart := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	valid := l.buckets[key][:0]
	for _, ts := range l.buckets[key] {
		if ts.After(windowStart) {
			valid = append(valid, ts)
		}
	}

	if len(valid) >= l.max {
		l.buckets[key] = valid
		return false
	}

	l.buckets[key] = append(valid, now)
	return true
}

// RetryAfter returns the configured window, used for the 429 message.
func (l *Limiter) RetryAfter() time.Duration {
	return l.window
}

// Evict drops buckets whose newest timestamp fell out of the window, so
// long-idle users do not grow the map without bound.
func (l *Limiter) Evict() {
	windowStart := l.now().Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, bucket := range l.buckets {
		if len(bucket) == 0 || !bucket[len(bucket)-1].After(windowStart) {
			delete(l.buckets, key)
		}
	}
}

// StartEviction runs Evict on a ticker until done is closed.
func (l *Limiter) StartEviction(interval time.Duration, done <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.Evict()
			case <-done:
				return
			}
		}
	}()
}
