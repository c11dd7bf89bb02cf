package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(max int, window time.Duration) (*Limiter, *time.Time) {
	l := New(max, window)
	now := time.Now()
	l.now = func() time.Time { return now }
	return l, &now
}

func TestAllowUpToCeiling(t *testing.T) {
	l, _ := newTestLimiter(3, time.Minute)

	assert.True(t, l.Allow("user-1"))
	assert.True(t, l.Allow("user-1"))
	assert.True(t, l.Allow("user-1"))
	assert.False(t, l.Allow("user-1"))
}

func TestKeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)

	assert.True(t, l.Allow("user-1"))
	assert.False(t, l.Allow("user-1"))
	assert.True(t, l.Allow("user-2"))
}

func TestAllowAfterWindowElapsed(t *testing.T) {
	l, now := newTestLimiter(2, time.Minute)

	assert.True(t, l.Allow("user-1"))
	assert.True(t, l.Allow("user-1"))
	assert.False(t, l.Allow("user-1"))

	*now = now.Add(61 * time.Second)
	assert.True(t, l.Allow("user-1"))
}

func TestSlidingWindowPartialExpiry(t *testing.T) {
	l, now := newTestLimiter(2, time.Minute)

	assert.True(t, l.Allow("user-1"))
	*now = now.Add(40 * time.Second)
	assert.True(t, l.Allow("user-1"))

	// First timestamp leaves the window, second is still inside.
	*now = now.Add(30 * time.Second)
	assert.True(t, l.Allow("user-1"))
	assert.False(t, l.Allow("user-1"))
}

func TestEvictDropsIdleBuckets(t *testing.T) {
	l, now := newTestLimiter(5, time.Minute)

	l.Allow("idle")
	l.Allow("busy")

	*now = now.Add(2 * time.Minute)
	l.Allow("busy")

	l.Evict()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.NotContains(t, l.buckets, "idle")
	assert.Contains(t, l.buckets, "busy")
}

func TestRetryAfter(t *testing.T) {
	l := New(10, 15*time.Minute)
	assert.Equal(t, 15*time.Minute, l.RetryAfter())
}
