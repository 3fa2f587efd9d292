package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterBucketsPerKey(t *testing.T) {
	limiter := NewRateLimiter(0.001, 2)

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))

	assert.True(t, limiter.Allow("10.0.0.2"))
}

func TestRateLimiterEvictsIdleBuckets(t *testing.T) {
	limiter := NewRateLimiter(0.001, 1)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	limiter.lastSweep = now

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.2"))
	assert.False(t, limiter.Allow("10.0.0.1"))
	assert.Equal(t, 2, limiter.size())

	now = now.Add(bucketIdleTTL / 2)
	assert.False(t, limiter.Allow("10.0.0.2"))

	// 10.0.0.1 has been idle a full TTL, 10.0.0.2 only half of one.
	now = now.Add(bucketIdleTTL / 2)
	assert.True(t, limiter.Allow("10.0.0.3"))
	assert.Equal(t, 2, limiter.size())

	// a swept key starts over with a fresh bucket
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.Equal(t, 3, limiter.size())
}
