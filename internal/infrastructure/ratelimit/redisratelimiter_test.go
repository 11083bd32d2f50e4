package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLimiter(t *testing.T) *RedisLimiter {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisLimiter(client)
}

func TestRedisLimiter_AllowsUpToMinuteLimit(t *testing.T) {
	limiter := testLimiter(t)
	cfg := Config{RequestsPerMinute: 5}

	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow(context.Background(), "203.0.113.7", cfg)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(context.Background(), "203.0.113.7", cfg)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestRedisLimiter_KeysAreIndependent(t *testing.T) {
	limiter := testLimiter(t)
	cfg := Config{RequestsPerMinute: 1}

	allowed, err := limiter.Allow(context.Background(), "alice", cfg)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(context.Background(), "alice", cfg)
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = limiter.Allow(context.Background(), "bob", cfg)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisLimiter_WindowSlides(t *testing.T) {
	limiter := testLimiter(t)
	cfg := Config{RequestsPerMinute: 2}

	base := time.Now()
	limiter.now = func() time.Time { return base }

	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(context.Background(), "key", cfg)
		require.NoError(t, err)
		require.True(t, allowed)
	}

	allowed, err := limiter.Allow(context.Background(), "key", cfg)
	require.NoError(t, err)
	assert.False(t, allowed)

	// Once the earlier requests fall out of the window the key recovers.
	limiter.now = func() time.Time { return base.Add(2 * time.Minute) }

	allowed, err = limiter.Allow(context.Background(), "key", cfg)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisLimiter_CountsRequestsSharingATimestamp(t *testing.T) {
	limiter := testLimiter(t)
	cfg := Config{RequestsPerMinute: 3}

	// A frozen clock gives every request the identical score; each one
	// must still count against the limit individually.
	frozen := time.Now()
	limiter.now = func() time.Time { return frozen }

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(context.Background(), "burst", cfg)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(context.Background(), "burst", cfg)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestRedisLimiter_ZeroLimitDisablesWindow(t *testing.T) {
	limiter := testLimiter(t)
	cfg := Config{RequestsPerMinute: 0, RequestsPerHour: 0}

	for i := 0; i < 20; i++ {
		allowed, err := limiter.Allow(context.Background(), "unbounded", cfg)
		require.NoError(t, err)
		assert.True(t, allowed)
	}
}
