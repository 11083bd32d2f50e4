package ratelimit

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter implements a sliding window limiter over redis sorted sets.
// Each request is recorded as a zset member scored by its nanosecond
// timestamp; members older than the window are pruned on every check.
// Members carry a process-local sequence number so that requests landing
// on the same timestamp stay distinct entries in the set.
type RedisLimiter struct {
	client *redis.Client
	now    func() time.Time
	seq    atomic.Uint64
}

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		now:    time.Now,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, cfg Config) (bool, error) {
	now := l.now()

	windows := []struct {
		duration time.Duration
		limit    int
	}{
		{time.Minute, cfg.RequestsPerMinute},
		{time.Hour, cfg.RequestsPerHour},
	}

	for _, window := range windows {
		if window.limit <= 0 {
			continue
		}

		allowed, err := l.checkWindow(ctx, key, window.duration, window.limit, now)
		if err != nil {
			return false, err
		}
		if !allowed {
			return false, nil
		}
	}

	return true, nil
}

func (l *RedisLimiter) checkWindow(ctx context.Context, key string, window time.Duration, limit int, now time.Time) (bool, error) {
	redisKey := l.redisKey(key, window)
	windowStart := now.Add(-window).UnixNano()
	nowNano := now.UnixNano()

	member := fmt.Sprintf("%d-%d", nowNano, l.seq.Add(1))

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart))
	zcard := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(nowNano), Member: member})
	pipe.Expire(ctx, redisKey, window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to execute rate limit pipeline: %w", err)
	}

	return zcard.Val() < int64(limit), nil
}

func (l *RedisLimiter) redisKey(key string, window time.Duration) string {
	return fmt.Sprintf("ratelimit:%s:%s", key, window.String())
}
