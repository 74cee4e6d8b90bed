package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter keeps fixed-window counters in Redis. INCR and PTTL share one
// MULTI round trip; the window is only armed when the key has no expiry yet.
type RedisLimiter struct {
	client redis.Cmdable
}

func NewRedisLimiter(client redis.Cmdable) *RedisLimiter {
	return &RedisLimiter{client: client}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error) {
	var (
		incr *redis.IntCmd
		pttl *redis.DurationCmd
	)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pttl = pipe.PTTL(ctx, key)
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	count := incr.Val()
	ttl := pttl.Val()

	// first hit, or a counter that lost its expiry
	if ttl < 0 {
		if err := r.client.PExpire(ctx, key, window).Err(); err != nil {
			return Result{}, fmt.Errorf("failed to set rate limit window: %w", err)
		}
		ttl = window
	}

	if count <= int64(limit) {
		return Result{Allowed: true, Remaining: remaining(limit, count)}, nil
	}
	return Result{Allowed: false, RetryAfter: ttl}, nil
}

func (r *RedisLimiter) Reset(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
