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

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	l := NewMemoryLimiter()
	defer l.Stop()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		res, err := l.Allow(ctx, "ip:1", 5, time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Allowed, "hit %d", i+1)
		assert.Equal(t, 4-i, res.Remaining)
	}

	res, err := l.Allow(ctx, "ip:1", 5, time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, time.Minute, res.RetryAfter)

	// other keys are independent
	res, err = l.Allow(ctx, "ip:2", 5, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	now = now.Add(time.Minute)
	res, err = l.Allow(ctx, "ip:1", 5, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed, "window rolled over")
}

func TestMemoryLimiter_ResetAndCleanup(t *testing.T) {
	l := NewMemoryLimiter()
	defer l.Stop()
	ctx := context.Background()

	_, _ = l.Allow(ctx, "k", 1, time.Minute)
	res, _ := l.Allow(ctx, "k", 1, time.Minute)
	assert.False(t, res.Allowed)

	require.NoError(t, l.Reset(ctx, "k"))
	res, _ = l.Allow(ctx, "k", 1, time.Minute)
	assert.True(t, res.Allowed)

	l.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	l.cleanup()
	l.mu.Lock()
	assert.Empty(t, l.buckets)
	l.mu.Unlock()
}

func TestRedisLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	l := NewRedisLimiter(client)
	ctx := context.Background()
	rule := Rule{Scope: "newsletter", Limit: 2, Window: time.Minute}
	key := rule.Key("10.0.0.1")
	assert.Equal(t, "ratelimit:newsletter:10.0.0.1", key)

	for i := 0; i < 2; i++ {
		res, err := l.Allow(ctx, key, rule.Limit, rule.Window)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}

	res, err := l.Allow(ctx, key, rule.Limit, rule.Window)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Greater(t, res.RetryAfter, time.Duration(0))

	mr.FastForward(time.Minute + time.Second)
	res, err = l.Allow(ctx, key, rule.Limit, rule.Window)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	require.NoError(t, l.Reset(ctx, key))
	assert.False(t, mr.Exists(key))
}

func TestRedisLimiter_ArmsWindowOnce(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	l := NewRedisLimiter(client)
	ctx := context.Background()

	_, err := l.Allow(ctx, "k", 5, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, mr.TTL("k"))

	// later hits keep the original window
	mr.FastForward(20 * time.Second)
	_, err = l.Allow(ctx, "k", 5, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 40*time.Second, mr.TTL("k"))

	// a counter without expiry is given a fresh window
	require.NoError(t, mr.Set("stuck", "9"))
	res, err := l.Allow(ctx, "stuck", 5, time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, time.Minute, res.RetryAfter)
	assert.Equal(t, time.Minute, mr.TTL("stuck"))
}

func TestRedisLimiter_StoreDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	_, err := NewRedisLimiter(client).Allow(context.Background(), "k", 1, time.Minute)
	assert.Error(t, err)
}
