package stats

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type counters struct {
	active, sold, clients int
	calls                 int
	fail                  error
}

func (c *counters) CountActive(context.Context) (int, error) {
	c.calls++
	return c.active, c.fail
}

func (c *counters) CountByStatus(_ context.Context, status string) (int, error) {
	return c.sold, c.fail
}

func (c *counters) CountDistinctEmails(context.Context) (int, error) {
	return c.clients, c.fail
}

func TestGet_AddsOffsets(t *testing.T) {
	c := &counters{active: 12, sold: 3, clients: 7}
	svc := NewStatsService(c, c, nil, zap.NewNop())

	st, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Stats{ActiveListings: 12, PropertiesSold: 33, HappyClients: 57}, st)
}

func TestGet_CachedInRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	c := &counters{active: 1}
	svc := NewStatsService(c, c, rdb, zap.NewNop())
	ctx := context.Background()

	first, err := svc.Get(ctx)
	require.NoError(t, err)

	c.active = 99
	second, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, c.calls)

	mr.FastForward(61 * time.Second)
	third, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 99, third.ActiveListings)
}

func TestGet_CacheDownFallsBackToStore(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	mr.Close()

	c := &counters{active: 5}
	st, err := NewStatsService(c, c, rdb, zap.NewNop()).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, st.ActiveListings)
}

func TestGet_StoreFailure(t *testing.T) {
	c := &counters{fail: assert.AnError}
	_, err := NewStatsService(c, c, nil, zap.NewNop()).Get(context.Background())
	assert.Error(t, err)
}
