package activity

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"realty-service/internal/domain/activity"
	xerrors "realty-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memRepo struct {
	mu        sync.Mutex
	entries   []*activity.Entry
	cutoff    time.Time
	lastLimit int
	fail      error
}

func (r *memRepo) Insert(_ context.Context, e *activity.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	e.ID = int64(len(r.entries) + 1)
	r.entries = append(r.entries, e)
	return nil
}

func (r *memRepo) List(_ context.Context, level activity.Level, limit int) ([]*activity.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastLimit = limit
	out := []*activity.Entry{}
	for _, e := range r.entries {
		if level == "" || e.Level == level {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cutoff = cutoff
	return 3, nil
}

func TestRecord_SwallowsErrors(t *testing.T) {
	repo := &memRepo{fail: errors.New("db down")}
	s := NewActivityService(repo, zap.NewNop())

	assert.NotPanics(t, func() {
		s.Record(context.Background(), activity.LevelInfo, "login succeeded", nil)
	})
}

func TestRecord_SurvivesCancelledContext(t *testing.T) {
	repo := &memRepo{}
	s := NewActivityService(repo, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Record(ctx, activity.LevelWarn, "login failed", map[string]interface{}{"email": "a@example.com"})

	require.Len(t, repo.entries, 1)
	assert.Equal(t, activity.LevelWarn, repo.entries[0].Level)
}

func TestList(t *testing.T) {
	repo := &memRepo{}
	s := NewActivityService(repo, zap.NewNop())
	ctx := context.Background()

	s.Record(ctx, activity.LevelInfo, "a", nil)
	s.Record(ctx, activity.LevelError, "b", nil)

	entries, err := s.List(ctx, "error", 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, DefaultLimit, repo.lastLimit)

	_, err = s.List(ctx, "", 10000)
	require.NoError(t, err)
	assert.Equal(t, MaxLimit, repo.lastLimit)

	_, err = s.List(ctx, "debug", 10)
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestPurge_UsesRetentionWindow(t *testing.T) {
	repo := &memRepo{}
	s := NewActivityService(repo, zap.NewNop())
	now := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	n, err := s.Purge(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC), repo.cutoff)
}
