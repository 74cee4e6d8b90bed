// internal/service/activity/activity.go
package activity

import (
	"context"
	"time"

	"realty-service/internal/domain/activity"
	xerrors "realty-service/internal/pkg/errors"

	"go.uber.org/zap"
)

const (
	Retention     = 30 * 24 * time.Hour
	DefaultLimit  = 100
	MaxLimit      = 500
	recordTimeout = 3 * time.Second
)

type ActivityService struct {
	repo   activity.Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewActivityService(repo activity.Repository, logger *zap.Logger) *ActivityService {
	return &ActivityService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Record persists an event. Failures are logged and never reach the caller.
func (s *ActivityService) Record(ctx context.Context, level activity.Level, message string, meta map[string]interface{}) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	e := &activity.Entry{Level: level, Message: message, Meta: meta}
	if err := s.repo.Insert(ctx, e); err != nil {
		s.logger.Error("failed to record activity",
			zap.String("message", message),
			zap.Error(err),
		)
	}
}

// List returns recent entries, newest first.
func (s *ActivityService) List(ctx context.Context, level string, limit int) ([]*activity.Entry, error) {
	lvl := activity.Level(level)
	switch lvl {
	case "", activity.LevelInfo, activity.LevelWarn, activity.LevelError:
	default:
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "unknown level "+level)
	}

	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	entries, err := s.repo.List(ctx, lvl, limit)
	if err != nil {
		return nil, xerrors.Unavailable(err, "failed to list activity")
	}
	return entries, nil
}

// Purge drops entries older than the retention window.
func (s *ActivityService) Purge(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteOlderThan(ctx, s.now().Add(-Retention))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("purged activity logs", zap.Int64("deleted", n))
	}
	return n, nil
}

// StartPurger runs Purge every interval until ctx is cancelled.
func (s *ActivityService) StartPurger(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		if _, err := s.Purge(ctx); err != nil {
			s.logger.Error("activity purge failed", zap.Error(err))
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.Purge(ctx); err != nil {
					s.logger.Error("activity purge failed", zap.Error(err))
				}
			}
		}
	}()
}
