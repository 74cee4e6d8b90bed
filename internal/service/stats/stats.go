// internal/service/stats/stats.go
package stats

import (
	"context"
	"encoding/json"
	"time"

	"realty-service/internal/domain/property"
	xerrors "realty-service/internal/pkg/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// Offsets shown on the public site on top of live counts.
	baseSold    = 30
	baseClients = 50

	cacheKey = "stats:public"
	cacheTTL = 60 * time.Second
)

// Stats are the headline numbers on the public site.
type Stats struct {
	ActiveListings int `json:"active_listings"`
	PropertiesSold int `json:"properties_sold"`
	HappyClients   int `json:"happy_clients"`
}

// PropertyCounter and ClientCounter are the repository slices the stats need.
type PropertyCounter interface {
	CountActive(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status string) (int, error)
}

type ClientCounter interface {
	CountDistinctEmails(ctx context.Context) (int, error)
}

type StatsService struct {
	properties PropertyCounter
	clients    ClientCounter
	cache      redis.Cmdable
	logger     *zap.Logger
}

// NewStatsService builds the service. cache may be nil.
func NewStatsService(properties PropertyCounter, clients ClientCounter, cache redis.Cmdable, logger *zap.Logger) *StatsService {
	return &StatsService{
		properties: properties,
		clients:    clients,
		cache:      cache,
		logger:     logger,
	}
}

func (s *StatsService) Get(ctx context.Context) (*Stats, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	active, err := s.properties.CountActive(ctx)
	if err != nil {
		return nil, xerrors.Unavailable(err, "failed to count listings")
	}
	sold, err := s.properties.CountByStatus(ctx, property.StatusSold)
	if err != nil {
		return nil, xerrors.Unavailable(err, "failed to count sold listings")
	}
	clients, err := s.clients.CountDistinctEmails(ctx)
	if err != nil {
		return nil, xerrors.Unavailable(err, "failed to count clients")
	}

	st := &Stats{
		ActiveListings: active,
		PropertiesSold: sold + baseSold,
		HappyClients:   clients + baseClients,
	}
	s.toCache(ctx, st)
	return st, nil
}

func (s *StatsService) fromCache(ctx context.Context) *Stats {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("stats cache read failed", zap.Error(err))
		}
		return nil
	}
	var st Stats
	if err := json.Unmarshal(data, &st); err != nil {
		return nil
	}
	return &st
}

func (s *StatsService) toCache(ctx context.Context, st *Stats) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(st)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey, data, cacheTTL).Err(); err != nil {
		s.logger.Warn("stats cache write failed", zap.Error(err))
	}
}
