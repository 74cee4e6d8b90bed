// internal/service/property/property.go
package property

import (
	"context"
	"errors"
	"strings"

	"realty-service/internal/domain/asset"
	"realty-service/internal/domain/property"
	xerrors "realty-service/internal/pkg/errors"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// AllTypes is the catalog's "no type filter" choice.
const AllTypes = "All Types"

type PropertyService struct {
	repo   property.Repository
	assets asset.Store
	logger *zap.Logger
}

// NewPropertyService builds the service. assets may be nil when no object store is configured.
func NewPropertyService(repo property.Repository, assets asset.Store, logger *zap.Logger) *PropertyService {
	return &PropertyService{
		repo:   repo,
		assets: assets,
		logger: logger,
	}
}

// ListQuery is the catalog search as received from the client.
type ListQuery struct {
	Title           string
	Location        string
	Type            string
	IncludeInactive bool
}

func (s *PropertyService) List(ctx context.Context, q ListQuery) ([]*property.Property, error) {
	f := property.Filter{
		Title:      strings.TrimSpace(q.Title),
		Location:   strings.TrimSpace(q.Location),
		ActiveOnly: !q.IncludeInactive,
	}
	if t := strings.TrimSpace(q.Type); t != "" && t != AllTypes {
		f.Type = t
	}

	properties, err := s.repo.List(ctx, f)
	if err != nil {
		s.logger.Error("failed to list properties", zap.Error(err))
		return nil, xerrors.Unavailable(err, "failed to list properties")
	}
	return properties, nil
}

// Get returns a listing; hidden listings are only visible with includeInactive.
func (s *PropertyService) Get(ctx context.Context, id int64, includeInactive bool) (*property.Property, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil, err
		}
		return nil, xerrors.Unavailable(err, "failed to load property")
	}
	if !p.IsActive && !includeInactive {
		return nil, xerrors.ErrNotFound
	}
	return p, nil
}

func (s *PropertyService) Create(ctx context.Context, req *property.UpsertRequest) (*property.Property, error) {
	p := fromRequest(req)
	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("failed to create property", zap.Error(err))
		return nil, xerrors.Unavailable(err, "failed to create property")
	}

	s.logger.Info("property created", zap.Int64("property_id", p.ID), zap.String("title", p.Title))
	return p, nil
}

func (s *PropertyService) Update(ctx context.Context, id int64, req *property.UpsertRequest) (*property.Property, error) {
	existing, err := s.Get(ctx, id, true)
	if err != nil {
		return nil, err
	}

	p := fromRequest(req)
	p.ID = id
	if req.IsActive == nil {
		p.IsActive = existing.IsActive
	}
	if req.Status == "" {
		p.Status = existing.Status
	}

	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to update property", zap.Int64("property_id", id), zap.Error(err))
		return nil, xerrors.Unavailable(err, "failed to update property")
	}

	s.removeImages(ctx, id, removedImages(existing.Images, p.Images))
	s.logger.Info("property updated", zap.Int64("property_id", id))
	return p, nil
}

func (s *PropertyService) SetActive(ctx context.Context, id int64, active bool) (*property.Property, error) {
	p, err := s.repo.SetActive(ctx, id, active)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil, err
		}
		return nil, xerrors.Unavailable(err, "failed to update property")
	}
	s.logger.Info("property visibility changed", zap.Int64("property_id", id), zap.Bool("is_active", active))
	return p, nil
}

// Delete removes the listing, then its images. Image cleanup is best effort.
func (s *PropertyService) Delete(ctx context.Context, id int64) error {
	p, err := s.Get(ctx, id, true)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return err
		}
		s.logger.Error("failed to delete property", zap.Int64("property_id", id), zap.Error(err))
		return xerrors.Unavailable(err, "failed to delete property")
	}

	s.removeImages(ctx, id, p.Images)
	s.logger.Info("property deleted", zap.Int64("property_id", id))
	return nil
}

func (s *PropertyService) removeImages(ctx context.Context, id int64, urls []string) {
	if s.assets == nil {
		return
	}
	for _, u := range urls {
		key, ok := s.assets.KeyFromURL(u)
		if !ok {
			s.logger.Debug("image not owned by asset store, skipping", zap.String("url", u))
			continue
		}
		if err := s.assets.Delete(ctx, key); err != nil {
			s.logger.Error("failed to delete property image",
				zap.Int64("property_id", id),
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}
}

func fromRequest(req *property.UpsertRequest) *property.Property {
	p := &property.Property{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Price:        req.Price,
		Location:     strings.TrimSpace(req.Location),
		PropertyType: property.Type(req.PropertyType),
		Beds:         req.Beds,
		Baths:        req.Baths,
		Area:         req.Area,
		Images:       pq.StringArray(req.Images),
		IsActive:     true,
		Status:       property.StatusAvailable,
	}
	if p.Images == nil {
		p.Images = pq.StringArray{}
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if req.Status != "" {
		p.Status = req.Status
	}
	return p
}

func removedImages(before, after []string) []string {
	keep := make(map[string]struct{}, len(after))
	for _, u := range after {
		keep[u] = struct{}{}
	}
	var gone []string
	for _, u := range before {
		if _, ok := keep[u]; !ok {
			gone = append(gone, u)
		}
	}
	return gone
}
