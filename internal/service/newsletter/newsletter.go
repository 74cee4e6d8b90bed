// internal/service/newsletter/newsletter.go
package newsletter

import (
	"context"
	"strings"

	"realty-service/internal/domain/newsletter"
	xerrors "realty-service/internal/pkg/errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type NewsletterService struct {
	repo     newsletter.Repository
	validate *validator.Validate
	logger   *zap.Logger
}

func NewNewsletterService(repo newsletter.Repository, logger *zap.Logger) *NewsletterService {
	return &NewsletterService{
		repo:     repo,
		validate: validator.New(),
		logger:   logger,
	}
}

// Subscribe adds email to the list and reports whether it was new.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.validate.Var(email, "required,email"); err != nil {
		return false, xerrors.Wrap(xerrors.ErrInvalidInput, "invalid email address")
	}

	created, err := s.repo.Subscribe(ctx, email)
	if err != nil {
		s.logger.Error("failed to subscribe", zap.Error(err))
		return false, xerrors.Unavailable(err, "failed to subscribe")
	}

	if created {
		s.logger.Info("newsletter subscription added")
	}
	return created, nil
}
