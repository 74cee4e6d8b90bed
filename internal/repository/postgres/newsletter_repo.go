// internal/repository/postgres/newsletter_repo.go
package postgres

import (
	"context"
	"fmt"

	"realty-service/internal/domain/newsletter"
)

type NewsletterRepository struct {
	db DBTX
}

func NewNewsletterRepository(db DBTX) *NewsletterRepository {
	return &NewsletterRepository{db: db}
}

var _ newsletter.Repository = (*NewsletterRepository)(nil)

func (r *NewsletterRepository) Subscribe(ctx context.Context, email string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`INSERT INTO newsletter_subscriptions (email) VALUES ($1) ON CONFLICT (email) DO NOTHING`, email)
	if err != nil {
		return false, fmt.Errorf("failed to subscribe: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
