// internal/repository/postgres/activity_repo.go
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"realty-service/internal/domain/activity"
)

type ActivityRepository struct {
	db DBTX
}

func NewActivityRepository(db DBTX) *ActivityRepository {
	return &ActivityRepository{db: db}
}

var _ activity.Repository = (*ActivityRepository)(nil)

func (r *ActivityRepository) Insert(ctx context.Context, e *activity.Entry) error {
	meta := e.Meta
	if meta == nil {
		meta = map[string]interface{}{}
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal meta: %w", err)
	}

	err = r.db.QueryRow(ctx,
		`INSERT INTO activity_logs (level, message, meta) VALUES ($1, $2, $3) RETURNING id, created_at`,
		string(e.Level), e.Message, metaJSON,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert activity log: %w", err)
	}
	return nil
}

// List returns the newest entries first, optionally restricted to one level.
func (r *ActivityRepository) List(ctx context.Context, level activity.Level, limit int) ([]*activity.Entry, error) {
	query := `SELECT id, level, message, meta, created_at FROM activity_logs`
	args := []interface{}{}

	if level != "" {
		query += ` WHERE level = $1`
		args = append(args, string(level))
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}
	defer rows.Close()

	entries := []*activity.Entry{}
	for rows.Next() {
		var e activity.Entry
		var metaJSON []byte
		if err := rows.Scan(&e.ID, &e.Level, &e.Message, &metaJSON, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity log: %w", err)
		}
		if len(metaJSON) > 0 {
			if err := json.Unmarshal(metaJSON, &e.Meta); err != nil {
				return nil, fmt.Errorf("failed to unmarshal meta: %w", err)
			}
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}
	return entries, nil
}

func (r *ActivityRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM activity_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge activity logs: %w", err)
	}
	return tag.RowsAffected(), nil
}
