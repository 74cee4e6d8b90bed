// internal/repository/postgres/message_repo.go
package postgres

import (
	"context"
	"fmt"

	"realty-service/internal/domain/message"
	xerrors "realty-service/internal/pkg/errors"
)

type MessageRepository struct {
	db DBTX
}

func NewMessageRepository(db DBTX) *MessageRepository {
	return &MessageRepository{db: db}
}

var _ message.Repository = (*MessageRepository)(nil)

func (r *MessageRepository) Create(ctx context.Context, m *message.Message) error {
	query := `
		INSERT INTO messages (name, email, phone, message, property_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, m.Name, m.Email, m.Phone, m.Message, m.PropertyID).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// List returns the newest messages first. limit <= 0 returns everything.
func (r *MessageRepository) List(ctx context.Context, limit int) ([]*message.Message, error) {
	query := `
		SELECT id, name, email, phone, message, property_id, created_at
		FROM messages
		ORDER BY created_at DESC, id DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := []*message.Message{}
	for rows.Next() {
		var m message.Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Message, &m.PropertyID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

func (r *MessageRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *MessageRepository) CountDistinctEmails(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(DISTINCT email) FROM messages`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count message senders: %w", err)
	}
	return count, nil
}
