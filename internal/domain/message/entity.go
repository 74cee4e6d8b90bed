// internal/domain/message/entity.go
package message

import (
	"context"
	"time"
)

// Message is a contact or property inquiry left by a visitor.
type Message struct {
	ID         int64     `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Email      string    `json:"email" db:"email"`
	Phone      string    `json:"phone" db:"phone"`
	Message    string    `json:"message" db:"message"`
	PropertyID *int64    `json:"property_id,omitempty" db:"property_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type CreateRequest struct {
	Name       string `json:"name" binding:"required,max=200"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone" binding:"omitempty,max=32"`
	Message    string `json:"message" binding:"required,max=5000"`
	PropertyID *int64 `json:"property_id" binding:"omitempty,gt=0"`
}

type Repository interface {
	Create(ctx context.Context, m *Message) error
	List(ctx context.Context, limit int) ([]*Message, error)
	Delete(ctx context.Context, id int64) error
	CountDistinctEmails(ctx context.Context) (int, error)
}
