// internal/domain/activity/entity.go
package activity

import (
	"context"
	"time"
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Entry is one persisted back-office event.
type Entry struct {
	ID        int64                  `json:"id" db:"id"`
	Level     Level                  `json:"level" db:"level"`
	Message   string                 `json:"message" db:"message"`
	Meta      map[string]interface{} `json:"meta,omitempty" db:"meta"`
	CreatedAt time.Time              `json:"created_at" db:"created_at"`
}

type Repository interface {
	Insert(ctx context.Context, e *Entry) error
	List(ctx context.Context, level Level, limit int) ([]*Entry, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
