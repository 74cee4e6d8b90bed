package newsletter

import (
	"context"
	"time"
)

type Subscription struct {
	ID        int64     `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type SubscribeRequest struct {
	Email string `json:"email"`
}

type Repository interface {
	// Subscribe inserts email and reports whether it was new.
	Subscribe(ctx context.Context, email string) (bool, error)
}
