// Package asset describes the listing image store.
package asset

import (
	"context"
	"time"
)

// SignedUpload is a short-lived direct upload grant.
type SignedUpload struct {
	Key       string    `json:"key"`
	UploadURL string    `json:"upload_url"`
	PublicURL string    `json:"public_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SignRequest struct {
	ContentType string `json:"content_type" binding:"required,oneof=image/jpeg image/png image/webp image/avif"`
}

// Store signs uploads and deletes stored objects by key.
type Store interface {
	SignUpload(ctx context.Context, contentType string) (*SignedUpload, error)
	Delete(ctx context.Context, key string) error
	// KeyFromURL maps a public URL produced by this store back to its key.
	KeyFromURL(url string) (string, bool)
}
