// internal/domain/admin/repository.go
package admin

import (
	"context"
	"time"
)

// CredentialStore persists admin accounts. Counter and version changes are
// applied by the store atomically; callers never write back whole records.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*Admin, error)
	FindByID(ctx context.Context, id int64) (*Admin, error)
	List(ctx context.Context) ([]*Admin, error)
	Count(ctx context.Context) (int, error)

	// CreateWithinLimit inserts a unless limit accounts already exist.
	CreateWithinLimit(ctx context.Context, a *Admin, limit int) error
	// DeleteUnlessLast removes id unless it is the only account left.
	DeleteUnlessLast(ctx context.Context, id int64) error

	// RecordFailedLogin increments the counter; reaching threshold sets
	// lockout_until to lockUntil and resets the counter to 0.
	RecordFailedLogin(ctx context.Context, id int64, threshold int, lockUntil time.Time) (*LoginState, error)
	// RecordSuccessfulLogin clears lockout state and increments the session
	// version, provided the account is not locked at now.
	RecordSuccessfulLogin(ctx context.Context, id int64, now time.Time) (*Admin, error)

	SetVerificationCode(ctx context.Context, id int64, code string) error
	// MarkVerified verifies the account only while its pending code equals code.
	MarkVerified(ctx context.Context, id int64, code string) (bool, error)
	UpdateProfile(ctx context.Context, id int64, upd ProfileUpdate) (*Admin, error)
}
