// internal/repository/postgres/admin_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"realty-service/internal/domain/admin"
	xerrors "realty-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
)

const adminColumns = `id, email, password_hash, role, is_verified, verification_code,
	failed_login_attempts, lockout_until, session_version,
	name, profile_image, company_name, created_at, updated_at`

type AdminRepository struct {
	db DBTX
}

func NewAdminRepository(db DBTX) *AdminRepository {
	return &AdminRepository{db: db}
}

var _ admin.CredentialStore = (*AdminRepository)(nil)

func scanAdmin(row pgx.Row) (*admin.Admin, error) {
	var a admin.Admin
	err := row.Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.IsVerified, &a.VerificationCode,
		&a.FailedLoginAttempts, &a.LockoutUntil, &a.SessionVersion,
		&a.Name, &a.ProfileImage, &a.CompanyName, &a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ========== Lookups ==========

// FindByEmail matches the email exactly as stored.
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*admin.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE email = $1`

	a, err := scanAdmin(r.db.QueryRow(ctx, query, email))
	if err != nil && !errors.Is(err, xerrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}
	return a, err
}

func (r *AdminRepository) FindByID(ctx context.Context, id int64) (*admin.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`

	a, err := scanAdmin(r.db.QueryRow(ctx, query, id))
	if err != nil && !errors.Is(err, xerrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}
	return a, err
}

func (r *AdminRepository) List(ctx context.Context) ([]*admin.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins ORDER BY created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	defer rows.Close()

	var admins []*admin.Admin
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan admin: %w", err)
		}
		admins = append(admins, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	return admins, nil
}

func (r *AdminRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}

// ========== Provisioning ==========

// lockAdmins serialises ceiling and last-admin checks against concurrent writers.
func lockAdmins(ctx context.Context, tx pgx.Tx) (int, error) {
	if _, err := tx.Exec(ctx, `LOCK TABLE admins IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return 0, fmt.Errorf("failed to lock admins: %w", err)
	}
	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}

func (r *AdminRepository) CreateWithinLimit(ctx context.Context, a *admin.Admin, limit int) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		count, err := lockAdmins(ctx, tx)
		if err != nil {
			return err
		}
		if count >= limit {
			return xerrors.ErrLimitReached
		}

		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM admins WHERE email = $1)`, a.Email).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return xerrors.ErrAlreadyExists
		}

		query := `
			INSERT INTO admins (email, password_hash, role, is_verified, verification_code, name, profile_image, company_name)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, session_version, created_at, updated_at
		`
		err = tx.QueryRow(ctx, query,
			a.Email, a.PasswordHash, a.Role, a.IsVerified, a.VerificationCode,
			a.Name, a.ProfileImage, a.CompanyName,
		).Scan(&a.ID, &a.SessionVersion, &a.CreatedAt, &a.UpdatedAt)
		if isUniqueViolation(err) {
			return xerrors.ErrAlreadyExists
		}
		if err != nil {
			return fmt.Errorf("failed to create admin: %w", err)
		}
		return nil
	})
}

func (r *AdminRepository) DeleteUnlessLast(ctx context.Context, id int64) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		count, err := lockAdmins(ctx, tx)
		if err != nil {
			return err
		}
		if count <= 1 {
			return xerrors.ErrLastAdmin
		}

		tag, err := tx.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete admin: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return xerrors.ErrNotFound
		}
		return nil
	})
}

// ========== Login bookkeeping ==========

func (r *AdminRepository) RecordFailedLogin(ctx context.Context, id int64, threshold int, lockUntil time.Time) (*admin.LoginState, error) {
	query := `
		UPDATE admins
		SET failed_login_attempts = CASE
		        WHEN failed_login_attempts + 1 >= $2 THEN 0
		        ELSE failed_login_attempts + 1
		    END,
		    lockout_until = CASE
		        WHEN failed_login_attempts + 1 >= $2 THEN $3
		        ELSE lockout_until
		    END,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING failed_login_attempts, lockout_until
	`

	var state admin.LoginState
	err := r.db.QueryRow(ctx, query, id, threshold, lockUntil).Scan(&state.FailedLoginAttempts, &state.LockoutUntil)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to record failed login: %w", err)
	}
	return &state, nil
}

func (r *AdminRepository) RecordSuccessfulLogin(ctx context.Context, id int64, now time.Time) (*admin.Admin, error) {
	query := `
		UPDATE admins
		SET failed_login_attempts = 0,
		    lockout_until = NULL,
		    session_version = session_version + 1,
		    updated_at = NOW()
		WHERE id = $1 AND (lockout_until IS NULL OR lockout_until <= $2)
		RETURNING ` + adminColumns

	a, err := scanAdmin(r.db.QueryRow(ctx, query, id, now))
	if err != nil && !errors.Is(err, xerrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	return a, err
}

// ========== Verification ==========

func (r *AdminRepository) SetVerificationCode(ctx context.Context, id int64, code string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE admins SET verification_code = $2, updated_at = NOW() WHERE id = $1`, id, code)
	if err != nil {
		return fmt.Errorf("failed to set verification code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *AdminRepository) MarkVerified(ctx context.Context, id int64, code string) (bool, error) {
	query := `
		UPDATE admins
		SET is_verified = TRUE, verification_code = NULL, updated_at = NOW()
		WHERE id = $1 AND verification_code = $2
	`
	tag, err := r.db.Exec(ctx, query, id, code)
	if err != nil {
		return false, fmt.Errorf("failed to mark admin verified: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ========== Profile ==========

// UpdateProfile applies display changes and, with a password hash, resets
// verification and bumps the session version in the same statement.
func (r *AdminRepository) UpdateProfile(ctx context.Context, id int64, upd admin.ProfileUpdate) (*admin.Admin, error) {
	query := `
		UPDATE admins
		SET name = COALESCE($2, name),
		    company_name = COALESCE($3, company_name),
		    profile_image = COALESCE($4, profile_image),
		    password_hash = COALESCE($5, password_hash),
		    is_verified = CASE WHEN $5::text IS NULL THEN is_verified ELSE FALSE END,
		    verification_code = CASE WHEN $5::text IS NULL THEN verification_code ELSE $6 END,
		    session_version = CASE WHEN $5::text IS NULL THEN session_version ELSE session_version + 1 END,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + adminColumns

	var code *string
	if upd.PasswordHash != nil {
		code = &upd.VerificationCode
	}

	a, err := scanAdmin(r.db.QueryRow(ctx, query,
		id, upd.Name, upd.CompanyName, upd.ProfileImage, upd.PasswordHash, code,
	))
	if err != nil && !errors.Is(err, xerrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return a, err
}
