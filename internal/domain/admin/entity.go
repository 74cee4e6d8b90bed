// internal/domain/admin/entity.go
package admin

import (
	"math"
	"time"
)

const RoleAdmin = "admin"

// Admin is a back-office account as held by the credential store.
type Admin struct {
	ID                  int64      `json:"id" db:"id"`
	Email               string     `json:"email" db:"email"`
	PasswordHash        string     `json:"-" db:"password_hash"`
	Role                string     `json:"role" db:"role"`
	IsVerified          bool       `json:"is_verified" db:"is_verified"`
	VerificationCode    *string    `json:"-" db:"verification_code"`
	FailedLoginAttempts int        `json:"-" db:"failed_login_attempts"`
	LockoutUntil        *time.Time `json:"-" db:"lockout_until"`
	SessionVersion      int64      `json:"-" db:"session_version"`
	Name                string     `json:"name" db:"name"`
	ProfileImage        string     `json:"profile_image" db:"profile_image"`
	CompanyName         string     `json:"company_name" db:"company_name"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
}

// IsLocked reports whether the lockout window is still open at now.
func (a *Admin) IsLocked(now time.Time) bool {
	return a.LockoutUntil != nil && a.LockoutUntil.After(now)
}

// LockMinutesRemaining is the remaining lockout in whole minutes, rounded up.
func (a *Admin) LockMinutesRemaining(now time.Time) int {
	if !a.IsLocked(now) {
		return 0
	}
	return MinutesUntil(*a.LockoutUntil, now)
}

// MinutesUntil rounds the time left before t up to whole minutes.
func MinutesUntil(t, now time.Time) int {
	if !t.After(now) {
		return 0
	}
	return int(math.Ceil(t.Sub(now).Minutes()))
}

// Info strips credential and lockout state.
func (a *Admin) Info() AdminInfo {
	return AdminInfo{
		ID:           a.ID,
		Email:        a.Email,
		Role:         a.Role,
		IsVerified:   a.IsVerified,
		Name:         a.Name,
		ProfileImage: a.ProfileImage,
		CompanyName:  a.CompanyName,
		CreatedAt:    a.CreatedAt,
	}
}

// AdminInfo represents public admin information
type AdminInfo struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	IsVerified   bool      `json:"is_verified"`
	Name         string    `json:"name,omitempty"`
	ProfileImage string    `json:"profile_image,omitempty"`
	CompanyName  string    `json:"company_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// LoginState is the lockout bookkeeping returned by a failed-login update.
type LoginState struct {
	FailedLoginAttempts int
	LockoutUntil        *time.Time
}

// Locked reports whether the state holds an open lockout window at now.
func (s *LoginState) Locked(now time.Time) bool {
	return s.LockoutUntil != nil && s.LockoutUntil.After(now)
}

// ProfileUpdate carries optional changes. A non-nil PasswordHash also resets
// verification to VerificationCode and bumps the session version.
type ProfileUpdate struct {
	Name             *string
	CompanyName      *string
	ProfileImage     *string
	PasswordHash     *string
	VerificationCode string
}
