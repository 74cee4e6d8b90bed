package xerrors

import (
	"errors"
	"fmt"
)

// Common reusable application errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("conflict: resource already exists")
	ErrInternal         = errors.New("internal server error")
	ErrRateLimited      = errors.New("too many requests")
	ErrBadRequest       = errors.New("bad request")
	ErrStoreUnavailable = errors.New("service unavailable")
)

// Authentication / session errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionInvalid     = errors.New("session invalid")
	ErrNotVerified        = errors.New("account must be verified")
)

// Verification and admin management errors
var (
	ErrInvalidCode     = errors.New("invalid verification code")
	ErrAlreadyVerified = errors.New("account already verified")
	ErrAlreadyExists   = fmt.Errorf("admin already exists: %w", ErrConflict)
	ErrLimitReached    = errors.New("admin limit reached")
	ErrLastAdmin       = errors.New("cannot delete the last admin")
)

// AccountLockedError is returned while an account sits in its lockout window.
type AccountLockedError struct {
	Minutes int
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("Account locked. Try again in %d minutes.", e.Minutes)
}

// AsLocked reports whether err is an AccountLockedError.
func AsLocked(err error) (*AccountLockedError, bool) {
	var locked *AccountLockedError
	if errors.As(err, &locked) {
		return locked, true
	}
	return nil, false
}

// Wrap adds context to an error (similar to fmt.Errorf("%w")).
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Unavailable marks an infrastructure failure so callers never read it as a
// credential problem.
func Unavailable(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", message, ErrStoreUnavailable, err)
}

// Is allows checking whether an error is a specific sentinel error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
