// Package password hashes and compares admin passwords with bcrypt.
package password

import (
	"fmt"
	"sync"

	xerrors "realty-service/internal/pkg/errors"

	"golang.org/x/crypto/bcrypt"
)

// MaxLength is the longest password bcrypt accepts, in bytes.
const MaxLength = 72

// Cost is the bcrypt work factor used for new hashes.
var Cost = bcrypt.DefaultCost

// ErrTooLong is an input error, never an internal one.
var ErrTooLong = fmt.Errorf("%w: password must be at most %d bytes", xerrors.ErrInvalidInput, MaxLength)

var dummy = sync.OnceValue(func() string {
	h, err := bcrypt.GenerateFromPassword([]byte("no-such-account"), Cost)
	if err != nil {
		panic(fmt.Sprintf("password: dummy hash: %v", err))
	}
	return string(h)
})

// Hash returns the bcrypt hash of plaintext.
func Hash(plaintext string) (string, error) {
	if len(plaintext) > MaxLength {
		return "", ErrTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches hash. A malformed hash is a mismatch.
func Verify(plaintext, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// DummyHash is a valid hash no password matches. Comparing against it costs
// the same as a real check, for lookups that found no account.
func DummyHash() string {
	return dummy()
}
