// Package otp generates numeric one-time verification codes.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	codeMin   = 100000
	codeRange = 900000
)

// NewCode returns a uniformly random 6-digit code in 100000–999999.
func NewCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeRange))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), nil
}
