// internal/pkg/jwt/claims.go
package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the session snapshot carried by an admin token. SessionVersion
// must equal the stored counter for the token to be honoured.
type Claims struct {
	AdminID        int64  `json:"admin_id"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	IsVerified     bool   `json:"is_verified"`
	SessionVersion int64  `json:"session_version"`
	Name           string `json:"name,omitempty"`
	Picture        string `json:"picture,omitempty"`
	CompanyName    string `json:"company_name,omitempty"`
	jwt.RegisteredClaims
}

// HasRole checks the claims role
func (c *Claims) HasRole(role string) bool {
	return c.Role == role
}

// VerifyAudience checks if the expected audience is listed in the claims.
func (c *Claims) VerifyAudience(audience string, required bool) bool {
	if len(c.Audience) == 0 {
		return !required
	}

	for _, aud := range c.Audience {
		if aud == audience {
			return true
		}
	}

	return false
}
