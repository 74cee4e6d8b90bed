// internal/pkg/jwt/generator.go
package jwt

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

type Generator struct {
	method   jwt.SigningMethod
	key      interface{}
	issuer   string
	audience string
	kid      string // key id for rotation
	Ttl      time.Duration
	now      func() time.Time
}

func NewGenerator(method jwt.SigningMethod, key interface{}, issuer, audience, kid string, ttl time.Duration) *Generator {
	return &Generator{
		method:   method,
		key:      key,
		issuer:   issuer,
		audience: audience,
		kid:      kid,
		Ttl:      ttl,
		now:      time.Now,
	}
}

// Subject is what the generator needs to know about an admin.
type Subject struct {
	AdminID        int64
	Email          string
	Role           string
	IsVerified     bool
	SessionVersion int64
	Name           string
	Picture        string
	CompanyName    string
}

// Generate signs a new session token and returns it with its jti and expiry.
func (g *Generator) Generate(sub Subject) (string, string, time.Time, error) {
	if g.key == nil {
		return "", "", time.Time{}, fmt.Errorf("jwt generator has no signing key")
	}

	now := g.now()
	jti := ulid.Make().String()
	expiresAt := now.Add(g.Ttl)

	claims := &Claims{
		AdminID:        sub.AdminID,
		Email:          sub.Email,
		Role:           sub.Role,
		IsVerified:     sub.IsVerified,
		SessionVersion: sub.SessionVersion,
		Name:           sub.Name,
		Picture:        sub.Picture,
		CompanyName:    sub.CompanyName,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.issuer,
			Subject:   strconv.FormatInt(sub.AdminID, 10),
			Audience:  []string{g.audience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        jti,
		},
	}

	tok := jwt.NewWithClaims(g.method, claims)
	if g.kid != "" {
		tok.Header["kid"] = g.kid
	}

	signed, err := tok.SignedString(g.key)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, jti, expiresAt, nil
}
