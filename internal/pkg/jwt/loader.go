// internal/pkg/jwt/loader.go
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config selects HS256 with Secret, or RS256 when both key paths are set.
type Config struct {
	Secret   string
	PrivPath string
	PubPath  string
	Issuer   string
	Audience string
	TTL      time.Duration
	KID      string
}

type Manager struct {
	Generator *Generator
	Verifier  *Verifier
}

func LoadAndBuild(cfg Config) (*Manager, error) {
	if cfg.PrivPath != "" && cfg.PubPath != "" {
		priv, err := LoadRSAPrivateKeyFromPEM(cfg.PrivPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load private key from %s: %w", cfg.PrivPath, err)
		}

		pub, err := LoadRSAPublicKeyFromPEM(cfg.PubPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load public key from %s: %w", cfg.PubPath, err)
		}

		return &Manager{
			Generator: NewGenerator(jwt.SigningMethodRS256, priv, cfg.Issuer, cfg.Audience, cfg.KID, cfg.TTL),
			Verifier:  NewVerifier(jwt.SigningMethodRS256, pub, cfg.Issuer, cfg.Audience),
		}, nil
	}

	if len(cfg.Secret) < 16 {
		return nil, fmt.Errorf("session secret must be at least 16 characters")
	}
	key := []byte(cfg.Secret)

	return &Manager{
		Generator: NewGenerator(jwt.SigningMethodHS256, key, cfg.Issuer, cfg.Audience, cfg.KID, cfg.TTL),
		Verifier:  NewVerifier(jwt.SigningMethodHS256, key, cfg.Issuer, cfg.Audience),
	}, nil
}
