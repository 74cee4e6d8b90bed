package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SESSION_SECRET", "")

	cfg := Load()
	assert.Equal(t, ":8000", cfg.HTTPAddr)
	assert.Equal(t, 5, cfg.AdminLimit)
	assert.Equal(t, 5, cfg.LockoutThreshold)
	assert.Equal(t, 15*time.Minute, cfg.LockoutDuration)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.AssetStoreEnabled())
	assert.Error(t, cfg.Validate())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/realty")
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("ADMIN_LIMIT", "3")
	t.Setenv("SMTP_SECURE", "false")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOCKOUT_THRESHOLD", "not-a-number")

	cfg := Load()
	require.NoError(t, cfg.Validate())
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 2*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 3, cfg.AdminLimit)
	assert.False(t, cfg.SMTPSecure)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 5, cfg.LockoutThreshold, "bad ints fall back")
}
