package db

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"realty-service/internal/db/migrations"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_AreGooseAnnotated(t *testing.T) {
	entries, err := fs.ReadDir(migrations.FS, ".")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, e := range entries {
		body, err := fs.ReadFile(migrations.FS, e.Name())
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up", e.Name())
		assert.Contains(t, string(body), "-- +goose Down", e.Name())
	}

	admins, err := fs.ReadFile(migrations.FS, "00001_admins.sql")
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(admins), "email                 TEXT        NOT NULL UNIQUE"))
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	_, err = NewRedisClient(context.Background(), RedisConfig{})
	assert.Error(t, err)
}

func TestConnectDB_BadURL(t *testing.T) {
	_, err := ConnectDB(context.Background(), PostgresConfig{URL: "postgres://u:p@localhost:notaport/db"})
	assert.Error(t, err)
}
