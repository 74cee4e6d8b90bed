package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesRotatingFiles(t *testing.T) {
	dir := t.TempDir()

	log, err := New(Config{Level: "debug", Dir: dir})
	require.NoError(t, err)

	log.Info("hello")
	log.Error("boom")
	_ = log.Sync()

	combined, err := os.ReadFile(filepath.Join(dir, "combined.log"))
	require.NoError(t, err)
	assert.Contains(t, string(combined), "hello")
	assert.Contains(t, string(combined), "boom")

	errorsOnly, err := os.ReadFile(filepath.Join(dir, "error.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(errorsOnly), "hello")
	assert.Contains(t, string(errorsOnly), "boom")
}

func TestNew_BadLevelFallsBack(t *testing.T) {
	log, err := New(Config{Level: "loud"})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(0))
}
