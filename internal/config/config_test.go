package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PISTAS_DB_PATH", filepath.Join(dir, "pistas.db"))
	t.Setenv("PISTAS_ENV", "")
	t.Setenv("PISTAS_HTTP_PORT", "")
	t.Setenv("PISTAS_JWT_TTL_HOURS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Empty(t, cfg.AlertURL)
}

func TestLoad_Overrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PISTAS_DB_PATH", filepath.Join(dir, "db", "pistas.db"))
	t.Setenv("PISTAS_ENV", "production")
	t.Setenv("PISTAS_HTTP_PORT", "9090")
	t.Setenv("PISTAS_JWT_SECRET", "super-secreto")
	t.Setenv("PISTAS_JWT_TTL_HOURS", "2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "super-secreto", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	// The data directory gets created on load.
	assert.DirExists(t, filepath.Join(dir, "db"))
}

func TestLoad_TTLInvalido(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PISTAS_DB_PATH", filepath.Join(dir, "pistas.db"))

	for _, raw := range []string{"abc", "0", "-3"} {
		t.Setenv("PISTAS_JWT_TTL_HOURS", raw)
		_, err := Load()
		assert.Error(t, err)
	}
}
