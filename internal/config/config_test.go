package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DRIVE_AUTH_TOKEN_SECRET", "secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URL)
	assert.Equal(t, "drive", cfg.Mongo.Database)
	assert.Equal(t, "mongo", cfg.Store.Type)
	assert.Equal(t, "./uploads", cfg.Storage.Directory)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Pretty)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DRIVE_AUTH_TOKEN_SECRET", "secret")
	t.Setenv("DRIVE_HTTP_PORT", ":9090")
	t.Setenv("DRIVE_STORE_TYPE", "memory")
	t.Setenv("DRIVE_LOGGING_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Port)
	assert.Equal(t, "memory", cfg.Store.Type)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("DRIVE_AUTH_TOKEN_SECRET", "secret")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("http:\n  port: \":7070\"\nstore:\n  type: memory\nmongo:\n  database: drive_test\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.HTTP.Port)
	assert.Equal(t, "memory", cfg.Store.Type)
	assert.Equal(t, "drive_test", cfg.Mongo.Database)
}

func TestLoadValidation(t *testing.T) {
	t.Run("missing token secret", func(t *testing.T) {
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "token_secret")
	})

	t.Run("unknown store type", func(t *testing.T) {
		t.Setenv("DRIVE_AUTH_TOKEN_SECRET", "secret")
		t.Setenv("DRIVE_STORE_TYPE", "postgres")

		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "store type")
	})

	t.Run("missing config file", func(t *testing.T) {
		t.Setenv("DRIVE_AUTH_TOKEN_SECRET", "secret")
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}
