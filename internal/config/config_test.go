package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "local", cfg.Storage.Mode)
	assert.Equal(t, "assets", cfg.Storage.SourceContainer)
	assert.Equal(t, "assetsoutput", cfg.Storage.CacheContainer)
	assert.Equal(t, "no-image.jpg", cfg.Media.Placeholder)
	assert.Equal(t, "fit", cfg.Media.ResizePolicy)

	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9100
storage:
  source_container: originals
media:
  resize_policy: exact
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "originals", cfg.Storage.SourceContainer)
	assert.Equal(t, "exact", cfg.Media.ResizePolicy)
	// Untouched fields keep their defaults.
	assert.Equal(t, "assetsoutput", cfg.Storage.CacheContainer)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PIXELVAULT_PORT", "9200")
	t.Setenv("STORAGE_MODE", "azure")
	t.Setenv("AZURE_STORAGE_CONNECTION_STRING", "UseDevelopmentStorage=true")
	t.Setenv("PIXELVAULT_PLACEHOLDER", "fallback.png")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9200, cfg.Server.Port)
	assert.Equal(t, "azure", cfg.Storage.Mode)
	assert.Equal(t, "UseDevelopmentStorage=true", cfg.Storage.Azure.ConnectionString)
	assert.Equal(t, "fallback.png", cfg.Media.Placeholder)
}

func TestValidate(t *testing.T) {
	t.Run("AzureWithoutCredential", func(t *testing.T) {
		cfg := Default()
		cfg.Storage.Mode = "azure"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "AZURE_STORAGE_CONNECTION_STRING")
	})

	t.Run("S3WithoutKeys", func(t *testing.T) {
		cfg := Default()
		cfg.Storage.Mode = "s3"
		assert.Error(t, cfg.Validate())
	})

	t.Run("UnknownMode", func(t *testing.T) {
		cfg := Default()
		cfg.Storage.Mode = "gcs"
		assert.Error(t, cfg.Validate())
	})

	t.Run("BadPort", func(t *testing.T) {
		cfg := Default()
		cfg.Server.Port = -1
		assert.Error(t, cfg.Validate())
	})
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("PIXELVAULT_TEST_KEY", "set")
	assert.Equal(t, "set", GetEnvOrDefault("PIXELVAULT_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnvOrDefault("PIXELVAULT_UNSET_KEY", "fallback"))
}
