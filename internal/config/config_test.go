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
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "anthropic", cfg.Assistant.Provider)
	assert.Equal(t, 3, cfg.Lab.DefaultK)
	assert.Equal(t, 50, cfg.Lab.MaxIterations)
}

func TestLoadCreatesDefaultWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Lab, cfg.Lab)

	// The file now exists and round-trips.
	_, err = os.Stat(path)
	require.NoError(t, err)

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Lab, again.Lab)
}

func TestLoadExpandsAPIKeyEnv(t *testing.T) {
	t.Setenv("ASTROPATH_TEST_KEY", "sk-expanded")

	path := filepath.Join(t.TempDir(), "config.json")
	cfg := Default()
	cfg.Assistant.APIKey = "${ASTROPATH_TEST_KEY}"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-expanded", loaded.Assistant.APIKey)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Run("unknown provider", func(t *testing.T) {
		cfg := Default()
		cfg.Assistant.Provider = "skynet"
		assert.Error(t, cfg.Validate())
	})

	t.Run("empty model", func(t *testing.T) {
		cfg := Default()
		cfg.Assistant.Model = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad max tokens", func(t *testing.T) {
		cfg := Default()
		cfg.Assistant.MaxTokens = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad default k", func(t *testing.T) {
		cfg := Default()
		cfg.Lab.DefaultK = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad max iterations", func(t *testing.T) {
		cfg := Default()
		cfg.Lab.MaxIterations = -1
		assert.Error(t, cfg.Validate())
	})
}
