package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Contains(t, cfg.DatabasePath, "desknote.db")
	assert.Contains(t, cfg.SettingsPath, "settings.yaml")
	assert.Equal(t, "https://api.github.com", cfg.GitHub.BaseURL)
	assert.Empty(t, cfg.GitHub.Repo)
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	in := &AppConfig{
		DatabasePath: "/data/desknote.db",
		SettingsPath: "/data/settings.yaml",
		GitHub: GitHubConfig{
			Repo:    "acme/desknote",
			BaseURL: "https://github.example.com/api/v3",
		},
	}
	require.NoError(t, SaveConfig(path, in))

	out, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
