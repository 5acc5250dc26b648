package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// GitHubConfig holds settings for the issue bootstrap tooling.
type GitHubConfig struct {
	// Repo is the target repository in "owner/name" form.
	Repo string `mapstructure:"repo" yaml:"repo"`

	// BaseURL overrides the GitHub API root, for GitHub Enterprise.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// DatabasePath is the location of the SQLite database file.
	DatabasePath string `mapstructure:"database_path" yaml:"database_path"`

	// SettingsPath is the location of the UI settings document.
	SettingsPath string `mapstructure:"settings_path" yaml:"settings_path"`

	GitHub GitHubConfig `mapstructure:"github" yaml:"github"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/desknote/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "desknote", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &AppConfig{
		DatabasePath: filepath.Join(home, ".local", "share", "desknote", "desknote.db"),
		SettingsPath: filepath.Join(home, ".config", "desknote", "settings.yaml"),
		GitHub: GitHubConfig{
			BaseURL: "https://api.github.com",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	defaults := defaultAppConfig()
	v.SetDefault("database_path", defaults.DatabasePath)
	v.SetDefault("settings_path", defaults.SettingsPath)
	v.SetDefault("github.base_url", defaults.GitHub.BaseURL)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaults, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("database_path", cfg.DatabasePath)
	v.Set("settings_path", cfg.SettingsPath)
	v.Set("github", cfg.GitHub)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
