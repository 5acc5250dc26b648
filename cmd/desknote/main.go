// Package main provides the desknote CLI: the desktop note/todo/worklog
// TUI by default, plus maintenance subcommands for GitHub issue
// bootstrapping and credential management.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nhle/desknote/internal/app"
	"github.com/nhle/desknote/internal/model"
	"github.com/nhle/desknote/internal/store"
	"github.com/nhle/desknote/internal/stores"
)

// configFile is set by the --config flag.
var configFile string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "desknote",
	Short: "DeskNote is a desktop note, todo, and work log app",
	Long: `DeskNote keeps todos, free-form notes, and a daily work log in a
local SQLite database. Running desknote with no arguments opens the
interactive UI.`,
	RunE: runApp,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ~/.config/desknote/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(issuesCmd)
	rootCmd.AddCommand(tokenCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("desknote v0.2.0")
	},
}

// loadConfig resolves the configuration, honoring the --config flag.
func loadConfig() (*model.AppConfig, error) {
	path := configFile
	if path == "" {
		path = model.DefaultConfigPath()
	}
	return model.LoadConfig(path)
}

// runApp opens the shared store and starts the TUI.
func runApp(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	s, err := store.Shared(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.CloseShared()

	// Reclaim deleted-row space once per launch.
	if err := s.Vacuum(context.Background()); err != nil {
		return err
	}

	settings := stores.NewSettingsStore(cfg.SettingsPath)
	if err := settings.Load(); err != nil {
		return err
	}

	return app.Run(app.Stores{
		Todos:    stores.NewTodoStore(s),
		Notes:    stores.NewNoteStore(s),
		WorkLogs: stores.NewWorkLogStore(s),
		Settings: settings,
	})
}
