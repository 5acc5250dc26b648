package stores

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/nhle/desknote/internal/reactive"
)

// Card identifiers used as keys in the collapsed-state map.
const (
	CardTodo     = "todo"
	CardNotes    = "notes"
	CardWorkLog  = "worklog"
	CardSettings = "settings"
)

// DefaultOpacity is the window opacity used before any setting is saved.
const DefaultOpacity = 0.85

// defaultCardCollapsed returns the initial collapsed state per card:
// the todo card open, everything else collapsed.
func defaultCardCollapsed() map[string]bool {
	return map[string]bool{
		CardTodo:     false,
		CardNotes:    true,
		CardWorkLog:  true,
		CardSettings: true,
	}
}

// SettingsStore holds UI preferences in a flat key-value document,
// separate from the relational tables. Setters persist first and publish
// the new value only after the write succeeds.
type SettingsStore struct {
	path string
	v    *viper.Viper

	Opacity       *reactive.Value[float64]
	DesktopMode   *reactive.Value[bool]
	CardCollapsed *reactive.Value[map[string]bool]
}

// NewSettingsStore creates a SettingsStore backed by the YAML document at
// path. Nothing is read until Load.
func NewSettingsStore(path string) *SettingsStore {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("opacity", DefaultOpacity)
	v.SetDefault("desktopMode", false)
	v.SetDefault("cardCollapsed", defaultCardCollapsed())

	return &SettingsStore{
		path:          path,
		v:             v,
		Opacity:       reactive.New(DefaultOpacity),
		DesktopMode:   reactive.New(false),
		CardCollapsed: reactive.New(defaultCardCollapsed()),
	}
}

// Load reads the settings document and publishes each key. Keys absent
// from the document fall back to their defaults independently; a missing
// file is not an error.
func (s *SettingsStore) Load() error {
	if err := s.v.ReadInConfig(); err != nil {
		_, pathErr := err.(*os.PathError)
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !pathErr && !notFound {
			return fmt.Errorf("reading settings %s: %w", s.path, err)
		}
	}

	s.Opacity.Set(s.v.GetFloat64("opacity"))
	s.DesktopMode.Set(s.v.GetBool("desktopMode"))

	collapsed := defaultCardCollapsed()
	if err := s.v.UnmarshalKey("cardCollapsed", &collapsed); err != nil {
		return fmt.Errorf("parsing cardCollapsed: %w", err)
	}
	s.CardCollapsed.Set(collapsed)
	return nil
}

// SaveOpacity persists and publishes the window opacity.
func (s *SettingsStore) SaveOpacity(value float64) error {
	s.v.Set("opacity", value)
	if err := s.write(); err != nil {
		return err
	}
	s.Opacity.Set(value)
	return nil
}

// SaveDesktopMode persists and publishes the desktop-embedding flag.
func (s *SettingsStore) SaveDesktopMode(value bool) error {
	s.v.Set("desktopMode", value)
	if err := s.write(); err != nil {
		return err
	}
	s.DesktopMode.Set(value)
	return nil
}

// SaveCardCollapsed persists and publishes the per-card collapsed map.
func (s *SettingsStore) SaveCardCollapsed(collapsed map[string]bool) error {
	s.v.Set("cardCollapsed", collapsed)
	if err := s.write(); err != nil {
		return err
	}
	s.CardCollapsed.Set(collapsed)
	return nil
}

// write flushes the document to disk, creating parent directories on
// first save.
func (s *SettingsStore) write() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating settings directory %s: %w", dir, err)
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("writing settings to %s: %w", s.path, err)
	}
	return nil
}
