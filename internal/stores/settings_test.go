package stores_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/desknote/internal/stores"
)

func settingsPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "settings.yaml")
}

func TestSettingsLoadMissingFileUsesDefaults(t *testing.T) {
	ss := stores.NewSettingsStore(settingsPath(t))

	require.NoError(t, ss.Load())
	assert.Equal(t, stores.DefaultOpacity, ss.Opacity.Get())
	assert.False(t, ss.DesktopMode.Get())
	assert.Equal(t, map[string]bool{
		stores.CardTodo:     false,
		stores.CardNotes:    true,
		stores.CardWorkLog:  true,
		stores.CardSettings: true,
	}, ss.CardCollapsed.Get())
}

func TestSettingsSaveAndReload(t *testing.T) {
	path := settingsPath(t)

	ss := stores.NewSettingsStore(path)
	require.NoError(t, ss.Load())

	require.NoError(t, ss.SaveOpacity(0.6))
	require.NoError(t, ss.SaveDesktopMode(true))
	collapsed := map[string]bool{
		stores.CardTodo:     true,
		stores.CardNotes:    false,
		stores.CardWorkLog:  true,
		stores.CardSettings: true,
	}
	require.NoError(t, ss.SaveCardCollapsed(collapsed))

	assert.Equal(t, 0.6, ss.Opacity.Get())
	assert.True(t, ss.DesktopMode.Get())
	assert.Equal(t, collapsed, ss.CardCollapsed.Get())

	// A fresh store over the same file sees the persisted values.
	reloaded := stores.NewSettingsStore(path)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, 0.6, reloaded.Opacity.Get())
	assert.True(t, reloaded.DesktopMode.Get())
	assert.Equal(t, collapsed, reloaded.CardCollapsed.Get())
}

func TestSettingsPartialDocumentKeepsOtherDefaults(t *testing.T) {
	path := settingsPath(t)

	ss := stores.NewSettingsStore(path)
	require.NoError(t, ss.Load())
	require.NoError(t, ss.SaveOpacity(0.4))

	reloaded := stores.NewSettingsStore(path)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, 0.4, reloaded.Opacity.Get())
	assert.False(t, reloaded.DesktopMode.Get())
	assert.Equal(t, true, reloaded.CardCollapsed.Get()[stores.CardNotes])
}

func TestSettingsPublishOnSave(t *testing.T) {
	ss := stores.NewSettingsStore(settingsPath(t))
	require.NoError(t, ss.Load())

	var seen []float64
	cancel := ss.Opacity.Subscribe(func(v float64) { seen = append(seen, v) })
	defer cancel()

	require.NoError(t, ss.SaveOpacity(0.7))
	require.Equal(t, []float64{0.7}, seen)
}
