// Package settingscard renders the settings card as a huh form over the
// settings store.
package settingscard

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/nhle/desknote/internal/keys"
	"github.com/nhle/desknote/internal/stores"
	"github.com/nhle/desknote/internal/theme"
)

// savedMsg reports the result of persisting the form values.
type savedMsg struct{ err error }

// Model is the settings card view.
type Model struct {
	store   *stores.SettingsStore
	keys    *keys.KeyMap
	form    *huh.Form
	opacity string
	desktop bool
	editing bool
	errText string
	width   int
	height  int
}

// New creates the settings card over the given settings store.
func New(s *stores.SettingsStore, k *keys.KeyMap, width, height int) Model {
	return Model{
		store:  s,
		keys:   k,
		width:  width,
		height: height,
	}
}

// Init is a no-op; settings are loaded by the root model before the UI
// starts.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetSize updates the card dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// InputActive reports whether the form is capturing keystrokes.
func (m Model) InputActive() bool {
	return m.editing
}

// buildForm creates a fresh form seeded from the current settings.
func (m *Model) buildForm() {
	m.opacity = strconv.FormatFloat(m.store.Opacity.Get(), 'f', 2, 64)
	m.desktop = m.store.DesktopMode.Get()

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Window opacity").
				Description("0.1 – 1.0").
				Value(&m.opacity).
				Validate(func(s string) error {
					f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil {
						return fmt.Errorf("not a number")
					}
					if f < 0.1 || f > 1.0 {
						return fmt.Errorf("must be between 0.1 and 1.0")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Desktop mode").
				Description("Embed the window on the desktop layer").
				Value(&m.desktop),
		),
	).WithWidth(m.width - 4)
}

// Update handles key presses and save results.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.editing {
		if keyMsg.String() == "e" || keyMsg.String() == "enter" {
			m.editing = true
			m.buildForm()
			return m, m.form.Init()
		}
		return m, nil
	}

	if msg, ok := msg.(savedMsg); ok {
		if msg.err != nil {
			m.errText = msg.err.Error()
		} else {
			m.errText = ""
		}
		return m, nil
	}

	if m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.editing = false
		opacity, _ := strconv.ParseFloat(strings.TrimSpace(m.opacity), 64)
		desktop := m.desktop
		s := m.store
		return m, func() tea.Msg {
			if err := s.SaveOpacity(opacity); err != nil {
				return savedMsg{err: err}
			}
			return savedMsg{err: s.SaveDesktopMode(desktop)}
		}
	}
	if m.form.State == huh.StateAborted {
		m.editing = false
		return m, nil
	}

	return m, cmd
}

// View renders the card.
func (m Model) View() string {
	if m.editing && m.form != nil {
		return m.form.View()
	}

	var b strings.Builder
	b.WriteString(theme.ItemStyle.Render(
		fmt.Sprintf("Opacity       %.2f", m.store.Opacity.Get())))
	b.WriteString("\n")
	b.WriteString(theme.ItemStyle.Render(
		fmt.Sprintf("Desktop mode  %v", m.store.DesktopMode.Get())))
	b.WriteString("\n\n")
	b.WriteString(theme.HelpStyle.Render("e edit settings"))

	if m.errText != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorStyle.Render(m.errText))
	}

	return b.String()
}
