// Package worklogcard renders the work log card: today's entry in a
// textarea plus the recent history below it.
package worklogcard

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/desknote/internal/keys"
	"github.com/nhle/desknote/internal/model"
	"github.com/nhle/desknote/internal/stores"
	"github.com/nhle/desknote/internal/theme"
)

// historyShown caps how many past days render below the editor.
const historyShown = 7

// loadedMsg signals that the mirror changed and the view should re-read it.
type loadedMsg struct{ err error }

// MirrorChangedMsg is sent by the root model when a store subscription
// fires, prompting the card to re-read its mirror.
type MirrorChangedMsg struct{}

// Model is the work log card view.
type Model struct {
	store   *stores.WorkLogStore
	keys    *keys.KeyMap
	entry   textarea.Model
	editing bool
	logs    []model.WorkLog
	errText string
	width   int
	height  int
}

// New creates the work log card over the given reactive store.
func New(s *stores.WorkLogStore, k *keys.KeyMap, width, height int) Model {
	ta := textarea.New()
	ta.Placeholder = "what did you work on today?"
	ta.ShowLineNumbers = false

	return Model{
		store:  s,
		keys:   k,
		entry:  ta,
		width:  width,
		height: height,
	}
}

// today returns the current calendar day in the stored format.
func today() string {
	return time.Now().Format("2006-01-02")
}

// Init loads the work log history on startup.
func (m Model) Init() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		return loadedMsg{err: s.Load(context.Background())}
	}
}

// SetSize updates the card dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.entry.SetWidth(width - 6)
	m.entry.SetHeight(max(3, height-historyShown-6))
}

// InputActive reports whether the entry editor is capturing keystrokes.
func (m Model) InputActive() bool {
	return m.editing
}

// Update handles key presses and store results.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MirrorChangedMsg:
		m.logs = m.store.Logs.Get()
		if !m.editing {
			m.entry.SetValue(m.todayContent())
		}
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		m.logs = m.store.Logs.Get()
		if !m.editing {
			m.entry.SetValue(m.todayContent())
		}
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			switch {
			case key.Matches(msg, m.keys.Back):
				m.editing = false
				m.entry.Blur()
				date := today()
				content := m.entry.Value()
				s := m.store
				return m, func() tea.Msg {
					if err := s.SaveEntry(context.Background(), date, content); err != nil {
						return loadedMsg{err: err}
					}
					return loadedMsg{}
				}
			}
			var cmd tea.Cmd
			m.entry, cmd = m.entry.Update(msg)
			return m, cmd
		}

		if key.Matches(msg, m.keys.Edit) {
			m.editing = true
			return m, m.entry.Focus()
		}
	}

	return m, nil
}

// todayContent returns the stored content for today's entry, if any.
func (m Model) todayContent() string {
	date := today()
	for _, log := range m.logs {
		if log.Date == date {
			return log.Content
		}
	}
	return ""
}

// View renders the card.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(theme.HeaderStyle.Render(today()))
	b.WriteString("\n\n")
	b.WriteString(m.entry.View())
	b.WriteString("\n")
	if m.editing {
		b.WriteString(theme.HelpStyle.Render("esc save"))
	} else {
		b.WriteString(theme.HelpStyle.Render("e edit today's entry"))
	}
	b.WriteString("\n\n")

	shown := 0
	for _, log := range m.logs {
		if log.Date == today() {
			continue
		}
		if shown >= historyShown {
			break
		}
		line := log.Date + "  " + firstLine(log.Content)
		b.WriteString(theme.ItemStyle.Render(line))
		b.WriteString("\n")
		shown++
	}

	if m.errText != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorStyle.Render(m.errText))
	}

	return b.String()
}

// firstLine truncates content to its first line for history rows.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
