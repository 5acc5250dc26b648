// Package notecard renders the notes card: a note list with the active
// note editable in a title input and content textarea.
package notecard

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/desknote/internal/keys"
	"github.com/nhle/desknote/internal/model"
	"github.com/nhle/desknote/internal/stores"
	"github.com/nhle/desknote/internal/theme"
)

// loadedMsg signals that the mirror changed and the view should re-read it.
type loadedMsg struct{ err error }

// MirrorChangedMsg is sent by the root model when a store subscription
// fires, prompting the card to re-read its mirror.
type MirrorChangedMsg struct{}

// Model is the notes card view.
type Model struct {
	store    *stores.NoteStore
	keys     *keys.KeyMap
	title    textinput.Model
	content  textarea.Model
	editing  bool
	cursor   int
	notes    []model.Note
	activeID string
	errText  string
	width    int
	height   int
}

// New creates the notes card over the given reactive store.
func New(s *stores.NoteStore, k *keys.KeyMap, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "untitled"
	ti.Prompt = ""

	ta := textarea.New()
	ta.Placeholder = "write something..."
	ta.ShowLineNumbers = false

	return Model{
		store:   s,
		keys:    k,
		title:   ti,
		content: ta,
		width:   width,
		height:  height,
	}
}

// Init loads the notes on startup.
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
	m.title.Width = width - 6
	m.content.SetWidth(width - 6)
	m.content.SetHeight(max(3, height-8))
}

// InputActive reports whether the note editor is capturing keystrokes.
func (m Model) InputActive() bool {
	return m.editing
}

// Update handles key presses and store results.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MirrorChangedMsg:
		m.notes = m.store.Notes.Get()
		m.activeID = m.store.ActiveNoteID.Get()
		if m.cursor >= len(m.notes) {
			m.cursor = max(0, len(m.notes)-1)
		}
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		m.notes = m.store.Notes.Get()
		m.activeID = m.store.ActiveNoteID.Get()
		if m.cursor >= len(m.notes) {
			m.cursor = max(0, len(m.notes)-1)
		}
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

// updateEditing handles keys while editing the active note. Esc saves and
// leaves edit mode.
func (m Model) updateEditing(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.editing = false
		m.title.Blur()
		m.content.Blur()
		id := m.activeID
		title := m.title.Value()
		content := m.content.Value()
		s := m.store
		return m, func() tea.Msg {
			if err := s.Update(context.Background(), id, title, content); err != nil {
				return loadedMsg{err: err}
			}
			return loadedMsg{}
		}

	case msg.Type == tea.KeyTab:
		if m.title.Focused() {
			m.title.Blur()
			return m, m.content.Focus()
		}
		m.content.Blur()
		return m, m.title.Focus()
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.title, cmd = m.title.Update(msg)
	cmds = append(cmds, cmd)
	m.content, cmd = m.content.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// updateList handles keys in list mode.
func (m Model) updateList(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.notes)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.New):
		s := m.store
		return m, func() tea.Msg {
			if _, err := s.Create(context.Background()); err != nil {
				return loadedMsg{err: err}
			}
			return loadedMsg{}
		}

	case key.Matches(msg, m.keys.Edit):
		if m.cursor < len(m.notes) {
			note := m.notes[m.cursor]
			m.activeID = note.ID
			m.store.ActiveNoteID.Set(note.ID)
			m.title.SetValue(note.Title)
			m.content.SetValue(note.Content)
			m.editing = true
			return m, m.title.Focus()
		}

	case key.Matches(msg, m.keys.Delete):
		if m.cursor < len(m.notes) {
			id := m.notes[m.cursor].ID
			s := m.store
			return m, func() tea.Msg {
				if err := s.Delete(context.Background(), id); err != nil {
					return loadedMsg{err: err}
				}
				return loadedMsg{}
			}
		}
	}

	return m, nil
}

// View renders the card.
func (m Model) View() string {
	var b strings.Builder

	if m.editing {
		b.WriteString(m.title.View())
		b.WriteString("\n\n")
		b.WriteString(m.content.View())
		b.WriteString("\n")
		b.WriteString(theme.HelpStyle.Render("esc save · tab switch field"))
		if m.errText != "" {
			b.WriteString("\n")
			b.WriteString(theme.ErrorStyle.Render(m.errText))
		}
		return b.String()
	}

	if len(m.notes) == 0 {
		b.WriteString(theme.HelpStyle.Render("no notes — press n to create one"))
	}

	for i, note := range m.notes {
		title := note.Title
		if title == "" {
			title = "(untitled)"
		}
		marker := "  "
		if note.ID == m.activeID {
			marker = "* "
		}
		row := marker + title
		if i == m.cursor {
			b.WriteString(theme.SelectedItemStyle.Render(row))
		} else {
			b.WriteString(theme.ItemStyle.Render(row))
		}
		b.WriteString("\n")
	}

	if m.errText != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorStyle.Render(m.errText))
	}

	return b.String()
}
