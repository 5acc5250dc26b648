// Package todocard renders the todo card: an add input plus the live
// todo list mirrored from the todo store.
package todocard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
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

// Model is the todo card view.
type Model struct {
	store    *stores.TodoStore
	keys     *keys.KeyMap
	input    textinput.Model
	adding   bool
	cursor   int
	todos    []model.Todo
	archived int
	errText  string
	width    int
	height   int
}

// New creates the todo card over the given reactive store.
func New(s *stores.TodoStore, k *keys.KeyMap, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "what needs doing?"
	ti.Prompt = "> "
	ti.CharLimit = 0

	return Model{
		store:  s,
		keys:   k,
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init loads the todos (running the archival sweep) on startup.
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
	m.input.Width = width - 6
}

// InputActive reports whether the add input is capturing keystrokes.
func (m Model) InputActive() bool {
	return m.adding
}

// Update handles key presses and store results.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MirrorChangedMsg:
		m.todos = m.store.Todos.Get()
		m.archived = m.store.ArchivedCount.Get()
		if m.cursor >= len(m.todos) {
			m.cursor = max(0, len(m.todos)-1)
		}
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		m.todos = m.store.Todos.Get()
		m.archived = m.store.ArchivedCount.Get()
		if m.cursor >= len(m.todos) {
			m.cursor = max(0, len(m.todos)-1)
		}
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

// updateAdding handles keys while the add input is focused.
func (m Model) updateAdding(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.adding = false
		m.input.Blur()
		m.input.Reset()
		return m, nil

	case msg.Type == tea.KeyEnter:
		content := m.input.Value()
		m.adding = false
		m.input.Blur()
		m.input.Reset()
		s := m.store
		return m, func() tea.Msg {
			if err := s.Add(context.Background(), content); err != nil {
				return loadedMsg{err: err}
			}
			return loadedMsg{}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateList handles keys in list mode.
func (m Model) updateList(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.todos)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Add):
		m.adding = true
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Toggle):
		if m.cursor < len(m.todos) {
			id := m.todos[m.cursor].ID
			s := m.store
			return m, func() tea.Msg {
				if err := s.Toggle(context.Background(), id); err != nil {
					return loadedMsg{err: err}
				}
				return loadedMsg{}
			}
		}

	case key.Matches(msg, m.keys.Delete):
		if m.cursor < len(m.todos) {
			id := m.todos[m.cursor].ID
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

	if m.adding {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
	}

	if len(m.todos) == 0 {
		b.WriteString(theme.HelpStyle.Render("no todos — press a to add one"))
	}

	for i, todo := range m.todos {
		check := "[ ]"
		line := todo.Content
		if todo.IsDone {
			check = "[x]"
			line = theme.DoneStyle.Render(line)
		} else if todo.Priority > 0 {
			line = theme.PriorityStyle(todo.Priority).Render(line)
		}

		row := check + " " + line
		if i == m.cursor && !m.adding {
			b.WriteString(theme.SelectedItemStyle.Render(row))
		} else {
			b.WriteString(theme.ItemStyle.Render(row))
		}
		b.WriteString("\n")
	}

	if m.archived > 0 {
		b.WriteString("\n")
		b.WriteString(theme.HelpStyle.Render(fmt.Sprintf("%d archived", m.archived)))
	}
	if m.errText != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorStyle.Render(m.errText))
	}

	return b.String()
}
