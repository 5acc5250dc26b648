// Package app wires the reactive stores into the root Bubble Tea model:
// four cards (todos, notes, work log, settings) behind a tab bar.
package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/desknote/internal/keys"
	"github.com/nhle/desknote/internal/stores"
	"github.com/nhle/desknote/internal/theme"
	"github.com/nhle/desknote/internal/ui/notecard"
	"github.com/nhle/desknote/internal/ui/settingscard"
	"github.com/nhle/desknote/internal/ui/todocard"
	"github.com/nhle/desknote/internal/ui/worklogcard"
)

// Card identifies one of the four tabbed cards, in tab order.
type Card int

const (
	CardTodo Card = iota
	CardNotes
	CardWorkLog
	CardSettings
)

// cardLabels are the tab bar labels, indexed by Card.
var cardLabels = []string{"Todo", "Notes", "Work Log", "Settings"}

// cardIDs map Card values to the settings-store card identifiers.
var cardIDs = []string{
	stores.CardTodo, stores.CardNotes, stores.CardWorkLog, stores.CardSettings,
}

// Stores bundles the reactive stores the UI operates on.
type Stores struct {
	Todos    *stores.TodoStore
	Notes    *stores.NoteStore
	WorkLogs *stores.WorkLogStore
	Settings *stores.SettingsStore
}

// Model is the root Bubble Tea model managing tab routing and layout.
type Model struct {
	stores       Stores
	keys         *keys.KeyMap
	active       Card
	todoCard     todocard.Model
	noteCard     notecard.Model
	worklogCard  worklogcard.Model
	settingsCard settingscard.Model
	width        int
	height       int
	ready        bool
}

// New creates the root application model over the given stores.
func New(s Stores) Model {
	k := keys.DefaultKeyMap()

	return Model{
		stores:       s,
		keys:         k,
		active:       CardTodo,
		todoCard:     todocard.New(s.Todos, k, 80, 24),
		noteCard:     notecard.New(s.Notes, k, 80, 24),
		worklogCard:  worklogcard.New(s.WorkLogs, k, 80, 24),
		settingsCard: settingscard.New(s.Settings, k, 80, 24),
	}
}

// Init loads every card's backing data.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.todoCard.Init(),
		m.noteCard.Init(),
		m.worklogCard.Init(),
		m.settingsCard.Init(),
	)
}

// Update routes messages to the active card and handles tab switching.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		cardWidth := msg.Width - 4
		cardHeight := msg.Height - 4
		m.todoCard.SetSize(cardWidth, cardHeight)
		m.noteCard.SetSize(cardWidth, cardHeight)
		m.worklogCard.SetSize(cardWidth, cardHeight)
		m.settingsCard.SetSize(cardWidth, cardHeight)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit) && !m.inputActive():
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab) && !m.inputActive():
			return m.switchCard((m.active + 1) % Card(len(cardLabels)))

		case key.Matches(msg, m.keys.PrevTab) && !m.inputActive():
			return m.switchCard((m.active + Card(len(cardLabels)) - 1) % Card(len(cardLabels)))
		}
	}

	return m.updateActiveCard(msg)
}

// switchCard activates a card and persists the collapsed map: the active
// card expanded, the rest collapsed.
func (m Model) switchCard(next Card) (tea.Model, tea.Cmd) {
	m.active = next
	settings := m.stores.Settings
	collapsed := make(map[string]bool, len(cardIDs))
	for i, id := range cardIDs {
		collapsed[id] = Card(i) != next
	}
	return m, func() tea.Msg {
		// Persist-failure here only affects the next launch's layout.
		_ = settings.SaveCardCollapsed(collapsed)
		return nil
	}
}

// inputActive reports whether the active card is capturing text input, in
// which case global bindings stay out of the way.
func (m Model) inputActive() bool {
	switch m.active {
	case CardTodo:
		return m.todoCard.InputActive()
	case CardNotes:
		return m.noteCard.InputActive()
	case CardWorkLog:
		return m.worklogCard.InputActive()
	case CardSettings:
		return m.settingsCard.InputActive()
	}
	return false
}

// updateActiveCard forwards a message to the active card only.
func (m Model) updateActiveCard(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.active {
	case CardTodo:
		m.todoCard, cmd = m.todoCard.Update(msg)
	case CardNotes:
		m.noteCard, cmd = m.noteCard.Update(msg)
	case CardWorkLog:
		m.worklogCard, cmd = m.worklogCard.Update(msg)
	case CardSettings:
		m.settingsCard, cmd = m.settingsCard.Update(msg)
	}
	return m, cmd
}

// View renders the tab bar and the active card.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	tabs := make([]string, len(cardLabels))
	for i, label := range cardLabels {
		if Card(i) == m.active {
			tabs[i] = theme.ActiveTabStyle.Render(label)
		} else {
			tabs[i] = theme.TabStyle.Render(label)
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	var body string
	switch m.active {
	case CardTodo:
		body = m.todoCard.View()
	case CardNotes:
		body = m.noteCard.View()
	case CardWorkLog:
		body = m.worklogCard.View()
	case CardSettings:
		body = m.settingsCard.View()
	}

	card := theme.CardStyle.Width(m.width - 2).Render(body)

	var b strings.Builder
	b.WriteString(bar)
	b.WriteString("\n")
	b.WriteString(card)
	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render("tab switch card · q quit"))
	return b.String()
}
