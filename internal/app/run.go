package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/desknote/internal/model"
	"github.com/nhle/desknote/internal/ui/notecard"
	"github.com/nhle/desknote/internal/ui/todocard"
	"github.com/nhle/desknote/internal/ui/worklogcard"
)

// Run starts the TUI over the given stores and blocks until it exits.
// Reactive store subscriptions are bridged into the Bubble Tea message
// loop so a mirror change from any code path re-renders the cards.
func Run(s Stores) error {
	p := tea.NewProgram(New(s), tea.WithAltScreen())

	cancels := []func(){
		s.Todos.Todos.Subscribe(func([]model.Todo) {
			go p.Send(todocard.MirrorChangedMsg{})
		}),
		s.Todos.ArchivedCount.Subscribe(func(int) {
			go p.Send(todocard.MirrorChangedMsg{})
		}),
		s.Notes.Notes.Subscribe(func([]model.Note) {
			go p.Send(notecard.MirrorChangedMsg{})
		}),
		s.Notes.ActiveNoteID.Subscribe(func(string) {
			go p.Send(notecard.MirrorChangedMsg{})
		}),
		s.WorkLogs.Logs.Subscribe(func([]model.WorkLog) {
			go p.Send(worklogcard.MirrorChangedMsg{})
		}),
	}
	defer func() {
		for _, cancel := range cancels {
			cancel()
		}
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}
