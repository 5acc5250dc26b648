// Package stores layers reactive in-memory mirrors over the persistence
// interface. Every operation validates input, writes through to storage
// first, and updates its mirror only on success, so a failed write never
// leaves the mirror ahead of the database.
package stores

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/desknote/internal/model"
	"github.com/nhle/desknote/internal/reactive"
	"github.com/nhle/desknote/internal/store"
)

// archiveWindow is how long completed todos stay in the live table.
const archiveWindow = 30 * 24 * time.Hour

// TodoStore mirrors the live todo collection and the archive count.
type TodoStore struct {
	store store.Store

	// Todos is the live collection, ordered pending-first, then by
	// priority descending, newest first.
	Todos *reactive.Value[[]model.Todo]

	// ArchivedCount is the number of todos moved to the archive.
	ArchivedCount *reactive.Value[int]
}

// NewTodoStore creates a TodoStore over the given persistence layer.
func NewTodoStore(s store.Store) *TodoStore {
	return &TodoStore{
		store:         s,
		Todos:         reactive.New([]model.Todo{}),
		ArchivedCount: reactive.New(0),
	}
}

// Load sweeps old completed todos into the archive, then republishes the
// full ordered live set and the archive count. The sweep completes before
// the live read, so the published set never includes archived rows.
func (t *TodoStore) Load(ctx context.Context) error {
	cutoff := time.Now().UnixMilli() - archiveWindow.Milliseconds()
	if err := t.store.ArchiveTodosBefore(ctx, cutoff); err != nil {
		return fmt.Errorf("archiving old todos: %w", err)
	}

	count, err := t.store.CountArchivedTodos(ctx)
	if err != nil {
		return fmt.Errorf("counting archived todos: %w", err)
	}
	t.ArchivedCount.Set(count)

	todos, err := t.store.GetTodos(ctx)
	if err != nil {
		return fmt.Errorf("loading todos: %w", err)
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	t.Todos.Set(todos)
	return nil
}

// Add creates a new pending todo from content. Surrounding whitespace is
// trimmed; an all-whitespace input is a silent no-op. Content over the
// limit fails validation before any write.
func (t *TodoStore) Add(ctx context.Context, content string) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil
	}
	if err := store.ValidateLength(trimmed, store.MaxTodoContent, "Todo"); err != nil {
		return err
	}

	todo := model.Todo{
		ID:        uuid.New().String(),
		Content:   trimmed,
		IsDone:    false,
		Priority:  model.PriorityNormal,
		CreatedAt: time.Now().UnixMilli(),
		DoneAt:    nil,
	}
	if err := t.store.CreateTodo(ctx, todo); err != nil {
		return err
	}

	t.Todos.Update(func(list []model.Todo) []model.Todo {
		return append([]model.Todo{todo}, list...)
	})
	return nil
}

// Toggle flips the done state of a todo. Marking done stamps done_at with
// the current time; marking not-done clears it. Unknown ids are a no-op.
func (t *TodoStore) Toggle(ctx context.Context, id string) error {
	var current *model.Todo
	for _, todo := range t.Todos.Get() {
		if todo.ID == id {
			c := todo
			current = &c
			break
		}
	}
	if current == nil {
		return nil
	}

	done := !current.IsDone
	var doneAt *int64
	if done {
		ms := time.Now().UnixMilli()
		doneAt = &ms
	}

	if err := t.store.SetTodoDone(ctx, id, done, doneAt); err != nil {
		return err
	}

	t.Todos.Update(func(list []model.Todo) []model.Todo {
		next := make([]model.Todo, len(list))
		copy(next, list)
		for i := range next {
			if next[i].ID == id {
				next[i].IsDone = done
				next[i].DoneAt = doneAt
			}
		}
		return next
	})
	return nil
}

// Delete removes a todo from storage and the mirror. Unknown ids are a
// no-op.
func (t *TodoStore) Delete(ctx context.Context, id string) error {
	if err := t.store.DeleteTodo(ctx, id); err != nil {
		return err
	}

	t.Todos.Update(func(list []model.Todo) []model.Todo {
		next := make([]model.Todo, 0, len(list))
		for _, todo := range list {
			if todo.ID != id {
				next = append(next, todo)
			}
		}
		return next
	})
	return nil
}
