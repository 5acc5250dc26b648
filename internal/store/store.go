package store

import (
	"context"

	"github.com/nhle/desknote/internal/model"
)

// Store defines the persistence interface for todos, notes, and work
// logs. Delete and toggle style operations on unknown IDs are silent
// no-ops rather than errors.
type Store interface {
	// === Todos ===

	CreateTodo(ctx context.Context, todo model.Todo) error
	SetTodoDone(ctx context.Context, id string, done bool, doneAt *int64) error
	DeleteTodo(ctx context.Context, id string) error
	GetTodos(ctx context.Context) ([]model.Todo, error)

	// === Todo archive ===

	ArchiveTodosBefore(ctx context.Context, cutoff int64) error
	CountArchivedTodos(ctx context.Context) (int, error)
	GetArchivedTodos(ctx context.Context) ([]model.ArchivedTodo, error)

	// === Notes ===

	CreateNote(ctx context.Context, note model.Note) error
	UpdateNote(ctx context.Context, id, title, content string, updatedAt int64) error
	DeleteNote(ctx context.Context, id string) error
	GetNotes(ctx context.Context) ([]model.Note, error)

	// === Work logs ===

	CreateWorkLog(ctx context.Context, log model.WorkLog) error
	UpdateWorkLogContent(ctx context.Context, id, content string) error
	GetWorkLogByDate(ctx context.Context, date string) (*model.WorkLog, error)
	GetWorkLogs(ctx context.Context) ([]model.WorkLog, error)

	// === Maintenance ===

	Vacuum(ctx context.Context) error
	Close() error
}
