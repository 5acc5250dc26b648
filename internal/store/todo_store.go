package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nhle/desknote/internal/model"
)

// CreateTodo inserts a new todo. Generates a UUID and creation timestamp
// when the caller leaves them empty.
func (s *SQLiteStore) CreateTodo(ctx context.Context, todo model.Todo) error {
	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}
	if todo.CreatedAt == 0 {
		todo.CreatedAt = nowMillis()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO todos (id, content, is_done, priority, created_at, done_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		todo.ID, todo.Content, boolToInt(todo.IsDone), todo.Priority,
		todo.CreatedAt, todo.DoneAt,
	)
	if err != nil {
		return fmt.Errorf("creating todo: %w", err)
	}
	return nil
}

// SetTodoDone writes the done flag and completion timestamp for a todo.
// Exactly these two fields are touched. An unknown id affects zero rows
// and is not an error.
func (s *SQLiteStore) SetTodoDone(
	ctx context.Context,
	id string,
	done bool,
	doneAt *int64,
) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE todos SET is_done = ?, done_at = ? WHERE id = ?",
		boolToInt(done), doneAt, id,
	)
	if err != nil {
		return fmt.Errorf("updating todo %s: %w", id, err)
	}
	return nil
}

// DeleteTodo removes a todo by ID. Deleting an unknown id is a no-op.
func (s *SQLiteStore) DeleteTodo(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting todo %s: %w", id, err)
	}
	return nil
}

// GetTodos retrieves all live todos: pending before done, then by
// priority descending, newest first within a priority.
func (s *SQLiteStore) GetTodos(ctx context.Context) ([]model.Todo, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT id, content, is_done, priority, created_at, done_at
		FROM todos
		ORDER BY is_done ASC, priority DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying todos: %w", err)
	}
	defer rows.Close()

	var todos []model.Todo
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}

	return todos, rows.Err()
}

// ArchiveTodosBefore moves todos completed before the cutoff (epoch
// milliseconds) into todos_archive and deletes the live rows. Archive
// inserts use INSERT OR IGNORE so a row that was already archived is
// never overwritten, which makes the sweep safe to re-run.
func (s *SQLiteStore) ArchiveTodosBefore(ctx context.Context, cutoff int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning archive transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryxContext(ctx, `
		SELECT id, content, priority, created_at, done_at
		FROM todos
		WHERE is_done = 1 AND done_at IS NOT NULL AND done_at < ?`,
		cutoff,
	)
	if err != nil {
		return fmt.Errorf("selecting todos to archive: %w", err)
	}

	var expired []model.ArchivedTodo
	for rows.Next() {
		var t model.ArchivedTodo
		if err := rows.Scan(&t.ID, &t.Content, &t.Priority, &t.CreatedAt, &t.DoneAt); err != nil {
			rows.Close()
			return fmt.Errorf("scanning todo to archive: %w", err)
		}
		expired = append(expired, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("selecting todos to archive: %w", err)
	}

	if len(expired) == 0 {
		return tx.Commit()
	}

	archivedAt := nowMillis()
	for _, t := range expired {
		_, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO todos_archive
				(id, content, priority, created_at, done_at, archived_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			t.ID, t.Content, t.Priority, t.CreatedAt, t.DoneAt, archivedAt,
		)
		if err != nil {
			return fmt.Errorf("archiving todo %s: %w", t.ID, err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", t.ID); err != nil {
			return fmt.Errorf("deleting archived todo %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// CountArchivedTodos returns the total number of archived todos.
func (s *SQLiteStore) CountArchivedTodos(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM todos_archive"); err != nil {
		return 0, fmt.Errorf("counting archived todos: %w", err)
	}
	return count, nil
}

// GetArchivedTodos retrieves the archive, most recently archived first.
func (s *SQLiteStore) GetArchivedTodos(ctx context.Context) ([]model.ArchivedTodo, error) {
	var archived []model.ArchivedTodo
	err := s.db.SelectContext(ctx, &archived, `
		SELECT id, content, priority, created_at, done_at, archived_at
		FROM todos_archive
		ORDER BY archived_at DESC, done_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying archived todos: %w", err)
	}
	return archived, nil
}

// scanTodo scans a todo row, normalizing is_done to bool and leaving
// done_at nil when the column is NULL.
func scanTodo(rows interface{ Scan(dest ...interface{}) error }) (model.Todo, error) {
	var (
		todo    model.Todo
		doneInt int
		doneAt  *int64
	)

	err := rows.Scan(
		&todo.ID, &todo.Content, &doneInt, &todo.Priority,
		&todo.CreatedAt, &doneAt,
	)
	if err != nil {
		return model.Todo{}, fmt.Errorf("scanning todo row: %w", err)
	}

	todo.IsDone = doneInt != 0
	todo.DoneAt = doneAt
	return todo, nil
}
