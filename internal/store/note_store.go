package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nhle/desknote/internal/model"
)

// CreateNote inserts a new note. Generates a UUID and timestamps when the
// caller leaves them empty.
func (s *SQLiteStore) CreateNote(ctx context.Context, note model.Note) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	if note.CreatedAt == 0 {
		note.CreatedAt = nowMillis()
	}
	if note.UpdatedAt == 0 {
		note.UpdatedAt = note.CreatedAt
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (id, title, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		note.ID, note.Title, note.Content, note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating note: %w", err)
	}
	return nil
}

// UpdateNote writes title, content, and the fresh updated_at stamp for a
// note. An unknown id affects zero rows and is not an error.
func (s *SQLiteStore) UpdateNote(
	ctx context.Context,
	id, title, content string,
	updatedAt int64,
) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE notes SET title = ?, content = ?, updated_at = ? WHERE id = ?",
		title, content, updatedAt, id,
	)
	if err != nil {
		return fmt.Errorf("updating note %s: %w", id, err)
	}
	return nil
}

// DeleteNote removes a note by ID. Deleting an unknown id is a no-op.
func (s *SQLiteStore) DeleteNote(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting note %s: %w", id, err)
	}
	return nil
}

// GetNotes retrieves all notes, most recently updated first.
func (s *SQLiteStore) GetNotes(ctx context.Context) ([]model.Note, error) {
	var notes []model.Note
	err := s.db.SelectContext(ctx, &notes, `
		SELECT id, title, content, created_at, updated_at
		FROM notes
		ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	return notes, nil
}
