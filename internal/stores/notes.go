package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/desknote/internal/model"
	"github.com/nhle/desknote/internal/reactive"
	"github.com/nhle/desknote/internal/store"
)

// NoteStore mirrors the note collection and tracks the active selection.
type NoteStore struct {
	store store.Store

	// Notes is ordered most recently updated first. Updates patch
	// entries in place without re-sorting; the order is refreshed on the
	// next Load.
	Notes *reactive.Value[[]model.Note]

	// ActiveNoteID is the currently selected note, or "" when none.
	ActiveNoteID *reactive.Value[string]
}

// NewNoteStore creates a NoteStore over the given persistence layer.
func NewNoteStore(s store.Store) *NoteStore {
	return &NoteStore{
		store:        s,
		Notes:        reactive.New([]model.Note{}),
		ActiveNoteID: reactive.New(""),
	}
}

// Load republishes all notes ordered by updated_at descending. The most
// recently updated note becomes the active selection; an empty collection
// clears it.
func (n *NoteStore) Load(ctx context.Context) error {
	notes, err := n.store.GetNotes(ctx)
	if err != nil {
		return fmt.Errorf("loading notes: %w", err)
	}
	if notes == nil {
		notes = []model.Note{}
	}
	n.Notes.Set(notes)

	if len(notes) > 0 {
		n.ActiveNoteID.Set(notes[0].ID)
	} else {
		n.ActiveNoteID.Set("")
	}
	return nil
}

// Create persists an empty note, prepends it to the mirror, makes it the
// active selection, and returns its id.
func (n *NoteStore) Create(ctx context.Context) (string, error) {
	now := time.Now().UnixMilli()
	note := model.Note{
		ID:        uuid.New().String(),
		Title:     "",
		Content:   "",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := n.store.CreateNote(ctx, note); err != nil {
		return "", err
	}

	n.Notes.Update(func(list []model.Note) []model.Note {
		return append([]model.Note{note}, list...)
	})
	n.ActiveNoteID.Set(note.ID)
	return note.ID, nil
}

// Update validates title and content, stamps a fresh updated_at, writes
// through, and patches the matching mirror entry in place. Validation
// failure aborts before any write.
func (n *NoteStore) Update(ctx context.Context, id, title, content string) error {
	if err := store.ValidateLength(title, store.MaxNoteTitle, "Note title"); err != nil {
		return err
	}
	if err := store.ValidateLength(content, store.MaxNoteContent, "Note content"); err != nil {
		return err
	}

	updatedAt := time.Now().UnixMilli()
	if err := n.store.UpdateNote(ctx, id, title, content, updatedAt); err != nil {
		return err
	}

	n.Notes.Update(func(list []model.Note) []model.Note {
		next := make([]model.Note, len(list))
		copy(next, list)
		for i := range next {
			if next[i].ID == id {
				next[i].Title = title
				next[i].Content = content
				next[i].UpdatedAt = updatedAt
			}
		}
		return next
	})
	return nil
}

// Delete removes a note from storage and the mirror. When the deleted
// note was active, the first surviving note becomes active, or the
// selection clears if none remain.
func (n *NoteStore) Delete(ctx context.Context, id string) error {
	if err := n.store.DeleteNote(ctx, id); err != nil {
		return err
	}

	survivors := make([]model.Note, 0)
	for _, note := range n.Notes.Get() {
		if note.ID != id {
			survivors = append(survivors, note)
		}
	}
	n.Notes.Set(survivors)

	if n.ActiveNoteID.Get() == id {
		if len(survivors) > 0 {
			n.ActiveNoteID.Set(survivors[0].ID)
		} else {
			n.ActiveNoteID.Set("")
		}
	}
	return nil
}
