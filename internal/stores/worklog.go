package stores

import (
	"context"
	"fmt"

	"github.com/nhle/desknote/internal/model"
	"github.com/nhle/desknote/internal/reactive"
	"github.com/nhle/desknote/internal/store"
)

// WorkLogStore mirrors the daily work log entries, newest day first.
type WorkLogStore struct {
	store store.Store

	Logs *reactive.Value[[]model.WorkLog]
}

// NewWorkLogStore creates a WorkLogStore over the given persistence layer.
func NewWorkLogStore(s store.Store) *WorkLogStore {
	return &WorkLogStore{
		store: s,
		Logs:  reactive.New([]model.WorkLog{}),
	}
}

// Load republishes all work log entries ordered by date descending.
func (w *WorkLogStore) Load(ctx context.Context) error {
	logs, err := w.store.GetWorkLogs(ctx)
	if err != nil {
		return fmt.Errorf("loading work logs: %w", err)
	}
	if logs == nil {
		logs = []model.WorkLog{}
	}
	w.Logs.Set(logs)
	return nil
}

// SaveEntry writes the entry for a calendar day, creating it on first
// save and replacing its content afterwards. Content over the limit fails
// validation before any write.
func (w *WorkLogStore) SaveEntry(ctx context.Context, date, content string) error {
	if err := store.ValidateLength(content, store.MaxWorkLogContent, "Work log"); err != nil {
		return err
	}

	existing, err := w.store.GetWorkLogByDate(ctx, date)
	if err != nil {
		return err
	}

	if existing == nil {
		entry := model.WorkLog{Date: date, Content: content}
		if err := w.store.CreateWorkLog(ctx, entry); err != nil {
			return err
		}
		return w.Load(ctx)
	}

	if err := w.store.UpdateWorkLogContent(ctx, existing.ID, content); err != nil {
		return err
	}

	w.Logs.Update(func(list []model.WorkLog) []model.WorkLog {
		next := make([]model.WorkLog, len(list))
		copy(next, list)
		for i := range next {
			if next[i].ID == existing.ID {
				next[i].Content = content
			}
		}
		return next
	})
	return nil
}
