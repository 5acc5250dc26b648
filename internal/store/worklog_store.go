package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nhle/desknote/internal/model"
)

// CreateWorkLog inserts a new work log entry. Generates a UUID and
// creation timestamp when the caller leaves them empty.
func (s *SQLiteStore) CreateWorkLog(ctx context.Context, log model.WorkLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.CreatedAt == 0 {
		log.CreatedAt = nowMillis()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO work_logs (id, date, content, created_at)
		VALUES (?, ?, ?, ?)`,
		log.ID, log.Date, log.Content, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating work log: %w", err)
	}
	return nil
}

// UpdateWorkLogContent replaces the content of an existing entry.
func (s *SQLiteStore) UpdateWorkLogContent(ctx context.Context, id, content string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE work_logs SET content = ? WHERE id = ?", content, id)
	if err != nil {
		return fmt.Errorf("updating work log %s: %w", id, err)
	}
	return nil
}

// GetWorkLogByDate retrieves the entry for a calendar day, or nil when
// no entry exists for that day.
func (s *SQLiteStore) GetWorkLogByDate(ctx context.Context, date string) (*model.WorkLog, error) {
	var log model.WorkLog
	err := s.db.GetContext(ctx, &log, `
		SELECT id, date, content, created_at
		FROM work_logs
		WHERE date = ?`, date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting work log for %s: %w", date, err)
	}
	return &log, nil
}

// GetWorkLogs retrieves all entries, newest day first.
func (s *SQLiteStore) GetWorkLogs(ctx context.Context) ([]model.WorkLog, error) {
	var logs []model.WorkLog
	err := s.db.SelectContext(ctx, &logs, `
		SELECT id, date, content, created_at
		FROM work_logs
		ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying work logs: %w", err)
	}
	return logs, nil
}
