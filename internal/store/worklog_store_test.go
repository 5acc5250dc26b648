package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/desknote/internal/model"
)

func TestWorkLogCreateAndLookup(t *testing.T) {
	s := newStore(t)
	ctx := t.Context()

	require.NoError(t, s.CreateWorkLog(ctx, model.WorkLog{Date: "2026-08-31", Content: "shipped release"}))

	log, err := s.GetWorkLogByDate(ctx, "2026-08-31")
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.NotEmpty(t, log.ID)
	assert.Equal(t, "shipped release", log.Content)
	assert.NotZero(t, log.CreatedAt)
}

func TestWorkLogMissingDateReturnsNil(t *testing.T) {
	s := newStore(t)

	log, err := s.GetWorkLogByDate(t.Context(), "1999-01-01")
	require.NoError(t, err)
	assert.Nil(t, log)
}

func TestWorkLogUpdateContent(t *testing.T) {
	s := newStore(t)
	ctx := t.Context()

	require.NoError(t, s.CreateWorkLog(ctx, model.WorkLog{ID: "w1", Date: "2026-08-30", Content: "draft"}))
	require.NoError(t, s.UpdateWorkLogContent(ctx, "w1", "draft, then review"))

	log, err := s.GetWorkLogByDate(ctx, "2026-08-30")
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.Equal(t, "draft, then review", log.Content)
}

func TestWorkLogsOrderedByDateDesc(t *testing.T) {
	s := newStore(t)
	ctx := t.Context()

	for _, date := range []string{"2026-08-29", "2026-08-31", "2026-08-30"} {
		require.NoError(t, s.CreateWorkLog(ctx, model.WorkLog{Date: date}))
	}

	logs, err := s.GetWorkLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "2026-08-31", logs[0].Date)
	assert.Equal(t, "2026-08-30", logs[1].Date)
	assert.Equal(t, "2026-08-29", logs[2].Date)
}
