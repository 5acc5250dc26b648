package stores_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/desknote/internal/stores"
	"github.com/nhle/desknote/tests/testutil"
)

func TestWorkLogStoreSaveEntryCreatesThenUpdates(t *testing.T) {
	s := testutil.NewTestStore(t)
	ws := stores.NewWorkLogStore(s)
	ctx := t.Context()

	require.NoError(t, ws.SaveEntry(ctx, "2026-08-31", "morning standup"))

	logs := ws.Logs.Get()
	require.Len(t, logs, 1)
	assert.Equal(t, "2026-08-31", logs[0].Date)
	assert.Equal(t, "morning standup", logs[0].Content)
	id := logs[0].ID

	// A second save for the same day replaces content, not the row.
	require.NoError(t, ws.SaveEntry(ctx, "2026-08-31", "standup, then code review"))

	logs = ws.Logs.Get()
	require.Len(t, logs, 1)
	assert.Equal(t, id, logs[0].ID)
	assert.Equal(t, "standup, then code review", logs[0].Content)

	entry, err := s.GetWorkLogByDate(ctx, "2026-08-31")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "standup, then code review", entry.Content)
}

func TestWorkLogStoreOrdersNewestFirst(t *testing.T) {
	ws := stores.NewWorkLogStore(testutil.NewTestStore(t))
	ctx := t.Context()

	require.NoError(t, ws.SaveEntry(ctx, "2026-08-29", "friday"))
	require.NoError(t, ws.SaveEntry(ctx, "2026-08-31", "sunday"))
	require.NoError(t, ws.Load(ctx))

	logs := ws.Logs.Get()
	require.Len(t, logs, 2)
	assert.Equal(t, "2026-08-31", logs[0].Date)
	assert.Equal(t, "2026-08-29", logs[1].Date)
}

func TestWorkLogStoreRejectsOverlongContent(t *testing.T) {
	ws := stores.NewWorkLogStore(testutil.NewTestStore(t))
	ctx := t.Context()

	err := ws.SaveEntry(ctx, "2026-08-31", strings.Repeat("a", 10_001))
	require.Error(t, err)
	assert.Equal(t, "Work log exceeds maximum length of 10000 characters", err.Error())

	require.NoError(t, ws.Load(ctx))
	assert.Empty(t, ws.Logs.Get())
}
