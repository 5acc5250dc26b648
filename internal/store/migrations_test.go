package store

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func schemaVersionOf(t *testing.T, s *SQLiteStore) int {
	t.Helper()
	var version int
	require.NoError(t, s.db.Get(&version, "PRAGMA user_version"))
	return version
}

func tableExists(t *testing.T, s *SQLiteStore, name string) bool {
	t.Helper()
	var count int
	require.NoError(t, s.db.Get(&count,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name))
	return count > 0
}

func TestMigrationsFreshDatabase(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "desknote.db"))
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, schemaVersion, schemaVersionOf(t, s))
	for _, table := range []string{"todos", "notes", "work_logs", "todos_archive"} {
		assert.True(t, tableExists(t, s, table), "table %s should exist", table)
	}

	var hasDoneAt int
	require.NoError(t, s.db.Get(&hasDoneAt,
		"SELECT COUNT(*) FROM pragma_table_info('todos') WHERE name = 'done_at'"))
	assert.Equal(t, 1, hasDoneAt)
}

func TestMigrationsRerunFromZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "desknote.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Simulate a crash before the version write: full schema on disk but
	// a stale counter. Every step must re-run without errors.
	raw, err := sqlx.Open("sqlite", path)
	require.NoError(t, err)
	_, err = raw.Exec("PRAGMA user_version = 0")
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, schemaVersion, schemaVersionOf(t, s))

	var hasDoneAt int
	require.NoError(t, s.db.Get(&hasDoneAt,
		"SELECT COUNT(*) FROM pragma_table_info('todos') WHERE name = 'done_at'"))
	assert.Equal(t, 1, hasDoneAt, "done_at must not be duplicated")
}

func TestMigrationsUpgradeFromV1(t *testing.T) {
	path := filepath.Join(t.TempDir(), "desknote.db")

	// Build a v1-era database by hand: no done_at column, no archive.
	raw, err := sqlx.Open("sqlite", path)
	require.NoError(t, err)
	_, err = raw.Exec(`
		CREATE TABLE todos (
			id TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			is_done INTEGER DEFAULT 0,
			priority INTEGER DEFAULT 0,
			created_at INTEGER NOT NULL
		)`)
	require.NoError(t, err)
	_, err = raw.Exec(`
		CREATE TABLE notes (
			id TEXT PRIMARY KEY,
			title TEXT DEFAULT '',
			content TEXT DEFAULT '',
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`)
	require.NoError(t, err)
	_, err = raw.Exec(`
		CREATE TABLE work_logs (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL,
			content TEXT DEFAULT '',
			created_at INTEGER NOT NULL
		)`)
	require.NoError(t, err)
	_, err = raw.Exec("INSERT INTO todos (id, content, created_at) VALUES ('t1', 'carried over', 1000)")
	require.NoError(t, err)
	_, err = raw.Exec("PRAGMA user_version = 1")
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, schemaVersion, schemaVersionOf(t, s))
	assert.True(t, tableExists(t, s, "todos_archive"))

	// Existing rows survive with a NULL done_at.
	todos, err := s.GetTodos(t.Context())
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "carried over", todos[0].Content)
	assert.Nil(t, todos[0].DoneAt)
}

func TestSharedHandle(t *testing.T) {
	t.Cleanup(func() { CloseShared() })

	// A directory is not a usable database file; the failed open must not
	// be cached.
	_, err := Shared(t.TempDir())
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "desknote.db")
	first, err := Shared(path)
	require.NoError(t, err)

	second, err := Shared(path)
	require.NoError(t, err)
	assert.Same(t, first, second)

	require.NoError(t, CloseShared())
}
