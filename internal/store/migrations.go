package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schemaVersion is the target schema version. Bump when adding migrations.
const schemaVersion = 2

// migration holds a single schema migration step. Every step must be
// idempotent: the runner may be invoked again after a crash mid-migration,
// so each step guards with an existence check rather than relying on the
// version counter alone.
type migration struct {
	version int
	apply   func(db *sqlx.DB) error
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{version: 1, apply: migrateV1},
	{version: 2, apply: migrateV2},
}

// runMigrations reads the stored schema version and applies any
// outstanding migrations in order, then records the new version. When the
// stored version already meets the target, nothing runs and no version
// write is issued.
func (s *SQLiteStore) runMigrations() error {
	var version int
	if err := s.db.Get(&version, "PRAGMA user_version"); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	if version >= schemaVersion {
		return nil
	}

	for _, m := range migrations {
		if m.version <= version {
			continue
		}
		if err := m.apply(s.db); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	// The version is a compile-time constant; PRAGMA does not take
	// placeholders.
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("recording schema version: %w", err)
	}

	return nil
}

// migrateV1 creates the initial tables. The CHECK constraints mirror the
// validation limits enforced before every write.
func migrateV1(db *sqlx.DB) error {
	stmts := []string{
		fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS todos (
	id         TEXT PRIMARY KEY,
	content    TEXT NOT NULL CHECK(length(content) >= 1 AND length(content) <= %d),
	is_done    INTEGER DEFAULT 0,
	priority   INTEGER DEFAULT 0,
	created_at INTEGER NOT NULL
)`, MaxTodoContent),
		fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS notes (
	id         TEXT PRIMARY KEY,
	title      TEXT DEFAULT '' CHECK(length(title) <= %d),
	content    TEXT DEFAULT '',
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
)`, MaxNoteTitle),
		`
CREATE TABLE IF NOT EXISTS work_logs (
	id         TEXT PRIMARY KEY,
	date       TEXT NOT NULL,
	content    TEXT DEFAULT '',
	created_at INTEGER NOT NULL
)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// migrateV2 adds completion-time tracking to todos and the archive table
// for old completed todos. The done_at column is guarded by a schema
// introspection check, not a blind ADD COLUMN, so a retry after a partial
// failure does not error.
func migrateV2(db *sqlx.DB) error {
	var hasDoneAt int
	err := db.Get(&hasDoneAt,
		"SELECT COUNT(*) FROM pragma_table_info('todos') WHERE name = 'done_at'")
	if err != nil {
		return fmt.Errorf("inspecting todos columns: %w", err)
	}

	if hasDoneAt == 0 {
		if _, err := db.Exec("ALTER TABLE todos ADD COLUMN done_at INTEGER"); err != nil {
			return fmt.Errorf("adding done_at column: %w", err)
		}
	}

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS todos_archive (
	id          TEXT PRIMARY KEY,
	content     TEXT NOT NULL,
	priority    INTEGER DEFAULT 0,
	created_at  INTEGER NOT NULL,
	done_at     INTEGER NOT NULL,
	archived_at INTEGER NOT NULL
)`)
	return err
}
