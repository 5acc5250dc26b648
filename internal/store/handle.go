package store

import "sync"

var (
	sharedMu sync.Mutex
	shared   *SQLiteStore
)

// Shared returns the process-wide store, opening and migrating the
// database on first call. The mutex is held across the whole open, so
// concurrent early callers cannot race to open twice. A failed open is
// not cached; the next call retries.
func Shared(dbPath string) (*SQLiteStore, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if shared != nil {
		return shared, nil
	}

	s, err := Open(dbPath)
	if err != nil {
		return nil, err
	}

	shared = s
	return shared, nil
}

// CloseShared closes the process-wide store if it has been opened.
func CloseShared() error {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if shared == nil {
		return nil
	}

	err := shared.Close()
	shared = nil
	return err
}
