// Package testhelper opens throwaway SQLite databases for repository tests.
// Every test gets its own temp-file database, so tests are fully isolated
// and safe to run in parallel.
package testhelper

import (
	"database/sql"
	"path/filepath"
	"testing"

	sqlite "github.com/mossfell/giftdist-backend/internal/adapter/sqlite"
)

// OpenTestDB opens a fresh migrated database under t.TempDir and closes it
// when the test finishes.
func OpenTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "gifts.db")
	db, err := sqlite.Open(path)
	if err != nil {
		t.Fatalf("testhelper: open sqlite db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}
