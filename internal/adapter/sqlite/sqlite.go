// Package sqlite provides the embedded storage backend. It mirrors the
// postgres adapter's repository surface on database/sql so a deployment can
// run against a single WAL-mode file instead of a server.
package sqlite

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mossfell/giftdist-backend/internal/adapter/sqlite/migrations"
)

// Open opens (creating if needed) the SQLite database at path and applies
// embedded migrations. The returned handle is safe for concurrent use.
// Foreign keys must stay enabled: the grant ledger relies on them to reject
// records for unknown items and to cascade manual item deletions.
func Open(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := ApplyMigrations(db, migrations.FS, ""); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}

// Timestamps are stored as UTC Unix milliseconds. Callers that need
// finer-than-millisecond ordering must break ties on another column.

// ToMillis converts a time to its stored integer form.
func ToMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// FromMillis converts a stored integer back to a UTC time.
func FromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// ToNullMillis converts an optional time for binding to a nullable column.
func ToNullMillis(value *time.Time) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: ToMillis(*value), Valid: true}
}

// FromNullMillis converts a scanned nullable column to an optional time.
func FromNullMillis(value sql.NullInt64) *time.Time {
	if !value.Valid {
		return nil
	}
	t := FromMillis(value.Int64)
	return &t
}
