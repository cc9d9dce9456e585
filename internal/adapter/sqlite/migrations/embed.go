// Package migrations embeds the SQLite schema for the embedded store.
package migrations

import "embed"

// FS contains embedded SQLite migrations, mirroring the PostgreSQL schema
// with TEXT ids and integer millisecond timestamps.
//
//go:embed *.sql
var FS embed.FS
