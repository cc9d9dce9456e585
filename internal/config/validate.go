package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendPostgres:
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("database.dsn is required with the postgres backend")
		}
	case BackendSQLite:
		if strings.TrimSpace(c.SQLite.Path) == "" {
			return fmt.Errorf("sqlite.path is required with the sqlite backend")
		}
	default:
		return fmt.Errorf("storage.backend must be %q or %q (got %q)", BackendPostgres, BackendSQLite, c.Storage.Backend)
	}

	if c.Distribution.RetentionDays <= 0 {
		return fmt.Errorf("distribution.retention_days must be > 0 (got %d)", c.Distribution.RetentionDays)
	}
	if c.Distribution.StatsTopItems <= 0 {
		return fmt.Errorf("distribution.stats_top_items must be > 0 (got %d)", c.Distribution.StatsTopItems)
	}

	if ext := c.Importer.Extension; ext != "" && !strings.HasPrefix(ext, ".") {
		return fmt.Errorf("importer.extension must start with a dot (got %q)", ext)
	}

	return nil
}
