package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Storage      StorageConfig      `yaml:"storage"`
	Database     DatabaseConfig     `yaml:"database"`
	SQLite       SQLiteConfig       `yaml:"sqlite"`
	Distribution DistributionConfig `yaml:"distribution"`
	Importer     ImporterConfig     `yaml:"importer"`
	Log          LogConfig          `yaml:"log"`
}

// Storage backend identifiers.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// StorageConfig selects which persistence backend the binaries use.
// The hosted admin deployment runs on PostgreSQL; an embedded deployment
// next to the emulator process runs on a single SQLite file.
type StorageConfig struct {
	Backend string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"postgres"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// SQLiteConfig holds embedded database settings.
type SQLiteConfig struct {
	Path string `yaml:"path" env:"SQLITE_PATH" env-default:"./giftdist.db"`
}

// DistributionConfig holds gift distribution engine settings.
type DistributionConfig struct {
	// RetentionDays is how long completed-cycle ledger records are kept
	// before cleanup-grants may purge them.
	RetentionDays int `yaml:"retention_days"  env:"DIST_RETENTION_DAYS"  env-default:"90"`
	// StatsTopItems caps the per-game grant leaderboard length.
	StatsTopItems int `yaml:"stats_top_items" env:"DIST_STATS_TOP_ITEMS" env-default:"10"`
}

// ImporterConfig holds gift file import settings.
type ImporterConfig struct {
	// SourceDir is the root of the distribution tree: <dir>/<GAMEID>/*.myg.
	SourceDir string `yaml:"source_dir" env:"IMPORT_SOURCE_DIR" env-default:"./dlc"`
	// Extension filters which files are treated as gift payloads.
	Extension string `yaml:"extension"  env:"IMPORT_EXTENSION"  env-default:".myg"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
