// Package importer bulk-registers gift files from a distribution directory
// tree laid out as <root>/<GAMEID>/<file>.myg. Titles and regions are derived
// from the filenames; file sizes are taken from the filesystem. The importer
// never touches grant history.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mossfell/giftdist-backend/internal/domain"
	"github.com/mossfell/giftdist-backend/internal/metrics"
)

type catalogRepo interface {
	GetByGameFilename(ctx context.Context, gameID, filename string) (*domain.GiftItem, error)
	Upsert(ctx context.Context, item *domain.GiftItem) (*domain.GiftItem, error)
}

// Options configures one import run.
type Options struct {
	// SourceDir is the root of the distribution tree.
	SourceDir string
	// GameID, when set, restricts the run to one game directory.
	GameID string
	// Extension filters payload files; files with other extensions are
	// ignored silently.
	Extension string
	// DryRun reports what would change without writing.
	DryRun bool
	// Overwrite updates items whose (game, filename) already exists.
	Overwrite bool
}

// Result holds per-run counters.
type Result struct {
	Scanned  int
	Imported int
	Updated  int
	Skipped  int
	Errors   int
	Duration time.Duration
}

// HasErrors reports whether any file failed to import.
func (r Result) HasErrors() bool { return r.Errors > 0 }

// Importer scans a gift distribution tree and registers items.
type Importer struct {
	log  *slog.Logger
	repo catalogRepo
	opts Options
}

// New creates an Importer. A missing extension defaults to ".myg";
// a bare extension like "myg" gets the dot prefixed so it compares
// against filepath.Ext.
func New(log *slog.Logger, repo catalogRepo, opts Options) *Importer {
	if opts.Extension == "" {
		opts.Extension = ".myg"
	}
	if !strings.HasPrefix(opts.Extension, ".") {
		opts.Extension = "." + opts.Extension
	}
	return &Importer{
		log:  log.With("component", "importer"),
		repo: repo,
		opts: opts,
	}
}

// Run walks the source tree and imports every matching gift file.
// It keeps going past per-file failures; only an unreadable source tree
// aborts the run.
func (imp *Importer) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	var res Result

	games, err := imp.gameDirs()
	if err != nil {
		return res, err
	}

	for _, gameID := range games {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := imp.runGame(ctx, gameID, &res); err != nil {
			return res, err
		}
	}

	res.Duration = time.Since(start)

	imp.log.InfoContext(ctx, "import finished",
		slog.Int("scanned", res.Scanned),
		slog.Int("imported", res.Imported),
		slog.Int("updated", res.Updated),
		slog.Int("skipped", res.Skipped),
		slog.Int("errors", res.Errors),
		slog.Duration("duration", res.Duration),
		slog.Bool("dry_run", imp.opts.DryRun),
	)

	return res, nil
}

// gameDirs lists the per-game subdirectories of the source root, sorted,
// honoring the GameID restriction.
func (imp *Importer) gameDirs() ([]string, error) {
	entries, err := os.ReadDir(imp.opts.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("read source dir %s: %w", imp.opts.SourceDir, err)
	}

	var games []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if imp.opts.GameID != "" && e.Name() != imp.opts.GameID {
			continue
		}
		games = append(games, e.Name())
	}
	sort.Strings(games)

	if imp.opts.GameID != "" && len(games) == 0 {
		return nil, fmt.Errorf("game directory %s not found under %s", imp.opts.GameID, imp.opts.SourceDir)
	}

	return games, nil
}

func (imp *Importer) runGame(ctx context.Context, gameID string, res *Result) error {
	log := imp.log.With(slog.String("game_id", gameID))
	if !domain.KnownGame(gameID) {
		log.Warn("game not in registry, importing anyway")
	}

	dir := filepath.Join(imp.opts.SourceDir, gameID)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read game dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), imp.opts.Extension) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	if len(names) == 0 {
		log.Debug("no gift files found")
		return nil
	}

	for _, name := range names {
		res.Scanned++
		outcome := imp.importFile(ctx, gameID, dir, name, res)
		metrics.ImportFilesTotal.WithLabelValues(gameID, outcome).Inc()
	}

	return nil
}

// importFile processes one gift file and returns the outcome label:
// imported, updated, skipped, or error.
func (imp *Importer) importFile(ctx context.Context, gameID, dir, name string, res *Result) string {
	log := imp.log.With(slog.String("game_id", gameID), slog.String("filename", name))

	info, err := os.Stat(filepath.Join(dir, name))
	if err != nil {
		log.Error("stat gift file", slog.String("error", err.Error()))
		res.Errors++
		return "error"
	}

	existing, err := imp.repo.GetByGameFilename(ctx, gameID, name)
	switch {
	case err == nil:
		if !imp.opts.Overwrite {
			log.Debug("already registered, skipping")
			res.Skipped++
			return "skipped"
		}
	case errors.Is(err, domain.ErrNotFound):
		existing = nil
	default:
		log.Error("look up gift item", slog.String("error", err.Error()))
		res.Errors++
		return "error"
	}

	item := &domain.GiftItem{
		GameID:      gameID,
		Filename:    name,
		Title:       DeriveTitle(gameID, name, imp.opts.Extension),
		Description: fmt.Sprintf("Auto-imported for %s", domain.GameTitle(gameID)),
		EventType:   "Mystery Gift",
		Region:      DetectRegion(name),
		FileSize:    info.Size(),
		Enabled:     true,
	}
	if existing != nil {
		// Keep the stored id, window, priority, and enabled flag: an
		// overwrite refreshes the file-derived fields only.
		item.ID = existing.ID
		item.Priority = existing.Priority
		item.Enabled = existing.Enabled
		item.AvailableFrom = existing.AvailableFrom
		item.AvailableUntil = existing.AvailableUntil
		item.Description = existing.Description
	}

	if imp.opts.DryRun {
		if existing != nil {
			log.Info("would update", slog.Int64("size", item.FileSize), slog.String("region", item.Region))
			res.Updated++
			return "updated"
		}
		log.Info("would import", slog.Int64("size", item.FileSize), slog.String("region", item.Region))
		res.Imported++
		return "imported"
	}

	if _, err := imp.repo.Upsert(ctx, item); err != nil {
		log.Error("upsert gift item", slog.String("error", err.Error()))
		res.Errors++
		return "error"
	}

	if existing != nil {
		log.Info("updated", slog.Int64("size", item.FileSize), slog.String("region", item.Region))
		res.Updated++
		return "updated"
	}
	log.Info("imported", slog.Int64("size", item.FileSize), slog.String("region", item.Region))
	res.Imported++
	return "imported"
}
