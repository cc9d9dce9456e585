// Command import-gifts bulk-registers gift files from a distribution
// directory tree (<root>/<GAMEID>/*.myg) into the catalog. It is intended
// to be run offline after syncing a distribution source, not as part of a
// server process.
//
// Flags:
//
//	-source     root of the distribution tree (default from config)
//	-game-id    import only this game's directory
//	-dry-run    report what would change without writing
//	-overwrite  refresh items whose (game, filename) already exists
//
// Exit codes: 0 = success, 1 = error (including any per-file failure).
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/mossfell/giftdist-backend/internal/adapter/postgres"
	pggift "github.com/mossfell/giftdist-backend/internal/adapter/postgres/gift"
	"github.com/mossfell/giftdist-backend/internal/adapter/sqlite"
	sqgift "github.com/mossfell/giftdist-backend/internal/adapter/sqlite/gift"
	"github.com/mossfell/giftdist-backend/internal/app"
	"github.com/mossfell/giftdist-backend/internal/app/importer"
	"github.com/mossfell/giftdist-backend/internal/config"
	"github.com/mossfell/giftdist-backend/pkg/ctxutil"
)

func main() {
	sourceFlag := flag.String("source", "", "root of the distribution tree (default from config)")
	gameIDFlag := flag.String("game-id", "", "import only this game's directory")
	dryRunFlag := flag.Bool("dry-run", false, "report what would change without writing")
	overwriteFlag := flag.Bool("overwrite", false, "refresh existing items from their files")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)
	logger.Info("import-gifts starting", slog.String("version", app.BuildVersion()))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()
	ctx = ctxutil.WithRequestID(ctx, uuid.NewString())

	source := cfg.Importer.SourceDir
	if *sourceFlag != "" {
		source = *sourceFlag
	}

	opts := importer.Options{
		SourceDir: source,
		GameID:    *gameIDFlag,
		Extension: cfg.Importer.Extension,
		DryRun:    *dryRunFlag,
		Overwrite: *overwriteFlag,
	}

	var imp *importer.Importer
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Error("connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pool.Close()
		imp = importer.New(logger, pggift.New(pool), opts)

	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			logger.Error("open sqlite database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer db.Close()
		imp = importer.New(logger, sqgift.New(db), opts)
	}

	res, err := imp.Run(ctx)
	if err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if res.HasErrors() {
		os.Exit(1)
	}
}
