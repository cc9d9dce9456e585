// Command cleanup-grants removes ledger records from completed dedup cycles
// older than the retention period. Current-cycle history is never touched.
// It is intended to be invoked by an external cron job, not as an in-process
// goroutine.
//
// Flags:
//
//	-days     retention in days (default from config)
//	-dry-run  count purgeable records without deleting
//
// Exit codes: 0 = success, 1 = error.
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
	pggrant "github.com/mossfell/giftdist-backend/internal/adapter/postgres/grant"
	pgpolicy "github.com/mossfell/giftdist-backend/internal/adapter/postgres/policy"
	"github.com/mossfell/giftdist-backend/internal/adapter/sqlite"
	sqgift "github.com/mossfell/giftdist-backend/internal/adapter/sqlite/gift"
	sqgrant "github.com/mossfell/giftdist-backend/internal/adapter/sqlite/grant"
	sqpolicy "github.com/mossfell/giftdist-backend/internal/adapter/sqlite/policy"
	"github.com/mossfell/giftdist-backend/internal/app"
	"github.com/mossfell/giftdist-backend/internal/config"
	"github.com/mossfell/giftdist-backend/internal/service/distribution"
	"github.com/mossfell/giftdist-backend/pkg/ctxutil"
)

func main() {
	daysFlag := flag.Int("days", 0, "retention in days (default from config)")
	dryRunFlag := flag.Bool("dry-run", false, "count purgeable records without deleting")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)
	logger.Info("cleanup-grants starting", slog.String("version", app.BuildVersion()))

	days := cfg.Distribution.RetentionDays
	if *daysFlag > 0 {
		days = *daysFlag
	}
	before := time.Now().AddDate(0, 0, -days)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = ctxutil.WithRequestID(ctx, uuid.NewString())

	var svc *distribution.Service
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Error("connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pool.Close()
		svc, err = distribution.NewService(logger,
			pggift.New(pool), pgpolicy.New(pool), pggrant.New(pool), postgres.NewTxManager(pool))
		if err != nil {
			logger.Error("create service", slog.String("error", err.Error()))
			os.Exit(1)
		}

	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			logger.Error("open sqlite database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer db.Close()
		svc, err = distribution.NewService(logger,
			sqgift.New(db), sqpolicy.New(db), sqgrant.New(db), sqlite.NewTxManager(db))
		if err != nil {
			logger.Error("create service", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	defer svc.Stop()

	purged, err := svc.CleanupLedger(ctx, before, *dryRunFlag)
	if err != nil {
		logger.Error("ledger cleanup failed",
			slog.String("error", err.Error()),
			slog.Time("before", before),
		)
		os.Exit(1)
	}

	if *dryRunFlag {
		logger.Info("dry run: purgeable records counted",
			slog.Int64("purgeable", purged),
			slog.Time("before", before),
		)
		return
	}

	logger.Info("ledger cleanup completed",
		slog.Int64("purged", purged),
		slog.Time("before", before),
	)
}
