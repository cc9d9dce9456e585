// Command giftctl performs one-shot operations against the gift
// distribution backend from the shell: request a grant as a console would,
// edit policies, flip items, and print per-game statistics.
//
// Usage:
//
//	giftctl -action grant        -game-id CPUE -recipient 1234567890 [-request-key KEY]
//	giftctl -action set-policy   -game-id CPUE -mode priority [-track] [-reset]
//	giftctl -action get-policy   -game-id CPUE
//	giftctl -action enable-item  -item-id <uuid>
//	giftctl -action disable-item -item-id <uuid>
//	giftctl -action stats        -game-id CPUE
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
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
	"github.com/mossfell/giftdist-backend/internal/domain"
	"github.com/mossfell/giftdist-backend/internal/service/catalog"
	"github.com/mossfell/giftdist-backend/internal/service/distribution"
	"github.com/mossfell/giftdist-backend/pkg/ctxutil"
)

func main() {
	action := flag.String("action", "", "grant | set-policy | get-policy | enable-item | disable-item | stats")
	gameID := flag.String("game-id", "", "game code, e.g. CPUE")
	recipient := flag.String("recipient", "", "recipient id (profile id or friend code)")
	requestKey := flag.String("request-key", "", "idempotency key for grant retries")
	mode := flag.String("mode", "random", "distribution mode: random | priority | broadcast")
	track := flag.Bool("track", true, "track per-recipient grant history")
	reset := flag.Bool("reset", true, "reset the cycle automatically on exhaustion")
	itemID := flag.String("item-id", "", "catalog item uuid")
	flag.Parse()

	if *action == "" {
		fmt.Fprintln(os.Stderr, "Usage: giftctl -action grant|set-policy|get-policy|enable-item|disable-item|stats [flags]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	ctx = ctxutil.WithRequestID(ctx, uuid.NewString())

	var (
		dist *distribution.Service
		cat  *catalog.Service
	)
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("connect to database: %v", err)
		}
		defer pool.Close()

		items, policies, grants := pggift.New(pool), pgpolicy.New(pool), pggrant.New(pool)
		dist, err = distribution.NewService(logger, items, policies, grants, postgres.NewTxManager(pool))
		if err != nil {
			log.Fatalf("create distribution service: %v", err)
		}
		cat = catalog.NewService(logger, items, policies, grants, cfg.Distribution.StatsTopItems)

	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			log.Fatalf("open sqlite database: %v", err)
		}
		defer db.Close()

		items, policies, grants := sqgift.New(db), sqpolicy.New(db), sqgrant.New(db)
		dist, err = distribution.NewService(logger, items, policies, grants, sqlite.NewTxManager(db))
		if err != nil {
			log.Fatalf("create distribution service: %v", err)
		}
		cat = catalog.NewService(logger, items, policies, grants, cfg.Distribution.StatsTopItems)
	}
	defer dist.Stop()

	if err := run(ctx, *action, dist, cat, flags{
		gameID:     *gameID,
		recipient:  *recipient,
		requestKey: *requestKey,
		mode:       *mode,
		track:      *track,
		reset:      *reset,
		itemID:     *itemID,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "giftctl: %v\n", err)
		os.Exit(1)
	}
}

type flags struct {
	gameID     string
	recipient  string
	requestKey string
	mode       string
	track      bool
	reset      bool
	itemID     string
}

func run(ctx context.Context, action string, dist *distribution.Service, cat *catalog.Service, f flags) error {
	switch action {
	case "grant":
		res, err := dist.RequestGrant(ctx, distribution.GrantInput{
			GameID:      f.gameID,
			RecipientID: f.recipient,
			RequestKey:  f.requestKey,
		})
		if err != nil {
			return err
		}
		fmt.Printf("exhausted=%v reset_performed=%v replayed=%v items=%d\n",
			res.Exhausted, res.ResetPerformed, res.Replayed, len(res.Items))
		for _, item := range res.Items {
			fmt.Printf("  %s  %s  pri=%d  %s\n", item.ID, item.Filename, item.Priority, item.Title)
		}
		return nil

	case "set-policy":
		pol, err := cat.SetPolicy(ctx, catalog.SetPolicyInput{
			GameID:            f.gameID,
			Mode:              domain.DistributionMode(f.mode),
			TrackGrants:       f.track,
			ResetOnExhaustion: f.reset,
		})
		if err != nil {
			return err
		}
		printPolicy(pol)
		return nil

	case "get-policy":
		pol, err := cat.GetPolicy(ctx, f.gameID)
		if err != nil {
			return err
		}
		printPolicy(pol)
		return nil

	case "enable-item", "disable-item":
		id, err := uuid.Parse(f.itemID)
		if err != nil {
			return fmt.Errorf("parse -item-id: %w", err)
		}
		if action == "enable-item" {
			err = cat.EnableItem(ctx, id)
		} else {
			err = cat.DisableItem(ctx, id)
		}
		if err != nil {
			return err
		}
		fmt.Printf("item %s: %s\n", id, action)
		return nil

	case "stats":
		stats, err := cat.GameStats(ctx, f.gameID)
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)\n", stats.GameID, domain.GameTitle(stats.GameID))
		fmt.Printf("  items: %d total, %d enabled\n", stats.TotalItems, stats.EnabledItems)
		fmt.Printf("  grants: %d total, %d in current cycles, %d distinct recipients\n",
			stats.TotalGrants, stats.CurrentCycleGrants, stats.DistinctRecipients)
		if stats.LastGrantedAt != nil {
			fmt.Printf("  last grant: %s\n", stats.LastGrantedAt.Format(time.RFC3339))
		}
		for _, top := range stats.TopItems {
			fmt.Printf("  top: %s  grants=%d  %s\n", top.ItemID, top.Grants, top.Title)
		}
		return nil

	default:
		return fmt.Errorf("unknown action %q", action)
	}
}

func printPolicy(pol *domain.GamePolicy) {
	fmt.Printf("%s: mode=%s track_grants=%v reset_on_exhaustion=%v\n",
		pol.GameID, pol.Mode, pol.TrackGrants, pol.ResetOnExhaustion)
}
