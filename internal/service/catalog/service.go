// Package catalog implements the administrative surface over the gift
// catalog and the per-game distribution policies: item upserts, enable and
// disable flips, filtered listings, policy edits, and per-game grant
// statistics. The distribution engine only ever reads what this package
// writes; changes are visible to the next grant request.
package catalog

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mossfell/giftdist-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type itemRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.GiftItem, error)
	List(ctx context.Context, f domain.ItemFilter) ([]domain.GiftItem, int, error)
	CountByGame(ctx context.Context, gameID string) (total, enabled int, err error)
	Upsert(ctx context.Context, item *domain.GiftItem) (*domain.GiftItem, error)
	SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) error
}

type policyRepo interface {
	Get(ctx context.Context, gameID string) (*domain.GamePolicy, error)
	Upsert(ctx context.Context, p *domain.GamePolicy) (*domain.GamePolicy, error)
}

type ledgerRepo interface {
	Stats(ctx context.Context, gameID string) (domain.LedgerStats, error)
	TopItems(ctx context.Context, gameID string, limit int) ([]domain.ItemGrantCount, error)
}

// defaultStatsTopItems caps the grant leaderboard when no explicit limit is
// configured.
const defaultStatsTopItems = 10

// Service provides catalog and policy administration.
type Service struct {
	items         itemRepo
	policies      policyRepo
	ledger        ledgerRepo
	statsTopItems int
	log           *slog.Logger
}

// NewService creates a new catalog service. statsTopItems bounds the
// per-game leaderboard length; 0 applies the default.
func NewService(
	log *slog.Logger,
	items itemRepo,
	policies policyRepo,
	ledger ledgerRepo,
	statsTopItems int,
) *Service {
	if statsTopItems <= 0 {
		statsTopItems = defaultStatsTopItems
	}
	return &Service{
		items:         items,
		policies:      policies,
		ledger:        ledger,
		statsTopItems: statsTopItems,
		log:           log.With("service", "catalog"),
	}
}
