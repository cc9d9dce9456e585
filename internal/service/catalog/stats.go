package catalog

import (
	"context"
	"strings"

	"github.com/mossfell/giftdist-backend/internal/domain"
)

// GameStats assembles the per-game aggregates from the catalog and the
// ledger. The results are computed fresh on every call; nothing is cached.
func (s *Service) GameStats(ctx context.Context, gameID string) (*domain.GameStats, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, domain.NewValidationError("game_id", "required")
	}

	total, enabled, err := s.items.CountByGame(ctx, gameID)
	if err != nil {
		return nil, storageErr("count items", err)
	}

	ledger, err := s.ledger.Stats(ctx, gameID)
	if err != nil {
		return nil, storageErr("ledger stats", err)
	}

	top, err := s.ledger.TopItems(ctx, gameID, s.statsTopItems)
	if err != nil {
		return nil, storageErr("top items", err)
	}

	return &domain.GameStats{
		GameID:             gameID,
		TotalItems:         total,
		EnabledItems:       enabled,
		TotalGrants:        ledger.TotalGrants,
		CurrentCycleGrants: ledger.CurrentCycleGrants,
		DistinctRecipients: ledger.DistinctRecipients,
		TopItems:           top,
		LastGrantedAt:      ledger.LastGrantedAt,
	}, nil
}
