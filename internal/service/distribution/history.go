package distribution

import (
	"context"
	"strings"

	"github.com/mossfell/giftdist-backend/internal/domain"
)

// RecipientHistory returns every ledger record for the pair, newest first,
// spanning all cycles.
func (s *Service) RecipientHistory(ctx context.Context, recipientID, gameID string) ([]domain.GrantRecord, error) {
	recipientID = strings.TrimSpace(recipientID)
	gameID = strings.TrimSpace(gameID)
	if recipientID == "" {
		return nil, domain.NewValidationError("recipient_id", "required")
	}
	if gameID == "" {
		return nil, domain.NewValidationError("game_id", "required")
	}

	records, err := s.grants.History(ctx, recipientID, gameID)
	if err != nil {
		return nil, &domain.UnavailableError{Op: "read history", Err: err}
	}
	return records, nil
}
