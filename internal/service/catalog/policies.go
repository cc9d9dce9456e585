package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mossfell/giftdist-backend/internal/domain"
)

// GetPolicy returns the stored policy for a game, or the lazy default when
// none exists. Absence is not an error and the default is not persisted.
func (s *Service) GetPolicy(ctx context.Context, gameID string) (*domain.GamePolicy, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, domain.NewValidationError("game_id", "required")
	}

	pol, err := s.policies.Get(ctx, gameID)
	switch {
	case err == nil:
		return pol, nil
	case errors.Is(err, domain.ErrNotFound):
		def := domain.DefaultPolicy(gameID)
		return &def, nil
	default:
		return nil, storageErr("get policy", err)
	}
}

// SetPolicy upserts a game's distribution policy. The only validation beyond
// the game id is the mode being one of the known values; anything else is a
// ConfigurationError and nothing is written.
func (s *Service) SetPolicy(ctx context.Context, input SetPolicyInput) (*domain.GamePolicy, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	gameID := strings.TrimSpace(input.GameID)
	if !input.Mode.IsValid() {
		return nil, &domain.ConfigurationError{GameID: gameID, Mode: string(input.Mode)}
	}

	stored, err := s.policies.Upsert(ctx, &domain.GamePolicy{
		GameID:            gameID,
		Mode:              input.Mode,
		TrackGrants:       input.TrackGrants,
		ResetOnExhaustion: input.ResetOnExhaustion,
	})
	if err != nil {
		return nil, storageErr("set policy", err)
	}

	s.log.InfoContext(ctx, "policy updated",
		slog.String("game_id", stored.GameID),
		slog.String("mode", string(stored.Mode)),
		slog.Bool("track_grants", stored.TrackGrants),
		slog.Bool("reset_on_exhaustion", stored.ResetOnExhaustion),
	)

	return stored, nil
}
