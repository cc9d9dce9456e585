package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mossfell/giftdist-backend/internal/domain"
)

// UpsertItem creates a catalog item or updates the existing one matched by
// (game id, filename). The availability window invariant is enforced here,
// at write time; reads never re-validate it.
func (s *Service) UpsertItem(ctx context.Context, input UpsertItemInput) (*domain.GiftItem, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	gameID := strings.TrimSpace(input.GameID)
	if !domain.KnownGame(gameID) {
		s.log.WarnContext(ctx, "upserting item for unregistered game",
			slog.String("game_id", gameID),
		)
	}

	item := &domain.GiftItem{
		ID:             input.ID,
		GameID:         gameID,
		Filename:       strings.TrimSpace(input.Filename),
		Title:          strings.TrimSpace(input.Title),
		Description:    strings.TrimSpace(input.Description),
		EventType:      strings.TrimSpace(input.EventType),
		Region:         strings.ToUpper(strings.TrimSpace(input.Region)),
		FileSize:       input.FileSize,
		Priority:       input.Priority,
		Enabled:        input.Enabled,
		AvailableFrom:  input.AvailableFrom,
		AvailableUntil: input.AvailableUntil,
	}

	stored, err := s.items.Upsert(ctx, item)
	if err != nil {
		return nil, storageErr("upsert item", err)
	}

	s.log.InfoContext(ctx, "item upserted",
		slog.String("item_id", stored.ID.String()),
		slog.String("game_id", stored.GameID),
		slog.String("filename", stored.Filename),
	)

	return stored, nil
}

// GetItem returns one catalog item by id.
func (s *Service) GetItem(ctx context.Context, id uuid.UUID) (*domain.GiftItem, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr("get item", err)
	}
	return item, nil
}

// ListItems returns items matching the filter in catalog order (priority
// descending, id ascending) plus the unpaginated total.
func (s *Service) ListItems(ctx context.Context, f domain.ItemFilter) ([]domain.GiftItem, int, error) {
	if f.Limit < 0 {
		return nil, 0, domain.NewValidationError("limit", "must be >= 0")
	}
	if f.Offset < 0 {
		return nil, 0, domain.NewValidationError("offset", "must be >= 0")
	}

	items, total, err := s.items.List(ctx, f)
	if err != nil {
		return nil, 0, storageErr("list items", err)
	}
	return items, total, nil
}

// EnableItem puts an item back into distribution.
func (s *Service) EnableItem(ctx context.Context, id uuid.UUID) error {
	return s.setEnabled(ctx, id, true)
}

// DisableItem withdraws an item from distribution without deleting it.
// Grant history referencing the item stays intact.
func (s *Service) DisableItem(ctx context.Context, id uuid.UUID) error {
	return s.setEnabled(ctx, id, false)
}

func (s *Service) setEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	if err := s.items.SetEnabled(ctx, id, enabled); err != nil {
		return storageErr("set item enabled", err)
	}

	s.log.InfoContext(ctx, "item enabled flag changed",
		slog.String("item_id", id.String()),
		slog.Bool("enabled", enabled),
	)
	return nil
}

// storageErr passes domain sentinels through and wraps everything else as
// an UnavailableError, matching the engine's error taxonomy.
func storageErr(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrAlreadyExists) ||
		errors.Is(err, domain.ErrValidation) {
		return err
	}
	return &domain.UnavailableError{Op: op, Err: err}
}
