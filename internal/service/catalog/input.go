package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mossfell/giftdist-backend/internal/domain"
)

// UpsertItemInput holds the parameters for creating or updating a catalog
// item. Items are matched by (GameID, Filename); ID is optional and only
// used to force an update of a specific row.
type UpsertItemInput struct {
	ID          uuid.UUID
	GameID      string
	Filename    string
	Title       string
	Description string
	EventType   string
	Region      string
	FileSize    int64
	Priority    int
	Enabled     bool
	// AvailableFrom/AvailableUntil bound the availability window.
	// Nil leaves that side open-ended.
	AvailableFrom  *time.Time
	AvailableUntil *time.Time
}

// Validate checks all fields and collects all errors.
func (i UpsertItemInput) Validate() error {
	var errs []domain.FieldError

	gameID := strings.TrimSpace(i.GameID)
	if gameID == "" {
		errs = append(errs, domain.FieldError{Field: "game_id", Message: "required"})
	}
	if len(gameID) > 16 {
		errs = append(errs, domain.FieldError{Field: "game_id", Message: "max 16 characters"})
	}

	filename := strings.TrimSpace(i.Filename)
	if filename == "" {
		errs = append(errs, domain.FieldError{Field: "filename", Message: "required"})
	}
	if len(filename) > 255 {
		errs = append(errs, domain.FieldError{Field: "filename", Message: "max 255 characters"})
	}
	if strings.ContainsAny(filename, "/\\") {
		errs = append(errs, domain.FieldError{Field: "filename", Message: "must not contain path separators"})
	}

	if len(i.Title) > 255 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 255 characters"})
	}
	if len(i.Region) > 8 {
		errs = append(errs, domain.FieldError{Field: "region", Message: "max 8 characters"})
	}
	if i.FileSize < 0 {
		errs = append(errs, domain.FieldError{Field: "file_size", Message: "must be >= 0"})
	}

	// The window invariant holds at write time so reads never have to
	// re-check it.
	if i.AvailableFrom != nil && i.AvailableUntil != nil && i.AvailableFrom.After(*i.AvailableUntil) {
		errs = append(errs, domain.FieldError{Field: "available_from", Message: "must not be after available_until"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SetPolicyInput holds the parameters for upserting a game's policy.
type SetPolicyInput struct {
	GameID            string
	Mode              domain.DistributionMode
	TrackGrants       bool
	ResetOnExhaustion bool
}

// Validate checks the game id; the mode is checked separately so an unknown
// mode surfaces as a ConfigurationError rather than a ValidationError.
func (i SetPolicyInput) Validate() error {
	var errs []domain.FieldError

	gameID := strings.TrimSpace(i.GameID)
	if gameID == "" {
		errs = append(errs, domain.FieldError{Field: "game_id", Message: "required"})
	}
	if len(gameID) > 16 {
		errs = append(errs, domain.FieldError{Field: "game_id", Message: "max 16 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
