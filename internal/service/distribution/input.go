package distribution

import (
	"strings"
	"time"

	"github.com/mossfell/giftdist-backend/internal/domain"
)

// GrantInput holds the parameters of one grant request.
type GrantInput struct {
	GameID string
	// RecipientID may be empty only under broadcast mode.
	RecipientID string
	// Now is the selection instant; the zero value means the service clock.
	Now time.Time
	// RequestKey, when supplied on a tracked grant, makes a retried request
	// idempotent: a key already recorded for the pair replays the original
	// items and writes nothing.
	RequestKey string
	ClientIP   string
	UserAgent  string
}

// Validate checks all fields and collects all errors.
func (i GrantInput) Validate() error {
	var errs []domain.FieldError

	gameID := strings.TrimSpace(i.GameID)
	if gameID == "" {
		errs = append(errs, domain.FieldError{Field: "game_id", Message: "required"})
	}
	if len(gameID) > 16 {
		errs = append(errs, domain.FieldError{Field: "game_id", Message: "max 16 characters"})
	}

	if len(strings.TrimSpace(i.RecipientID)) > 64 {
		errs = append(errs, domain.FieldError{Field: "recipient_id", Message: "max 64 characters"})
	}

	if len(strings.TrimSpace(i.RequestKey)) > 128 {
		errs = append(errs, domain.FieldError{Field: "request_key", Message: "max 128 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
