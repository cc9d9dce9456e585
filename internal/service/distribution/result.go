package distribution

import "github.com/mossfell/giftdist-backend/internal/domain"

// GrantResult is the outcome of one grant request.
//
// Two empty-item shapes are distinct and neither is an error:
// {Items: [], Exhausted: false} means no content is configured for the game,
// {Items: [], Exhausted: true} means the pool drained and no auto-reset ran.
type GrantResult struct {
	// Items are the granted gifts in catalog order (single item under
	// random mode, the tied top-priority set under priority mode, the
	// whole eligible set under broadcast).
	Items []domain.GiftItem
	// Exhausted reports that selection found the candidate pool drained.
	// It stays true when a reset re-run produced items afterwards.
	Exhausted bool
	// ResetPerformed reports that a cycle reset ran during this request.
	ResetPerformed bool
	// Replayed reports that a previously recorded request key short-circuited
	// the request: Items are the originally granted gifts, nothing was
	// written.
	Replayed bool
}
