package domain

import (
	"time"

	"github.com/google/uuid"
)

// GiftItem is one distributable resource tied to a game. The engine never
// mutates a stored item except its GrantCount, which is observational and
// never consulted by selection.
type GiftItem struct {
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
	// A nil bound is open-ended on that side; both bounds are inclusive.
	AvailableFrom  *time.Time
	AvailableUntil *time.Time
	GrantCount     int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AvailableAt returns true if now falls inside the item's availability window.
//   - No window means always available.
//   - AvailableUntil = T is still available at exactly T.
func (g *GiftItem) AvailableAt(now time.Time) bool {
	if g.AvailableFrom != nil && now.Before(*g.AvailableFrom) {
		return false
	}
	if g.AvailableUntil != nil && now.After(*g.AvailableUntil) {
		return false
	}
	return true
}

// WindowValid reports whether AvailableFrom ≤ AvailableUntil when both are
// set. Violating configurations are rejected at write time, not at read time.
func (g *GiftItem) WindowValid() bool {
	if g.AvailableFrom == nil || g.AvailableUntil == nil {
		return true
	}
	return !g.AvailableFrom.After(*g.AvailableUntil)
}

// ItemFilter narrows catalog listings. The zero value of each field means
// "no constraint on this dimension"; Limit = 0 means no pagination.
type ItemFilter struct {
	GameID      string
	EnabledOnly bool
	Region      string
	EventType   string
	// AvailableAt restricts to items whose window contains the instant.
	AvailableAt *time.Time
	Limit       int
	Offset      int
}
