package domain

import (
	"time"

	"github.com/google/uuid"
)

// GrantRecord is one append-only fact in the dedup ledger: item X went to
// recipient R for game G during cycle C. Records are never updated; a cycle
// reset bumps the pair's counter instead of deleting history.
type GrantRecord struct {
	ID          uuid.UUID
	RecipientID string
	GameID      string
	ItemID      uuid.UUID
	Cycle       int
	// RequestKey, when present, makes a retried grant request replayable.
	RequestKey *string
	ClientIP   *string
	UserAgent  *string
	GrantedAt  time.Time
}

// ItemGrantCount is one row of a per-game grant leaderboard.
type ItemGrantCount struct {
	ItemID uuid.UUID
	Title  string
	Grants int64
}

// LedgerStats holds the per-game ledger aggregates a storage adapter can
// compute in a single query.
type LedgerStats struct {
	TotalGrants        int64
	CurrentCycleGrants int64
	DistinctRecipients int64
	LastGrantedAt      *time.Time
}

// GameStats aggregates ledger and catalog counters for one game.
// CurrentCycleGrants counts only records tagged with their pair's current
// cycle; TotalGrants spans all cycles.
type GameStats struct {
	GameID             string
	TotalItems         int
	EnabledItems       int
	TotalGrants        int64
	CurrentCycleGrants int64
	DistinctRecipients int64
	TopItems           []ItemGrantCount
	LastGrantedAt      *time.Time
}
