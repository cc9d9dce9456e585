package domain

import "time"

// GamePolicy is the per-game rule set governing how items are chosen.
// At most one policy exists per GameID.
type GamePolicy struct {
	GameID            string
	Mode              DistributionMode
	TrackGrants       bool
	ResetOnExhaustion bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DefaultPolicy is the lazily-applied policy for games with no stored row.
// A missing policy is not an error and the default is not persisted by reads.
func DefaultPolicy(gameID string) GamePolicy {
	return GamePolicy{
		GameID:            gameID,
		Mode:              ModeRandom,
		TrackGrants:       true,
		ResetOnExhaustion: true,
	}
}
