package domain

// DistributionMode selects how eligible gifts are handed out for a game.
type DistributionMode string

const (
	// ModeRandom grants one item drawn uniformly from the candidates.
	ModeRandom DistributionMode = "random"
	// ModePriority grants the highest-priority candidates, ties included.
	ModePriority DistributionMode = "priority"
	// ModeBroadcast grants every eligible item, ignoring grant history.
	ModeBroadcast DistributionMode = "broadcast"
)

func (m DistributionMode) String() string { return string(m) }

func (m DistributionMode) IsValid() bool {
	switch m {
	case ModeRandom, ModePriority, ModeBroadcast:
		return true
	}
	return false
}
