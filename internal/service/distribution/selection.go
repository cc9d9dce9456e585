package distribution

import (
	"github.com/google/uuid"

	"github.com/mossfell/giftdist-backend/internal/domain"
)

// pickResult is the outcome of one selection run.
type pickResult struct {
	chosen []domain.GiftItem
	// exhausted means the candidate pool is drained: eligible items exist
	// but every one of them is ruled out by history. An empty eligible set
	// is NOT exhaustion.
	exhausted bool
}

// pick applies the policy to the eligible set. history holds the item ids
// already granted to the recipient in the current cycle; broadcast mode and
// untracked policies ignore it.
func (s *Service) pick(policy domain.GamePolicy, eligible []domain.GiftItem, history map[uuid.UUID]bool) (pickResult, error) {
	if len(eligible) == 0 {
		return pickResult{chosen: []domain.GiftItem{}}, nil
	}

	switch policy.Mode {
	case domain.ModeBroadcast:
		return pickResult{chosen: eligible}, nil

	case domain.ModePriority:
		candidates := withoutHistory(policy, eligible, history)
		if len(candidates) == 0 {
			return pickResult{chosen: []domain.GiftItem{}, exhausted: true}, nil
		}
		return pickResult{chosen: topPriority(candidates)}, nil

	case domain.ModeRandom:
		candidates := withoutHistory(policy, eligible, history)
		if len(candidates) == 0 {
			return pickResult{chosen: []domain.GiftItem{}, exhausted: true}, nil
		}
		chosen := candidates[s.randIntn(len(candidates))]
		return pickResult{chosen: []domain.GiftItem{chosen}}, nil

	default:
		return pickResult{}, &domain.ConfigurationError{GameID: policy.GameID, Mode: string(policy.Mode)}
	}
}

// withoutHistory filters out already-granted items when the policy tracks
// grants; otherwise the eligible set passes through unchanged.
func withoutHistory(policy domain.GamePolicy, eligible []domain.GiftItem, history map[uuid.UUID]bool) []domain.GiftItem {
	if !policy.TrackGrants || len(history) == 0 {
		return eligible
	}

	candidates := make([]domain.GiftItem, 0, len(eligible))
	for _, item := range eligible {
		if !history[item.ID] {
			candidates = append(candidates, item)
		}
	}
	return candidates
}

// topPriority returns every candidate sharing the single highest priority.
// Ties are exposed, never silently broken.
func topPriority(candidates []domain.GiftItem) []domain.GiftItem {
	top := candidates[0].Priority
	for _, c := range candidates[1:] {
		if c.Priority > top {
			top = c.Priority
		}
	}

	chosen := make([]domain.GiftItem, 0, len(candidates))
	for _, c := range candidates {
		if c.Priority == top {
			chosen = append(chosen, c)
		}
	}
	return chosen
}
