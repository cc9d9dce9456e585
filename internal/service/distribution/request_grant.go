package distribution

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mossfell/giftdist-backend/internal/domain"
	"github.com/mossfell/giftdist-backend/internal/metrics"
)

// RequestGrant decides which gift items to hand out for one request, records
// the grants, and reports exhaustion and cycle resets. The read-history /
// select / record sequence runs as one atomic unit per (recipient, game):
// a keyed mutex serializes same-pair requests and all ledger writes for one
// grant share a single transaction.
func (s *Service) RequestGrant(ctx context.Context, input GrantInput) (*GrantResult, error) {
	input.GameID = strings.TrimSpace(input.GameID)
	input.RecipientID = strings.TrimSpace(input.RecipientID)
	input.RequestKey = strings.TrimSpace(input.RequestKey)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	policy, err := s.loadPolicy(ctx, input.GameID)
	if err != nil {
		return nil, err
	}
	if !policy.Mode.IsValid() {
		return nil, &domain.ConfigurationError{GameID: input.GameID, Mode: string(policy.Mode)}
	}
	if policy.Mode != domain.ModeBroadcast && input.RecipientID == "" {
		return nil, fmt.Errorf("game %s: %w", input.GameID, domain.ErrRecipientRequired)
	}

	started := time.Now()

	var result *GrantResult
	if policy.Mode == domain.ModeBroadcast {
		result, err = s.broadcastGrant(ctx, policy, now)
	} else {
		result, err = s.trackedGrant(ctx, input, policy, now)
	}

	s.observeGrant(policy, started, result, err)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "grant request served",
		slog.String("game_id", input.GameID),
		slog.String("recipient_id", input.RecipientID),
		slog.String("mode", string(policy.Mode)),
		slog.Int("items", len(result.Items)),
		slog.Bool("exhausted", result.Exhausted),
		slog.Bool("reset_performed", result.ResetPerformed),
		slog.Bool("replayed", result.Replayed),
	)

	return result, nil
}

// loadPolicy returns the stored policy or the lazy default. Absence is not
// an error and the default is never persisted here.
func (s *Service) loadPolicy(ctx context.Context, gameID string) (domain.GamePolicy, error) {
	pol, err := s.policies.Get(ctx, gameID)
	switch {
	case err == nil:
		return *pol, nil
	case errors.Is(err, domain.ErrNotFound):
		return domain.DefaultPolicy(gameID), nil
	default:
		return domain.GamePolicy{}, &domain.UnavailableError{Op: "load policy", Err: err}
	}
}

// broadcastGrant hands the whole eligible set to the caller. There is no
// recipient history to track: grant counts are bumped but no ledger facts
// are written, so no per-recipient lock is needed.
func (s *Service) broadcastGrant(ctx context.Context, policy domain.GamePolicy, now time.Time) (*GrantResult, error) {
	items, err := s.items.ListByGame(ctx, policy.GameID)
	if err != nil {
		return nil, &domain.UnavailableError{Op: "list catalog", Err: err}
	}

	eligible := eligibleItems(now, items)
	if len(eligible) == 0 {
		return &GrantResult{Items: []domain.GiftItem{}}, nil
	}

	if err := s.items.IncrementGrantCounts(ctx, itemIDs(eligible)); err != nil {
		return nil, &domain.UnavailableError{Op: "bump grant counts", Err: err}
	}

	return &GrantResult{Items: eligible}, nil
}

// trackedGrant runs the per-recipient selection for priority and random
// modes. Catalog and policy reads stay outside the critical section; the
// ledger reads and writes run inside it, in one transaction.
func (s *Service) trackedGrant(ctx context.Context, input GrantInput, policy domain.GamePolicy, now time.Time) (*GrantResult, error) {
	items, err := s.items.ListByGame(ctx, policy.GameID)
	if err != nil {
		return nil, &domain.UnavailableError{Op: "list catalog", Err: err}
	}
	eligible := eligibleItems(now, items)

	unlock := s.locks.Lock(input.RecipientID + "/" + policy.GameID)
	defer unlock()

	var result *GrantResult
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if policy.TrackGrants && input.RequestKey != "" {
			prior, err := s.grants.FindByRequestKey(txCtx, input.RecipientID, policy.GameID, input.RequestKey)
			if err != nil {
				return &domain.UnavailableError{Op: "find request key", Err: err}
			}
			if len(prior) > 0 {
				result = &GrantResult{Items: itemsForRecords(prior, items), Replayed: true}
				return nil
			}
		}

		if len(eligible) == 0 {
			result = &GrantResult{Items: []domain.GiftItem{}}
			return nil
		}

		cycle, err := s.grants.CurrentCycle(txCtx, input.RecipientID, policy.GameID)
		if err != nil {
			return &domain.UnavailableError{Op: "read cycle", Err: err}
		}

		var history map[uuid.UUID]bool
		if policy.TrackGrants {
			granted, err := s.grants.HistoryItemIDs(txCtx, input.RecipientID, policy.GameID, cycle)
			if err != nil {
				return &domain.UnavailableError{Op: "read history", Err: err}
			}
			history = make(map[uuid.UUID]bool, len(granted))
			for _, id := range granted {
				history[id] = true
			}
		}

		picked, err := s.pick(policy, eligible, history)
		if err != nil {
			return err
		}

		exhausted := picked.exhausted
		resetPerformed := false
		if picked.exhausted && policy.ResetOnExhaustion {
			cycle, err = s.grants.ResetCycle(txCtx, input.RecipientID, policy.GameID)
			if err != nil {
				return &domain.UnavailableError{Op: "reset cycle", Err: err}
			}
			resetPerformed = true

			// A single re-run against empty history. With a non-empty
			// eligible set it always yields candidates, so this cannot
			// recurse.
			picked, err = s.pick(policy, eligible, nil)
			if err != nil {
				return err
			}
		}

		if len(picked.chosen) > 0 {
			if err := s.recordGrants(txCtx, input, policy, cycle, now, picked.chosen); err != nil {
				return err
			}
		}

		result = &GrantResult{
			Items:          picked.chosen,
			Exhausted:      exhausted,
			ResetPerformed: resetPerformed,
		}
		return nil
	})
	if txErr != nil {
		if isDomainError(txErr) {
			return nil, txErr
		}
		return nil, &domain.UnavailableError{Op: "grant transaction", Err: txErr}
	}

	return result, nil
}

// recordGrants appends one ledger fact per chosen item and bumps the items'
// grant counts, all inside the caller's transaction.
func (s *Service) recordGrants(ctx context.Context, input GrantInput, policy domain.GamePolicy, cycle int, now time.Time, chosen []domain.GiftItem) error {
	var requestKey *string
	if policy.TrackGrants && input.RequestKey != "" {
		requestKey = &input.RequestKey
	}
	clientIP := optional(input.ClientIP)
	userAgent := optional(input.UserAgent)

	for _, item := range chosen {
		rec := &domain.GrantRecord{
			RecipientID: input.RecipientID,
			GameID:      policy.GameID,
			ItemID:      item.ID,
			Cycle:       cycle,
			RequestKey:  requestKey,
			ClientIP:    clientIP,
			UserAgent:   userAgent,
			GrantedAt:   now,
		}
		if _, err := s.grants.Record(ctx, rec); err != nil {
			return &domain.UnavailableError{Op: "record grant", Err: err}
		}
	}

	if err := s.items.IncrementGrantCounts(ctx, itemIDs(chosen)); err != nil {
		return &domain.UnavailableError{Op: "bump grant counts", Err: err}
	}
	return nil
}

func (s *Service) observeGrant(policy domain.GamePolicy, started time.Time, res *GrantResult, err error) {
	mode := string(policy.Mode)
	metrics.GrantDuration.WithLabelValues(mode).Observe(time.Since(started).Seconds())

	outcome := metrics.OutcomeError
	switch {
	case err != nil:
	case res.Replayed:
		outcome = metrics.OutcomeReplayed
	case res.Exhausted && len(res.Items) == 0:
		outcome = metrics.OutcomeExhausted
	case len(res.Items) == 0:
		outcome = metrics.OutcomeEmpty
	default:
		outcome = metrics.OutcomeGranted
	}
	metrics.GrantRequestsTotal.WithLabelValues(policy.GameID, mode, outcome).Inc()

	if err != nil {
		return
	}
	if len(res.Items) > 0 {
		metrics.GrantedItemsTotal.WithLabelValues(policy.GameID, mode).Add(float64(len(res.Items)))
	}
	if res.Exhausted {
		metrics.ExhaustionsTotal.WithLabelValues(policy.GameID).Inc()
	}
	if res.ResetPerformed {
		metrics.CycleResetsTotal.WithLabelValues(policy.GameID).Inc()
	}
}

// itemsForRecords resolves ledger records back to catalog items, preserving
// the original grant order. Records whose item vanished from the catalog
// are skipped.
func itemsForRecords(records []domain.GrantRecord, catalog []domain.GiftItem) []domain.GiftItem {
	byID := make(map[uuid.UUID]domain.GiftItem, len(catalog))
	for _, item := range catalog {
		byID[item.ID] = item
	}

	items := make([]domain.GiftItem, 0, len(records))
	for _, rec := range records {
		if item, ok := byID[rec.ItemID]; ok {
			items = append(items, item)
		}
	}
	return items
}

func itemIDs(items []domain.GiftItem) []uuid.UUID {
	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// isDomainError reports whether err already carries domain semantics and
// must pass through without another UnavailableError wrap.
func isDomainError(err error) bool {
	return errors.Is(err, domain.ErrUnavailable) ||
		errors.Is(err, domain.ErrConfiguration) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrAlreadyExists) ||
		errors.Is(err, domain.ErrRecipientRequired)
}
