//go:build e2e

package e2e_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mossfell/giftdist-backend/internal/adapter/postgres/testhelper"
	"github.com/mossfell/giftdist-backend/internal/domain"
	"github.com/mossfell/giftdist-backend/internal/service/catalog"
	"github.com/mossfell/giftdist-backend/internal/service/distribution"
)

// TestE2E_PriorityFlow walks a recipient through a two-item priority
// catalog: highest priority first, then the runner-up, then an exhaustion
// reset that starts the rotation over.
func TestE2E_PriorityFlow(t *testing.T) {
	stack := setupStack(t)
	ctx := context.Background()
	gameID := testhelper.UniqueGameID(t)

	_, err := stack.Catalog.SetPolicy(ctx, catalog.SetPolicyInput{
		GameID:            gameID,
		Mode:              domain.ModePriority,
		TrackGrants:       true,
		ResetOnExhaustion: true,
	})
	require.NoError(t, err)

	high, err := stack.Catalog.UpsertItem(ctx, catalog.UpsertItemInput{
		GameID:   gameID,
		Filename: "secret_key.myg",
		Title:    "Secret Key",
		Priority: 10,
		Enabled:  true,
	})
	require.NoError(t, err)

	low, err := stack.Catalog.UpsertItem(ctx, catalog.UpsertItemInput{
		GameID:   gameID,
		Filename: "member_card.myg",
		Title:    "Member Card",
		Priority: 1,
		Enabled:  true,
	})
	require.NoError(t, err)

	input := distribution.GrantInput{GameID: gameID, RecipientID: "00-1B-EA-4A-00-01"}

	res, err := stack.Dist.RequestGrant(ctx, input)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, high.ID, res.Items[0].ID)

	res, err = stack.Dist.RequestGrant(ctx, input)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, low.ID, res.Items[0].ID)

	// Pool drained: the cycle resets and rotation restarts at the top.
	res, err = stack.Dist.RequestGrant(ctx, input)
	require.NoError(t, err)
	assert.True(t, res.Exhausted)
	assert.True(t, res.ResetPerformed)
	require.Len(t, res.Items, 1)
	assert.Equal(t, high.ID, res.Items[0].ID)

	// A different recipient starts fresh, unaffected by the first one.
	other := distribution.GrantInput{GameID: gameID, RecipientID: "00-1B-EA-4A-00-02"}
	res, err = stack.Dist.RequestGrant(ctx, other)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, high.ID, res.Items[0].ID)
	assert.False(t, res.ResetPerformed)
}

// TestE2E_BroadcastFlow verifies broadcast mode hands out the whole
// eligible set without writing dedup history.
func TestE2E_BroadcastFlow(t *testing.T) {
	stack := setupStack(t)
	ctx := context.Background()
	gameID := testhelper.UniqueGameID(t)

	_, err := stack.Catalog.SetPolicy(ctx, catalog.SetPolicyInput{
		GameID: gameID,
		Mode:   domain.ModeBroadcast,
	})
	require.NoError(t, err)

	for _, filename := range []string{"gift_a.myg", "gift_b.myg", "gift_c.myg"} {
		_, err := stack.Catalog.UpsertItem(ctx, catalog.UpsertItemInput{
			GameID:   gameID,
			Filename: filename,
			Enabled:  true,
		})
		require.NoError(t, err)
	}

	// No recipient id needed under broadcast, and repeated requests keep
	// returning the full set.
	for range 2 {
		res, err := stack.Dist.RequestGrant(ctx, distribution.GrantInput{GameID: gameID})
		require.NoError(t, err)
		assert.Len(t, res.Items, 3)
		assert.False(t, res.Exhausted)
	}

	stats, err := stack.Catalog.GameStats(ctx, gameID)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalGrants, "broadcast must not write ledger facts")
}

// TestE2E_RequestKeyReplay verifies that retrying a grant with the same
// request key replays the original items instead of granting twice.
func TestE2E_RequestKeyReplay(t *testing.T) {
	stack := setupStack(t)
	ctx := context.Background()
	gameID := testhelper.UniqueGameID(t)

	item, err := stack.Catalog.UpsertItem(ctx, catalog.UpsertItemInput{
		GameID:   gameID,
		Filename: "oaks_letter.myg",
		Enabled:  true,
	})
	require.NoError(t, err)

	input := distribution.GrantInput{
		GameID:      gameID,
		RecipientID: "00-1B-EA-4A-00-03",
		RequestKey:  "retry-123",
	}

	first, err := stack.Dist.RequestGrant(ctx, input)
	require.NoError(t, err)
	require.Len(t, first.Items, 1)
	assert.False(t, first.Replayed)

	second, err := stack.Dist.RequestGrant(ctx, input)
	require.NoError(t, err)
	assert.True(t, second.Replayed)
	require.Len(t, second.Items, 1)
	assert.Equal(t, item.ID, second.Items[0].ID)

	history, err := stack.Dist.RecipientHistory(ctx, input.RecipientID, gameID)
	require.NoError(t, err)
	assert.Len(t, history, 1, "replay must not add ledger records")
}

// TestE2E_AvailabilityWindow verifies that off-window and disabled items
// never reach a recipient.
func TestE2E_AvailabilityWindow(t *testing.T) {
	stack := setupStack(t)
	ctx := context.Background()
	gameID := testhelper.UniqueGameID(t)

	past := time.Now().UTC().Add(-48 * time.Hour)
	expiredUntil := time.Now().UTC().Add(-24 * time.Hour)

	_, err := stack.Catalog.UpsertItem(ctx, catalog.UpsertItemInput{
		GameID:         gameID,
		Filename:       "expired.myg",
		Enabled:        true,
		AvailableFrom:  &past,
		AvailableUntil: &expiredUntil,
	})
	require.NoError(t, err)

	disabled, err := stack.Catalog.UpsertItem(ctx, catalog.UpsertItemInput{
		GameID:   gameID,
		Filename: "disabled.myg",
		Enabled:  true,
	})
	require.NoError(t, err)
	require.NoError(t, stack.Catalog.DisableItem(ctx, disabled.ID))

	live, err := stack.Catalog.UpsertItem(ctx, catalog.UpsertItemInput{
		GameID:   gameID,
		Filename: "live.myg",
		Enabled:  true,
	})
	require.NoError(t, err)

	res, err := stack.Dist.RequestGrant(ctx, distribution.GrantInput{
		GameID:      gameID,
		RecipientID: "00-1B-EA-4A-00-04",
	})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, live.ID, res.Items[0].ID)
}

// TestE2E_LedgerCleanup verifies that purging completed cycles leaves the
// current cycle's dedup history intact.
func TestE2E_LedgerCleanup(t *testing.T) {
	stack := setupStack(t)
	ctx := context.Background()
	gameID := testhelper.UniqueGameID(t)
	recipient := "00-1B-EA-4A-00-05"

	item, err := stack.Catalog.UpsertItem(ctx, catalog.UpsertItemInput{
		GameID:   gameID,
		Filename: "azure_flute.myg",
		Enabled:  true,
	})
	require.NoError(t, err)

	// Cycle 0 record, then a reset moves the pair to cycle 1.
	testhelper.SeedGrant(t, stack.Pool, recipient, gameID, item.ID, 0)
	testhelper.SeedCycle(t, stack.Pool, recipient, gameID, 1)
	testhelper.SeedGrant(t, stack.Pool, recipient, gameID, item.ID, 1)

	cutoff := time.Now().UTC().Add(time.Hour)

	counted, err := stack.Dist.CleanupLedger(ctx, cutoff, true)
	require.NoError(t, err)
	assert.EqualValues(t, 1, counted, "only the completed cycle is purgeable")

	purged, err := stack.Dist.CleanupLedger(ctx, cutoff, false)
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)

	history, err := stack.Dist.RecipientHistory(ctx, recipient, gameID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 1, history[0].Cycle, "current-cycle history must survive")
}
