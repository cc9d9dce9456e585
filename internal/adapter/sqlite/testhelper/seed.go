package testhelper

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	sqlite "github.com/mossfell/giftdist-backend/internal/adapter/sqlite"
	"github.com/mossfell/giftdist-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedGiftItem creates an enabled gift item for gameID with priority 0 and
// no availability window. Returns the filled domain.GiftItem.
func SeedGiftItem(t *testing.T, db *sql.DB, gameID string) domain.GiftItem {
	t.Helper()

	suffix := uniqueSuffix()
	item := domain.GiftItem{
		GameID:      gameID,
		Filename:    "gift-" + suffix + ".myg",
		Title:       "Test Gift " + suffix,
		Description: "Seeded test gift " + suffix,
		EventType:   "item",
		Region:      "ALL",
		FileSize:    1024,
		Priority:    0,
		Enabled:     true,
	}
	return SeedGiftItemFull(t, db, item)
}

// SeedGiftItemFull inserts the given item as-is, filling ID and timestamps
// when zero. Use it when a test needs control over priority, enabled state,
// or the availability window.
func SeedGiftItemFull(t *testing.T, db *sql.DB, item domain.GiftItem) domain.GiftItem {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = now
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO gift_items (id, game_id, filename, title, description, event_type, region,
		                         file_size, priority, enabled, available_from, available_until,
		                         grant_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.GameID, item.Filename, item.Title, item.Description, item.EventType, item.Region,
		item.FileSize, item.Priority, item.Enabled,
		sqlite.ToNullMillis(item.AvailableFrom), sqlite.ToNullMillis(item.AvailableUntil),
		item.GrantCount, sqlite.ToMillis(item.CreatedAt), sqlite.ToMillis(item.UpdatedAt),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedGiftItemFull insert gift_item: %v", err)
	}

	return item
}

// SeedPolicy creates a game_policies row for gameID. Returns the filled domain.GamePolicy.
func SeedPolicy(t *testing.T, db *sql.DB, gameID string, mode domain.DistributionMode, trackGrants, resetOnExhaustion bool) domain.GamePolicy {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	policy := domain.GamePolicy{
		GameID:            gameID,
		Mode:              mode,
		TrackGrants:       trackGrants,
		ResetOnExhaustion: resetOnExhaustion,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO game_policies (game_id, mode, track_grants, reset_on_exhaustion, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		policy.GameID, string(policy.Mode), policy.TrackGrants, policy.ResetOnExhaustion,
		sqlite.ToMillis(policy.CreatedAt), sqlite.ToMillis(policy.UpdatedAt),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPolicy insert game_policy: %v", err)
	}

	return policy
}

// SeedGrant creates a grant_records row for the given recipient, game, and item
// at the given cycle. Returns the filled domain.GrantRecord.
func SeedGrant(t *testing.T, db *sql.DB, recipientID, gameID string, itemID uuid.UUID, cycle int) domain.GrantRecord {
	t.Helper()
	ctx := context.Background()

	rec := domain.GrantRecord{
		ID:          uuid.New(),
		RecipientID: recipientID,
		GameID:      gameID,
		ItemID:      itemID,
		Cycle:       cycle,
		GrantedAt:   time.Now().UTC().Truncate(time.Millisecond),
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO grant_records (id, recipient_id, game_id, item_id, cycle, request_key, client_ip, user_agent, granted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.RecipientID, rec.GameID, rec.ItemID, rec.Cycle,
		rec.RequestKey, rec.ClientIP, rec.UserAgent, sqlite.ToMillis(rec.GrantedAt),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedGrant insert grant_record: %v", err)
	}

	return rec
}

// SeedCycle upserts the grant_cycles counter for (recipientID, gameID).
func SeedCycle(t *testing.T, db *sql.DB, recipientID, gameID string, cycle int) {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	_, err := db.ExecContext(ctx,
		`INSERT INTO grant_cycles (recipient_id, game_id, cycle, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (recipient_id, game_id) DO UPDATE SET cycle = excluded.cycle, updated_at = excluded.updated_at`,
		recipientID, gameID, cycle, sqlite.ToMillis(now),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCycle upsert grant_cycle: %v", err)
	}
}
