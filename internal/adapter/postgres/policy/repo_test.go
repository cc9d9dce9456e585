package policy_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mossfell/giftdist-backend/internal/adapter/postgres/policy"
	"github.com/mossfell/giftdist-backend/internal/adapter/postgres/testhelper"
	"github.com/mossfell/giftdist-backend/internal/domain"
)

func TestRepo_Get(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := policy.New(pool)
	ctx := context.Background()

	gameID := testhelper.UniqueGameID(t)
	testhelper.SeedPolicy(t, pool, gameID, domain.ModePriority, false, true)

	got, err := repo.Get(ctx, gameID)
	if err != nil {
		t.Fatalf("Get: unexpected error: %v", err)
	}

	if got.Mode != domain.ModePriority {
		t.Errorf("Mode mismatch: got %s, want %s", got.Mode, domain.ModePriority)
	}
	if got.TrackGrants {
		t.Error("TrackGrants should be false")
	}
	if !got.ResetOnExhaustion {
		t.Error("ResetOnExhaustion should be true")
	}
}

func TestRepo_Get_NotFound(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := policy.New(pool)
	ctx := context.Background()

	_, err := repo.Get(ctx, testhelper.UniqueGameID(t))
	if err == nil {
		t.Fatal("expected error for missing policy, got nil")
	}
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestRepo_Upsert_InsertThenUpdate(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := policy.New(pool)
	ctx := context.Background()

	gameID := testhelper.UniqueGameID(t)

	first, err := repo.Upsert(ctx, &domain.GamePolicy{
		GameID: gameID, Mode: domain.ModeRandom, TrackGrants: true, ResetOnExhaustion: true,
	})
	if err != nil {
		t.Fatalf("Upsert insert: unexpected error: %v", err)
	}
	if first.Mode != domain.ModeRandom {
		t.Errorf("Mode mismatch: got %s, want %s", first.Mode, domain.ModeRandom)
	}

	second, err := repo.Upsert(ctx, &domain.GamePolicy{
		GameID: gameID, Mode: domain.ModeBroadcast, TrackGrants: false, ResetOnExhaustion: false,
	})
	if err != nil {
		t.Fatalf("Upsert update: unexpected error: %v", err)
	}

	if second.Mode != domain.ModeBroadcast {
		t.Errorf("Mode mismatch after update: got %s, want %s", second.Mode, domain.ModeBroadcast)
	}
	if second.TrackGrants {
		t.Error("TrackGrants should be false after update")
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("CreatedAt should be preserved: got %v, want %v", second.CreatedAt, first.CreatedAt)
	}
}

// Unknown modes are stored verbatim; the distribution engine rejects them
// at grant time, not the storage layer.
func TestRepo_Upsert_UnknownModeStoredVerbatim(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := policy.New(pool)
	ctx := context.Background()

	gameID := testhelper.UniqueGameID(t)

	_, err := repo.Upsert(ctx, &domain.GamePolicy{
		GameID: gameID, Mode: domain.DistributionMode("weighted"), TrackGrants: true,
	})
	if err != nil {
		t.Fatalf("Upsert: unexpected error: %v", err)
	}

	got, err := repo.Get(ctx, gameID)
	if err != nil {
		t.Fatalf("Get: unexpected error: %v", err)
	}
	if got.Mode != domain.DistributionMode("weighted") {
		t.Errorf("Mode mismatch: got %s, want weighted", got.Mode)
	}
}
