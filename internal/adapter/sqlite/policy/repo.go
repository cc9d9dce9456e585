// Package policy implements the GamePolicy repository on the embedded
// SQLite store.
package policy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	sqlite "github.com/mossfell/giftdist-backend/internal/adapter/sqlite"
	"github.com/mossfell/giftdist-backend/internal/domain"
)

// Repo provides game policy persistence backed by SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a new game policy repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

const policyColumns = `game_id, mode, track_grants, reset_on_exhaustion, created_at, updated_at`

const getSQL = `
SELECT ` + policyColumns + ` FROM game_policies WHERE game_id = ?`

const upsertSQL = `
INSERT INTO game_policies (game_id, mode, track_grants, reset_on_exhaustion, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (game_id) DO UPDATE SET
    mode                = excluded.mode,
    track_grants        = excluded.track_grants,
    reset_on_exhaustion = excluded.reset_on_exhaustion,
    updated_at          = excluded.updated_at
RETURNING ` + policyColumns

// Get returns the stored policy for a game.
// Returns domain.ErrNotFound when no row exists; the caller decides whether
// absence means "use the default policy".
func (r *Repo) Get(ctx context.Context, gameID string) (*domain.GamePolicy, error) {
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	p, err := scanPolicy(querier.QueryRowContext(ctx, getSQL, gameID))
	if err != nil {
		return nil, mapError(err, "game_policy", gameID)
	}

	return &p, nil
}

// Upsert inserts or replaces the policy for a game. The stored mode is
// written verbatim; unknown modes are surfaced later as configuration
// errors, not rejected here.
func (r *Repo) Upsert(ctx context.Context, p *domain.GamePolicy) (*domain.GamePolicy, error) {
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	now := time.Now().UTC().Truncate(time.Millisecond)
	stored, err := scanPolicy(querier.QueryRowContext(ctx, upsertSQL,
		p.GameID,
		string(p.Mode),
		p.TrackGrants,
		p.ResetOnExhaustion,
		sqlite.ToMillis(now),
		sqlite.ToMillis(now),
	))
	if err != nil {
		return nil, mapError(err, "game_policy", p.GameID)
	}

	return &stored, nil
}

// scanPolicy scans a single game policy row.
func scanPolicy(row interface{ Scan(dest ...any) error }) (domain.GamePolicy, error) {
	var (
		p         domain.GamePolicy
		mode      string
		createdAt int64
		updatedAt int64
	)

	err := row.Scan(&p.GameID, &mode, &p.TrackGrants, &p.ResetOnExhaustion, &createdAt, &updatedAt)
	if err != nil {
		return domain.GamePolicy{}, err
	}

	p.Mode = domain.DistributionMode(mode)
	p.CreatedAt = sqlite.FromMillis(createdAt)
	p.UpdatedAt = sqlite.FromMillis(updatedAt)
	return p, nil
}

// mapError converts database/sql and SQLite driver errors into domain errors.
func mapError(err error, entity, key string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, key, err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, key, domain.ErrNotFound)
	}

	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%s %s: %w", entity, key, domain.ErrAlreadyExists)
		case sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY:
			return fmt.Errorf("%s %s: %w", entity, key, domain.ErrNotFound)
		case sqlite3lib.SQLITE_CONSTRAINT_CHECK:
			return fmt.Errorf("%s %s: %w", entity, key, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, key, err)
}
