// Package policy implements the GamePolicy repository using PostgreSQL.
package policy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/mossfell/giftdist-backend/internal/adapter/postgres"
	"github.com/mossfell/giftdist-backend/internal/adapter/postgres/policy/sqlc"
	"github.com/mossfell/giftdist-backend/internal/domain"
)

// Repo provides game policy persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new game policy repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Get returns the stored policy for a game.
// Returns domain.ErrNotFound when no row exists; the caller decides whether
// absence means "use the default policy".
func (r *Repo) Get(ctx context.Context, gameID string) (*domain.GamePolicy, error) {
	q := sqlc.New(postgres.QuerierFromCtx(ctx, r.pool))

	row, err := q.GetGamePolicy(ctx, gameID)
	if err != nil {
		return nil, mapError(err, "game_policy", gameID)
	}

	p := toDomainPolicy(row)
	return &p, nil
}

// Upsert inserts or replaces the policy for a game. The stored mode is
// written verbatim; unknown modes are surfaced later as configuration
// errors, not rejected here.
func (r *Repo) Upsert(ctx context.Context, p *domain.GamePolicy) (*domain.GamePolicy, error) {
	q := sqlc.New(postgres.QuerierFromCtx(ctx, r.pool))

	now := time.Now().UTC().Truncate(time.Microsecond)
	row, err := q.UpsertGamePolicy(ctx, sqlc.UpsertGamePolicyParams{
		GameID:            p.GameID,
		Mode:              string(p.Mode),
		TrackGrants:       p.TrackGrants,
		ResetOnExhaustion: p.ResetOnExhaustion,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	if err != nil {
		return nil, mapError(err, "game_policy", p.GameID)
	}

	stored := toDomainPolicy(row)
	return &stored, nil
}

// toDomainPolicy converts a sqlc.GamePolicy row into a domain.GamePolicy.
func toDomainPolicy(row sqlc.GamePolicy) domain.GamePolicy {
	return domain.GamePolicy{
		GameID:            row.GameID,
		Mode:              domain.DistributionMode(row.Mode),
		TrackGrants:       row.TrackGrants,
		ResetOnExhaustion: row.ResetOnExhaustion,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, entity, key string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, key, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, key, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, key, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, key, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, key, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, key, err)
}
