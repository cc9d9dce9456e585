// Package grant implements the distribution ledger repository using
// PostgreSQL. All queries use raw SQL (no sqlc): most of them correlate
// grant_records with the per-pair grant_cycles counter, which sqlc's flat
// query model expresses poorly.
package grant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/mossfell/giftdist-backend/internal/adapter/postgres"
	"github.com/mossfell/giftdist-backend/internal/domain"
)

// Repo provides grant ledger persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new grant ledger repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const recordColumns = `id, recipient_id, game_id, item_id, cycle, request_key, client_ip, user_agent, granted_at`

const currentCycleSQL = `
SELECT cycle FROM grant_cycles WHERE recipient_id = $1 AND game_id = $2`

const historyItemIDsSQL = `
SELECT item_id FROM grant_records
WHERE recipient_id = $1 AND game_id = $2 AND cycle = $3
ORDER BY granted_at`

const historySQL = `
SELECT ` + recordColumns + `
FROM grant_records
WHERE recipient_id = $1 AND game_id = $2
ORDER BY granted_at DESC`

const recordSQL = `
INSERT INTO grant_records (id, recipient_id, game_id, item_id, cycle, request_key, client_ip, user_agent, granted_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + recordColumns

const resetCycleSQL = `
INSERT INTO grant_cycles (recipient_id, game_id, cycle, updated_at)
VALUES ($1, $2, 1, now())
ON CONFLICT (recipient_id, game_id) DO UPDATE
SET cycle = grant_cycles.cycle + 1, updated_at = now()
RETURNING cycle`

const findByRequestKeySQL = `
SELECT ` + recordColumns + `
FROM grant_records
WHERE recipient_id = $1 AND game_id = $2 AND request_key = $3
ORDER BY granted_at`

const statsSQL = `
SELECT
    count(*) AS total_grants,
    count(*) FILTER (WHERE cycle = COALESCE((SELECT gc.cycle FROM grant_cycles gc
                                             WHERE gc.recipient_id = grant_records.recipient_id
                                               AND gc.game_id = grant_records.game_id), 0)) AS current_cycle_grants,
    count(DISTINCT recipient_id) AS distinct_recipients,
    max(granted_at) AS last_granted_at
FROM grant_records
WHERE game_id = $1`

const topItemsSQL = `
SELECT gr.item_id, gi.title, count(*) AS grants
FROM grant_records gr
JOIN gift_items gi ON gi.id = gr.item_id
WHERE gr.game_id = $1
GROUP BY gr.item_id, gi.title
ORDER BY grants DESC, gi.title ASC
LIMIT $2`

// purgeCompletedSQL removes records from completed cycles only: a record at
// the pair's current cycle still drives dedup and must survive.
const purgeCompletedSQL = `
DELETE FROM grant_records gr
WHERE gr.granted_at < $1
  AND gr.cycle < COALESCE((SELECT gc.cycle FROM grant_cycles gc
                           WHERE gc.recipient_id = gr.recipient_id
                             AND gc.game_id = gr.game_id), 0)`

const countPurgeableSQL = `
SELECT count(*)
FROM grant_records gr
WHERE gr.granted_at < $1
  AND gr.cycle < COALESCE((SELECT gc.cycle FROM grant_cycles gc
                           WHERE gc.recipient_id = gr.recipient_id
                             AND gc.game_id = gr.game_id), 0)`

// ---------------------------------------------------------------------------
// Cycle counter
// ---------------------------------------------------------------------------

// CurrentCycle returns the cycle counter for (recipientID, gameID).
// A missing row means the pair is fresh: cycle 0.
func (r *Repo) CurrentCycle(ctx context.Context, recipientID, gameID string) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var cycle int
	err := querier.QueryRow(ctx, currentCycleSQL, recipientID, gameID).Scan(&cycle)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get current cycle: %w", err)
	}

	return cycle, nil
}

// ResetCycle bumps the cycle counter for (recipientID, gameID) and returns
// the new cycle. The first reset of a pair moves it from cycle 0 to 1.
func (r *Repo) ResetCycle(ctx context.Context, recipientID, gameID string) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var cycle int
	if err := querier.QueryRow(ctx, resetCycleSQL, recipientID, gameID).Scan(&cycle); err != nil {
		return 0, fmt.Errorf("reset cycle: %w", err)
	}

	return cycle, nil
}

// ---------------------------------------------------------------------------
// Ledger reads
// ---------------------------------------------------------------------------

// HistoryItemIDs returns the item ids granted to (recipientID, gameID)
// within the given cycle, in grant order.
func (r *Repo) HistoryItemIDs(ctx context.Context, recipientID, gameID string, cycle int) ([]uuid.UUID, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, historyItemIDsSQL, recipientID, gameID, cycle)
	if err != nil {
		return nil, fmt.Errorf("get history item ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan history item id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history item ids: %w", err)
	}

	if ids == nil {
		ids = []uuid.UUID{}
	}

	return ids, nil
}

// History returns every grant record for (recipientID, gameID) across all
// cycles, newest first. Old cycles stay queryable by their cycle tag.
func (r *Repo) History(ctx context.Context, recipientID, gameID string) ([]domain.GrantRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, historySQL, recipientID, gameID)
	if err != nil {
		return nil, fmt.Errorf("get grant history: %w", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("get grant history: %w", err)
	}

	return records, nil
}

// FindByRequestKey returns the records previously written for a request key
// on (recipientID, gameID), in grant order. An empty slice means the key has
// not been seen.
func (r *Repo) FindByRequestKey(ctx context.Context, recipientID, gameID, requestKey string) ([]domain.GrantRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, findByRequestKeySQL, recipientID, gameID, requestKey)
	if err != nil {
		return nil, fmt.Errorf("find grants by request key: %w", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("find grants by request key: %w", err)
	}

	return records, nil
}

// ---------------------------------------------------------------------------
// Ledger writes
// ---------------------------------------------------------------------------

// Record appends one grant fact. Not idempotent by itself: the caller
// invokes it exactly once per actual grant inside the critical section.
func (r *Repo) Record(ctx context.Context, rec *domain.GrantRecord) (*domain.GrantRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	id := rec.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	grantedAt := rec.GrantedAt
	if grantedAt.IsZero() {
		grantedAt = time.Now().UTC().Truncate(time.Microsecond)
	}

	row := querier.QueryRow(ctx, recordSQL,
		id,
		rec.RecipientID,
		rec.GameID,
		rec.ItemID,
		rec.Cycle,
		rec.RequestKey,
		rec.ClientIP,
		rec.UserAgent,
		grantedAt,
	)

	created, err := scanRecord(row)
	if err != nil {
		return nil, mapError(err, "grant_record", rec.RecipientID+"/"+rec.GameID)
	}

	return created, nil
}

// ---------------------------------------------------------------------------
// Aggregates
// ---------------------------------------------------------------------------

// Stats returns per-game ledger aggregates, computed entirely in SQL.
func (r *Repo) Stats(ctx context.Context, gameID string) (domain.LedgerStats, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var stats domain.LedgerStats
	err := querier.QueryRow(ctx, statsSQL, gameID).Scan(
		&stats.TotalGrants,
		&stats.CurrentCycleGrants,
		&stats.DistinctRecipients,
		&stats.LastGrantedAt,
	)
	if err != nil {
		return domain.LedgerStats{}, fmt.Errorf("get ledger stats: %w", err)
	}

	return stats, nil
}

// TopItems returns the most-granted items of a game, busiest first.
// Ties are broken by title so the leaderboard is stable.
func (r *Repo) TopItems(ctx context.Context, gameID string, limit int) ([]domain.ItemGrantCount, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, topItemsSQL, gameID, limit)
	if err != nil {
		return nil, fmt.Errorf("get top items: %w", err)
	}
	defer rows.Close()

	var counts []domain.ItemGrantCount
	for rows.Next() {
		var c domain.ItemGrantCount
		if err := rows.Scan(&c.ItemID, &c.Title, &c.Grants); err != nil {
			return nil, fmt.Errorf("scan top item: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate top items: %w", err)
	}

	if counts == nil {
		counts = []domain.ItemGrantCount{}
	}

	return counts, nil
}

// ---------------------------------------------------------------------------
// Retention
// ---------------------------------------------------------------------------

// PurgeCompletedCycles deletes records older than `before` from completed
// cycles. Current-cycle records are never touched. Returns the number of
// deleted rows.
func (r *Repo) PurgeCompletedCycles(ctx context.Context, before time.Time) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, purgeCompletedSQL, before)
	if err != nil {
		return 0, fmt.Errorf("purge completed cycles: %w", err)
	}

	return ct.RowsAffected(), nil
}

// CountPurgeable returns how many records PurgeCompletedCycles would delete.
// Used for dry runs.
func (r *Repo) CountPurgeable(ctx context.Context, before time.Time) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int64
	if err := querier.QueryRow(ctx, countPurgeableSQL, before).Scan(&count); err != nil {
		return 0, fmt.Errorf("count purgeable records: %w", err)
	}

	return count, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// scanRecord scans a single grant record row from pgx.Row.
func scanRecord(row pgx.Row) (*domain.GrantRecord, error) {
	var (
		id          uuid.UUID
		recipientID string
		gameID      string
		itemID      uuid.UUID
		cycle       int
		requestKey  *string
		clientIP    *string
		userAgent   *string
		grantedAt   time.Time
	)

	if err := row.Scan(&id, &recipientID, &gameID, &itemID, &cycle, &requestKey, &clientIP, &userAgent, &grantedAt); err != nil {
		return nil, err
	}

	return &domain.GrantRecord{
		ID:          id,
		RecipientID: recipientID,
		GameID:      gameID,
		ItemID:      itemID,
		Cycle:       cycle,
		RequestKey:  requestKey,
		ClientIP:    clientIP,
		UserAgent:   userAgent,
		GrantedAt:   grantedAt,
	}, nil
}

// scanRecords scans multiple grant record rows from pgx.Rows.
func scanRecords(rows pgx.Rows) ([]domain.GrantRecord, error) {
	var records []domain.GrantRecord
	for rows.Next() {
		var (
			id          uuid.UUID
			recipientID string
			gameID      string
			itemID      uuid.UUID
			cycle       int
			requestKey  *string
			clientIP    *string
			userAgent   *string
			grantedAt   time.Time
		)

		if err := rows.Scan(&id, &recipientID, &gameID, &itemID, &cycle, &requestKey, &clientIP, &userAgent, &grantedAt); err != nil {
			return nil, err
		}

		records = append(records, domain.GrantRecord{
			ID:          id,
			RecipientID: recipientID,
			GameID:      gameID,
			ItemID:      itemID,
			Cycle:       cycle,
			RequestKey:  requestKey,
			ClientIP:    clientIP,
			UserAgent:   userAgent,
			GrantedAt:   grantedAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if records == nil {
		records = []domain.GrantRecord{}
	}

	return records, nil
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

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
