// Package grant implements the distribution ledger repository on the
// embedded SQLite store, mirroring the PostgreSQL ledger queries with
// integer millisecond timestamps.
package grant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	sqlite "github.com/mossfell/giftdist-backend/internal/adapter/sqlite"
	"github.com/mossfell/giftdist-backend/internal/domain"
)

// Repo provides grant ledger persistence backed by SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a new grant ledger repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const recordColumns = `id, recipient_id, game_id, item_id, cycle, request_key, client_ip, user_agent, granted_at`

const currentCycleSQL = `
SELECT cycle FROM grant_cycles WHERE recipient_id = ? AND game_id = ?`

const historyItemIDsSQL = `
SELECT item_id FROM grant_records
WHERE recipient_id = ? AND game_id = ? AND cycle = ?
ORDER BY granted_at`

const historySQL = `
SELECT ` + recordColumns + `
FROM grant_records
WHERE recipient_id = ? AND game_id = ?
ORDER BY granted_at DESC`

const recordSQL = `
INSERT INTO grant_records (id, recipient_id, game_id, item_id, cycle, request_key, client_ip, user_agent, granted_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

const resetCycleSQL = `
INSERT INTO grant_cycles (recipient_id, game_id, cycle, updated_at)
VALUES (?, ?, 1, ?)
ON CONFLICT (recipient_id, game_id) DO UPDATE
SET cycle = grant_cycles.cycle + 1, updated_at = excluded.updated_at
RETURNING cycle`

const findByRequestKeySQL = `
SELECT ` + recordColumns + `
FROM grant_records
WHERE recipient_id = ? AND game_id = ? AND request_key = ?
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
WHERE game_id = ?`

const topItemsSQL = `
SELECT gr.item_id, gi.title, count(*) AS grants
FROM grant_records gr
JOIN gift_items gi ON gi.id = gr.item_id
WHERE gr.game_id = ?
GROUP BY gr.item_id, gi.title
ORDER BY grants DESC, gi.title ASC
LIMIT ?`

// purgeCompletedSQL removes records from completed cycles only: a record at
// the pair's current cycle still drives dedup and must survive.
const purgeCompletedSQL = `
DELETE FROM grant_records
WHERE granted_at < ?
  AND cycle < COALESCE((SELECT gc.cycle FROM grant_cycles gc
                        WHERE gc.recipient_id = grant_records.recipient_id
                          AND gc.game_id = grant_records.game_id), 0)`

const countPurgeableSQL = `
SELECT count(*)
FROM grant_records gr
WHERE gr.granted_at < ?
  AND gr.cycle < COALESCE((SELECT gc.cycle FROM grant_cycles gc
                           WHERE gc.recipient_id = gr.recipient_id
                             AND gc.game_id = gr.game_id), 0)`

// ---------------------------------------------------------------------------
// Cycle counter
// ---------------------------------------------------------------------------

// CurrentCycle returns the cycle counter for (recipientID, gameID).
// A missing row means the pair is fresh: cycle 0.
func (r *Repo) CurrentCycle(ctx context.Context, recipientID, gameID string) (int, error) {
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	var cycle int
	err := querier.QueryRowContext(ctx, currentCycleSQL, recipientID, gameID).Scan(&cycle)
	if errors.Is(err, sql.ErrNoRows) {
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
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	now := time.Now().UTC().Truncate(time.Millisecond)

	var cycle int
	if err := querier.QueryRowContext(ctx, resetCycleSQL, recipientID, gameID, sqlite.ToMillis(now)).Scan(&cycle); err != nil {
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
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	rows, err := querier.QueryContext(ctx, historyItemIDsSQL, recipientID, gameID, cycle)
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
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	rows, err := querier.QueryContext(ctx, historySQL, recipientID, gameID)
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
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	rows, err := querier.QueryContext(ctx, findByRequestKeySQL, recipientID, gameID, requestKey)
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
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	id := rec.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	grantedAt := rec.GrantedAt
	if grantedAt.IsZero() {
		grantedAt = time.Now()
	}
	grantedAt = grantedAt.UTC().Truncate(time.Millisecond)

	_, err := querier.ExecContext(ctx, recordSQL,
		id,
		rec.RecipientID,
		rec.GameID,
		rec.ItemID,
		rec.Cycle,
		rec.RequestKey,
		rec.ClientIP,
		rec.UserAgent,
		sqlite.ToMillis(grantedAt),
	)
	if err != nil {
		return nil, mapError(err, "grant_record", rec.RecipientID+"/"+rec.GameID)
	}

	created := *rec
	created.ID = id
	created.GrantedAt = grantedAt
	return &created, nil
}

// ---------------------------------------------------------------------------
// Aggregates
// ---------------------------------------------------------------------------

// Stats returns per-game ledger aggregates, computed entirely in SQL.
func (r *Repo) Stats(ctx context.Context, gameID string) (domain.LedgerStats, error) {
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	var (
		stats         domain.LedgerStats
		lastGrantedAt sql.NullInt64
	)
	err := querier.QueryRowContext(ctx, statsSQL, gameID).Scan(
		&stats.TotalGrants,
		&stats.CurrentCycleGrants,
		&stats.DistinctRecipients,
		&lastGrantedAt,
	)
	if err != nil {
		return domain.LedgerStats{}, fmt.Errorf("get ledger stats: %w", err)
	}

	stats.LastGrantedAt = sqlite.FromNullMillis(lastGrantedAt)
	return stats, nil
}

// TopItems returns the most-granted items of a game, busiest first.
// Ties are broken by title so the leaderboard is stable.
func (r *Repo) TopItems(ctx context.Context, gameID string, limit int) ([]domain.ItemGrantCount, error) {
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	rows, err := querier.QueryContext(ctx, topItemsSQL, gameID, limit)
	if err != nil {
		return nil, fmt.Errorf("get top items: %w", err)
	}
	defer rows.Close()

	counts := []domain.ItemGrantCount{}
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

	return counts, nil
}

// ---------------------------------------------------------------------------
// Retention
// ---------------------------------------------------------------------------

// PurgeCompletedCycles deletes records older than before that belong to a
// cycle the pair has already moved past. Returns the number of deleted rows.
func (r *Repo) PurgeCompletedCycles(ctx context.Context, before time.Time) (int64, error) {
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	res, err := querier.ExecContext(ctx, purgeCompletedSQL, sqlite.ToMillis(before))
	if err != nil {
		return 0, fmt.Errorf("purge completed cycles: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge completed cycles: %w", err)
	}

	return deleted, nil
}

// CountPurgeable reports how many records PurgeCompletedCycles would delete,
// without deleting anything.
func (r *Repo) CountPurgeable(ctx context.Context, before time.Time) (int64, error) {
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	var count int64
	if err := querier.QueryRowContext(ctx, countPurgeableSQL, sqlite.ToMillis(before)).Scan(&count); err != nil {
		return 0, fmt.Errorf("count purgeable records: %w", err)
	}

	return count, nil
}

// ---------------------------------------------------------------------------
// Row scanning and error mapping
// ---------------------------------------------------------------------------

// scanRecords scans grant record rows. Always returns a non-nil slice.
func scanRecords(rows *sql.Rows) ([]domain.GrantRecord, error) {
	records := []domain.GrantRecord{}
	for rows.Next() {
		var (
			rec       domain.GrantRecord
			grantedAt int64
		)
		if err := rows.Scan(
			&rec.ID, &rec.RecipientID, &rec.GameID, &rec.ItemID, &rec.Cycle,
			&rec.RequestKey, &rec.ClientIP, &rec.UserAgent, &grantedAt,
		); err != nil {
			return nil, err
		}
		rec.GrantedAt = sqlite.FromMillis(grantedAt)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
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
