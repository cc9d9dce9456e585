// Package gift implements the GiftItem repository on the embedded SQLite
// store. It exposes the same method set as its PostgreSQL counterpart so
// services can be wired against either backend. The dynamic catalog listing
// is built with squirrel; everything else is raw SQL.
package gift

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	sqlite "github.com/mossfell/giftdist-backend/internal/adapter/sqlite"
	"github.com/mossfell/giftdist-backend/internal/domain"
)

// Repo provides gift item persistence backed by SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a new gift item repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const itemColumns = `id, game_id, filename, title, description, event_type, region, file_size, priority, enabled, available_from, available_until, grant_count, created_at, updated_at`

const getByIDSQL = `
SELECT ` + itemColumns + ` FROM gift_items WHERE id = ?`

const getByGameFilenameSQL = `
SELECT ` + itemColumns + ` FROM gift_items WHERE game_id = ? AND filename = ?`

const listByGameSQL = `
SELECT ` + itemColumns + ` FROM gift_items WHERE game_id = ? ORDER BY priority DESC, id ASC`

const upsertSQL = `
INSERT INTO gift_items (id, game_id, filename, title, description, event_type, region,
                        file_size, priority, enabled, available_from, available_until,
                        created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (game_id, filename) DO UPDATE SET
    title           = excluded.title,
    description     = excluded.description,
    event_type      = excluded.event_type,
    region          = excluded.region,
    file_size       = excluded.file_size,
    priority        = excluded.priority,
    enabled         = excluded.enabled,
    available_from  = excluded.available_from,
    available_until = excluded.available_until,
    updated_at      = excluded.updated_at
RETURNING ` + itemColumns

const insertNewSQL = `
INSERT INTO gift_items (id, game_id, filename, title, description, event_type, region,
                        file_size, priority, enabled, available_from, available_until,
                        created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (game_id, filename) DO NOTHING`

const setEnabledSQL = `
UPDATE gift_items SET enabled = ?, updated_at = ? WHERE id = ?`

const countByGameSQL = `
SELECT
    count(*) AS total,
    count(*) FILTER (WHERE enabled = 1) AS enabled_count
FROM gift_items
WHERE game_id = ?`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a gift item by primary key.
// Returns domain.ErrNotFound if the item does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.GiftItem, error) {
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	item, err := scanItem(querier.QueryRowContext(ctx, getByIDSQL, id))
	if err != nil {
		return nil, mapError(err, "gift_item", id.String())
	}

	return &item, nil
}

// GetByGameFilename returns a gift item by its natural key (game_id, filename).
// Returns domain.ErrNotFound if the item does not exist.
func (r *Repo) GetByGameFilename(ctx context.Context, gameID, filename string) (*domain.GiftItem, error) {
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	item, err := scanItem(querier.QueryRowContext(ctx, getByGameFilenameSQL, gameID, filename))
	if err != nil {
		return nil, mapError(err, "gift_item", gameID+"/"+filename)
	}

	return &item, nil
}

// ListByGame returns all items for a game in catalog order
// (priority DESC, id ASC). The selection engine depends on this ordering.
func (r *Repo) ListByGame(ctx context.Context, gameID string) ([]domain.GiftItem, error) {
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	rows, err := querier.QueryContext(ctx, listByGameSQL, gameID)
	if err != nil {
		return nil, fmt.Errorf("list gift_items by game: %w", err)
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, fmt.Errorf("list gift_items by game: %w", err)
	}

	return items, nil
}

// List returns items matching the filter in catalog order, plus the total
// count matching the filter without pagination.
func (r *Repo) List(ctx context.Context, f domain.ItemFilter) ([]domain.GiftItem, int, error) {
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	where := buildItemFilter(f)
	builder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

	countSQL, countArgs, err := builder.Select("count(*)").From("gift_items").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := querier.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count gift_items: %w", err)
	}

	sel := builder.Select(itemColumns).From("gift_items").Where(where).
		OrderBy("priority DESC", "id ASC")
	if f.Limit > 0 {
		sel = sel.Limit(uint64(f.Limit)).Offset(uint64(f.Offset))
	}

	selSQL, selArgs, err := sel.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := querier.QueryContext(ctx, selSQL, selArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list gift_items: %w", err)
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("list gift_items: %w", err)
	}

	return items, total, nil
}

// buildItemFilter translates a domain.ItemFilter into a squirrel conjunction.
// An empty filter renders as (1=1), i.e. no restriction.
func buildItemFilter(f domain.ItemFilter) squirrel.And {
	where := squirrel.And{}
	if f.GameID != "" {
		where = append(where, squirrel.Eq{"game_id": f.GameID})
	}
	if f.EnabledOnly {
		where = append(where, squirrel.Eq{"enabled": true})
	}
	if f.Region != "" {
		where = append(where, squirrel.Eq{"region": f.Region})
	}
	if f.EventType != "" {
		where = append(where, squirrel.Eq{"event_type": f.EventType})
	}
	if f.AvailableAt != nil {
		// Both window bounds are inclusive; a NULL bound is open-ended.
		at := sqlite.ToMillis(*f.AvailableAt)
		where = append(where,
			squirrel.Or{squirrel.Eq{"available_from": nil}, squirrel.LtOrEq{"available_from": at}},
			squirrel.Or{squirrel.Eq{"available_until": nil}, squirrel.GtOrEq{"available_until": at}},
		)
	}
	return where
}

// CountByGame returns the total and enabled item counts for a game.
func (r *Repo) CountByGame(ctx context.Context, gameID string) (total, enabled int, err error) {
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	if err := querier.QueryRowContext(ctx, countByGameSQL, gameID).Scan(&total, &enabled); err != nil {
		return 0, 0, fmt.Errorf("count gift_items by game: %w", err)
	}

	return total, enabled, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Upsert inserts a gift item or updates an existing one matched by
// (game_id, filename). A zero item.ID is replaced with a fresh UUID; on
// update the stored row keeps its original id and created_at.
func (r *Repo) Upsert(ctx context.Context, item *domain.GiftItem) (*domain.GiftItem, error) {
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	now := time.Now().UTC().Truncate(time.Millisecond)
	id := item.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	stored, err := scanItem(querier.QueryRowContext(ctx, upsertSQL,
		id,
		item.GameID,
		item.Filename,
		item.Title,
		item.Description,
		item.EventType,
		item.Region,
		item.FileSize,
		item.Priority,
		item.Enabled,
		sqlite.ToNullMillis(item.AvailableFrom),
		sqlite.ToNullMillis(item.AvailableUntil),
		sqlite.ToMillis(now),
		sqlite.ToMillis(now),
	))
	if err != nil {
		return nil, mapError(err, "gift_item", item.GameID+"/"+item.Filename)
	}

	return &stored, nil
}

// SetEnabled flips the enabled flag of an item.
// Returns domain.ErrNotFound if 0 rows affected.
func (r *Repo) SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	querier := sqlite.QuerierFromCtx(ctx, r.db)

	now := time.Now().UTC().Truncate(time.Millisecond)
	res, err := querier.ExecContext(ctx, setEnabledSQL, enabled, sqlite.ToMillis(now), id)
	if err != nil {
		return mapError(err, "gift_item", id.String())
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set gift_item enabled: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("gift_item %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// IncrementGrantCounts bumps grant_count by one for each given item.
// The counter is observational; selection never reads it.
func (r *Repo) IncrementGrantCounts(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	querier := sqlite.QuerierFromCtx(ctx, r.db)

	updateSQL, args, err := squirrel.Update("gift_items").
		Set("grant_count", squirrel.Expr("grant_count + 1")).
		Where(squirrel.Eq{"id": ids}).
		PlaceholderFormat(squirrel.Question).
		ToSql()
	if err != nil {
		return fmt.Errorf("build increment query: %w", err)
	}

	if _, err := querier.ExecContext(ctx, updateSQL, args...); err != nil {
		return fmt.Errorf("increment grant counts: %w", err)
	}

	return nil
}

// BulkInsertNew inserts gift items one statement at a time, inside the
// caller's transaction when one is on the context. Existing items
// (by game_id, filename) are skipped via ON CONFLICT DO NOTHING.
// Returns the number of actually inserted rows.
func (r *Repo) BulkInsertNew(ctx context.Context, items []domain.GiftItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	querier := sqlite.QuerierFromCtx(ctx, r.db)

	var inserted int
	for _, it := range items {
		res, err := querier.ExecContext(ctx, insertNewSQL,
			it.ID, it.GameID, it.Filename, it.Title, it.Description, it.EventType, it.Region,
			it.FileSize, it.Priority, it.Enabled,
			sqlite.ToNullMillis(it.AvailableFrom), sqlite.ToNullMillis(it.AvailableUntil),
			sqlite.ToMillis(it.CreatedAt), sqlite.ToMillis(it.UpdatedAt),
		)
		if err != nil {
			return inserted, mapError(err, "gift_item", it.GameID+"/"+it.Filename)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("bulk insert gift_items: %w", err)
		}
		inserted += int(n)
	}

	return inserted, nil
}

// ---------------------------------------------------------------------------
// Row scanning and mapping helpers
// ---------------------------------------------------------------------------

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanItem scans a single gift item row.
func scanItem(row rowScanner) (domain.GiftItem, error) {
	var (
		item           domain.GiftItem
		availableFrom  sql.NullInt64
		availableUntil sql.NullInt64
		createdAt      int64
		updatedAt      int64
	)

	err := row.Scan(
		&item.ID, &item.GameID, &item.Filename, &item.Title, &item.Description,
		&item.EventType, &item.Region, &item.FileSize, &item.Priority, &item.Enabled,
		&availableFrom, &availableUntil, &item.GrantCount, &createdAt, &updatedAt,
	)
	if err != nil {
		return domain.GiftItem{}, err
	}

	item.AvailableFrom = sqlite.FromNullMillis(availableFrom)
	item.AvailableUntil = sqlite.FromNullMillis(availableUntil)
	item.CreatedAt = sqlite.FromMillis(createdAt)
	item.UpdatedAt = sqlite.FromMillis(updatedAt)
	return item, nil
}

// scanItems scans gift item rows. Always returns a non-nil slice.
func scanItems(rows *sql.Rows) ([]domain.GiftItem, error) {
	items := []domain.GiftItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

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
