// Package gift implements the GiftItem repository using PostgreSQL.
// Simple CRUD queries use sqlc; the dynamic catalog listing is built with
// squirrel, and importer bulk writes use the pgx.Batch API.
package gift

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/mossfell/giftdist-backend/internal/adapter/postgres"
	"github.com/mossfell/giftdist-backend/internal/adapter/postgres/gift/sqlc"
	"github.com/mossfell/giftdist-backend/internal/domain"
)

// Repo provides gift item persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new gift item repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Raw SQL for queries sqlc cannot express
// ---------------------------------------------------------------------------

const itemColumns = `id, game_id, filename, title, description, event_type, region, file_size, priority, enabled, available_from, available_until, grant_count, created_at, updated_at`

const incrementGrantCountsSQL = `
UPDATE gift_items SET grant_count = grant_count + 1 WHERE id = ANY($1)`

const countByGameSQL = `
SELECT
    count(*) AS total,
    count(*) FILTER (WHERE enabled) AS enabled_count
FROM gift_items
WHERE game_id = $1`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a gift item by primary key.
// Returns domain.ErrNotFound if the item does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.GiftItem, error) {
	q := sqlc.New(postgres.QuerierFromCtx(ctx, r.pool))

	row, err := q.GetGiftItem(ctx, id)
	if err != nil {
		return nil, mapError(err, "gift_item", id.String())
	}

	item := toDomainGiftItem(row)
	return &item, nil
}

// GetByGameFilename returns a gift item by its natural key (game_id, filename).
// Returns domain.ErrNotFound if the item does not exist.
func (r *Repo) GetByGameFilename(ctx context.Context, gameID, filename string) (*domain.GiftItem, error) {
	q := sqlc.New(postgres.QuerierFromCtx(ctx, r.pool))

	row, err := q.GetGiftItemByGameFilename(ctx, sqlc.GetGiftItemByGameFilenameParams{
		GameID:   gameID,
		Filename: filename,
	})
	if err != nil {
		return nil, mapError(err, "gift_item", gameID+"/"+filename)
	}

	item := toDomainGiftItem(row)
	return &item, nil
}

// ListByGame returns all items for a game in catalog order
// (priority DESC, id ASC). The selection engine depends on this ordering.
func (r *Repo) ListByGame(ctx context.Context, gameID string) ([]domain.GiftItem, error) {
	q := sqlc.New(postgres.QuerierFromCtx(ctx, r.pool))

	rows, err := q.ListGiftItemsByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("list gift_items by game: %w", err)
	}

	items := make([]domain.GiftItem, len(rows))
	for i, row := range rows {
		items[i] = toDomainGiftItem(row)
	}

	return items, nil
}

// List returns items matching the filter in catalog order, plus the total
// count matching the filter without pagination.
func (r *Repo) List(ctx context.Context, f domain.ItemFilter) ([]domain.GiftItem, int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	where := buildItemFilter(f)
	builder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	countSQL, countArgs, err := builder.Select("count(*)").From("gift_items").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
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

	rows, err := querier.Query(ctx, selSQL, selArgs...)
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
		where = append(where,
			squirrel.Or{squirrel.Eq{"available_from": nil}, squirrel.LtOrEq{"available_from": *f.AvailableAt}},
			squirrel.Or{squirrel.Eq{"available_until": nil}, squirrel.GtOrEq{"available_until": *f.AvailableAt}},
		)
	}
	return where
}

// CountByGame returns the total and enabled item counts for a game.
func (r *Repo) CountByGame(ctx context.Context, gameID string) (total, enabled int, err error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if err := querier.QueryRow(ctx, countByGameSQL, gameID).Scan(&total, &enabled); err != nil {
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
	q := sqlc.New(postgres.QuerierFromCtx(ctx, r.pool))

	now := time.Now().UTC().Truncate(time.Microsecond)
	id := item.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	row, err := q.UpsertGiftItem(ctx, sqlc.UpsertGiftItemParams{
		ID:             id,
		GameID:         item.GameID,
		Filename:       item.Filename,
		Title:          item.Title,
		Description:    item.Description,
		EventType:      item.EventType,
		Region:         item.Region,
		FileSize:       item.FileSize,
		Priority:       int32(item.Priority),
		Enabled:        item.Enabled,
		AvailableFrom:  item.AvailableFrom,
		AvailableUntil: item.AvailableUntil,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return nil, mapError(err, "gift_item", item.GameID+"/"+item.Filename)
	}

	stored := toDomainGiftItem(row)
	return &stored, nil
}

// SetEnabled flips the enabled flag of an item.
// Returns domain.ErrNotFound if 0 rows affected.
func (r *Repo) SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	q := sqlc.New(postgres.QuerierFromCtx(ctx, r.pool))

	rowsAffected, err := q.SetGiftItemEnabled(ctx, sqlc.SetGiftItemEnabledParams{
		ID:      id,
		Enabled: enabled,
	})
	if err != nil {
		return mapError(err, "gift_item", id.String())
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

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, incrementGrantCountsSQL, ids); err != nil {
		return fmt.Errorf("increment grant counts: %w", err)
	}

	return nil
}

// BulkInsertNew inserts gift items using pgx.Batch. Existing items
// (by game_id, filename) are skipped via ON CONFLICT DO NOTHING.
// Returns the number of actually inserted rows.
func (r *Repo) BulkInsertNew(ctx context.Context, items []domain.GiftItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(
			`INSERT INTO gift_items (id, game_id, filename, title, description, event_type, region,
			                         file_size, priority, enabled, available_from, available_until, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			 ON CONFLICT (game_id, filename) DO NOTHING`,
			it.ID, it.GameID, it.Filename, it.Title, it.Description, it.EventType, it.Region,
			it.FileSize, int32(it.Priority), it.Enabled, it.AvailableFrom, it.AvailableUntil,
			it.CreatedAt, it.UpdatedAt,
		)
	}

	return r.sendBatchExec(ctx, batch)
}

// sendBatchExec sends a pgx.Batch and counts affected rows from Exec results.
func (r *Repo) sendBatchExec(ctx context.Context, batch *pgx.Batch) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("batch exec: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

// ---------------------------------------------------------------------------
// Row scanning and mapping helpers
// ---------------------------------------------------------------------------

// scanItems scans gift item rows returned by a raw (squirrel-built) query.
func scanItems(rows pgx.Rows) ([]domain.GiftItem, error) {
	var items []domain.GiftItem
	for rows.Next() {
		var (
			id             uuid.UUID
			gameID         string
			filename       string
			title          string
			description    string
			eventType      string
			region         string
			fileSize       int64
			priority       int32
			enabled        bool
			availableFrom  *time.Time
			availableUntil *time.Time
			grantCount     int64
			createdAt      time.Time
			updatedAt      time.Time
		)

		if err := rows.Scan(
			&id, &gameID, &filename, &title, &description, &eventType, &region,
			&fileSize, &priority, &enabled, &availableFrom, &availableUntil,
			&grantCount, &createdAt, &updatedAt,
		); err != nil {
			return nil, err
		}

		items = append(items, domain.GiftItem{
			ID:             id,
			GameID:         gameID,
			Filename:       filename,
			Title:          title,
			Description:    description,
			EventType:      eventType,
			Region:         region,
			FileSize:       fileSize,
			Priority:       int(priority),
			Enabled:        enabled,
			AvailableFrom:  availableFrom,
			AvailableUntil: availableUntil,
			GrantCount:     grantCount,
			CreatedAt:      createdAt,
			UpdatedAt:      updatedAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if items == nil {
		items = []domain.GiftItem{}
	}

	return items, nil
}

// toDomainGiftItem converts a sqlc.GiftItem row into a domain.GiftItem.
func toDomainGiftItem(row sqlc.GiftItem) domain.GiftItem {
	return domain.GiftItem{
		ID:             row.ID,
		GameID:         row.GameID,
		Filename:       row.Filename,
		Title:          row.Title,
		Description:    row.Description,
		EventType:      row.EventType,
		Region:         row.Region,
		FileSize:       row.FileSize,
		Priority:       int(row.Priority),
		Enabled:        row.Enabled,
		AvailableFrom:  row.AvailableFrom,
		AvailableUntil: row.AvailableUntil,
		GrantCount:     row.GrantCount,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
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
