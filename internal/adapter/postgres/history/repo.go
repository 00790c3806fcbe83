// Package history implements the watch-history repository using PostgreSQL.
// Placeholder entries are pre-created rows without a real watch event; they
// never participate in most-recent resolution.
package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/avelichko/lingtube-backend/internal/adapter/postgres"
	"github.com/avelichko/lingtube-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides watch-history persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new history repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const recordSQL = `
INSERT INTO watch_history (id, user_id, video_id, title, placeholder, watched_at)
VALUES ($1, $2, $3, $4, $5, now())`

type entryRow struct {
	ID          uuid.UUID `db:"id"`
	UserID      uuid.UUID `db:"user_id"`
	VideoID     string    `db:"video_id"`
	Title       string    `db:"title"`
	Placeholder bool      `db:"placeholder"`
	WatchedAt   time.Time `db:"watched_at"`
}

// MostRecent returns the user's most recently watched video, skipping
// placeholder entries. Returns domain.ErrNotFound when the history is empty.
func (r *Repo) MostRecent(ctx context.Context, userID uuid.UUID) (*domain.HistoryEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.
		Select("id", "user_id", "video_id", "title", "placeholder", "watched_at").
		From("watch_history").
		Where(sq.Eq{"user_id": userID, "placeholder": false}).
		OrderBy("watched_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build most-recent query: %w", err)
	}

	var row entryRow
	if err := pgxscan.Get(ctx, querier, &row, query, args...); err != nil {
		return nil, mapError(err, "watch_history", userID.String())
	}

	entry := toDomain(row)
	return &entry, nil
}

// Record appends a watch-history entry.
func (r *Repo) Record(ctx context.Context, entry domain.HistoryEntry) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	id := entry.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	_, err := querier.Exec(ctx, recordSQL,
		id, entry.UserID, entry.VideoID, entry.Title, entry.Placeholder,
	)
	if err != nil {
		return mapError(err, "watch_history", entry.VideoID)
	}

	return nil
}

// ListByUser returns the user's history newest first, capped at limit.
// Placeholder entries are included so callers can render the full list.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.HistoryEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	builder := psql.
		Select("id", "user_id", "video_id", "title", "placeholder", "watched_at").
		From("watch_history").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("watched_at DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build history list query: %w", err)
	}

	var rows []entryRow
	if err := pgxscan.Select(ctx, querier, &rows, query, args...); err != nil {
		return nil, mapError(err, "watch_history", userID.String())
	}

	entries := make([]domain.HistoryEntry, len(rows))
	for i, row := range rows {
		entries[i] = toDomain(row)
	}

	return entries, nil
}

func toDomain(row entryRow) domain.HistoryEntry {
	return domain.HistoryEntry{
		ID:          row.ID,
		UserID:      row.UserID,
		VideoID:     row.VideoID,
		Title:       row.Title,
		Placeholder: row.Placeholder,
		WatchedAt:   row.WatchedAt,
	}
}

// mapError converts pgx errors to domain errors for history entities.
func mapError(err error, entity, id string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23503":
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514":
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
