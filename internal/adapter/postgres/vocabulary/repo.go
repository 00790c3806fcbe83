// Package vocabulary implements the VocabularyItem repository using PostgreSQL.
// The (user_id, video_id, word) unique constraint backs the no-duplicates rule;
// a violation surfaces as domain.ErrAlreadyExists.
package vocabulary

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

// Repo provides vocabulary persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new vocabulary repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createItemSQL = `
INSERT INTO vocabulary_items (id, user_id, video_id, word, translation, created_at)
VALUES ($1, $2, $3, $4, $5, now())
RETURNING id`

const deleteItemSQL = `
DELETE FROM vocabulary_items WHERE id = $1 AND user_id = $2`

type itemRow struct {
	ID          uuid.UUID `db:"id"`
	UserID      uuid.UUID `db:"user_id"`
	VideoID     string    `db:"video_id"`
	Word        string    `db:"word"`
	Translation string    `db:"translation"`
	CreatedAt   time.Time `db:"created_at"`
}

// Create persists a vocabulary item and returns the generated id.
// The caller's temporary id is ignored. A duplicate word for the same user
// and video returns domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, item domain.VocabularyItem) (uuid.UUID, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	id := uuid.New()
	row := querier.QueryRow(ctx, createItemSQL,
		id, item.UserID, item.VideoID, item.Word, item.Translation,
	)
	if err := row.Scan(&id); err != nil {
		return uuid.Nil, mapError(err, "vocabulary_item", item.Word)
	}

	return id, nil
}

// Delete removes the user's item by id. Returns domain.ErrNotFound if 0 rows affected.
func (r *Repo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteItemSQL, id, userID)
	if err != nil {
		return mapError(err, "vocabulary_item", id.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("vocabulary_item %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListByUser returns the user's items, newest first. A non-empty videoID
// narrows the list to words saved from that video.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID, videoID string) ([]domain.VocabularyItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	builder := psql.
		Select("id", "user_id", "video_id", "word", "translation", "created_at").
		From("vocabulary_items").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC")
	if videoID != "" {
		builder = builder.Where(sq.Eq{"video_id": videoID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build vocabulary list query: %w", err)
	}

	var rows []itemRow
	if err := pgxscan.Select(ctx, querier, &rows, query, args...); err != nil {
		return nil, mapError(err, "vocabulary_item", userID.String())
	}

	items := make([]domain.VocabularyItem, len(rows))
	for i, row := range rows {
		items[i] = domain.VocabularyItem{
			ID:          row.ID.String(),
			UserID:      row.UserID,
			VideoID:     row.VideoID,
			Word:        row.Word,
			Translation: row.Translation,
			State:       domain.StateCommitted,
			CreatedAt:   row.CreatedAt,
		}
	}

	return items, nil
}

// mapError converts pgx errors to domain errors for vocabulary entities.
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
