// Package video implements the Video repository using PostgreSQL.
// Transcript segments live in their own table and are written in a single
// batch inside a transaction so a video never carries a partial transcript.
package video

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/avelichko/lingtube-backend/internal/adapter/postgres"
	"github.com/avelichko/lingtube-backend/internal/domain"
)

// Repo provides video persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	txm  *postgres.TxManager
}

// New creates a new video repository.
func New(pool *pgxpool.Pool, txm *postgres.TxManager) *Repo {
	return &Repo{pool: pool, txm: txm}
}

const getVideoSQL = `
SELECT id, title, created_at
FROM videos
WHERE id = $1`

const getSegmentsSQL = `
SELECT text, offset_ms, duration_ms
FROM transcript_segments
WHERE video_id = $1
ORDER BY offset_ms, position`

const upsertVideoSQL = `
INSERT INTO videos (id, title, created_at)
VALUES ($1, $2, now())
ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title`

const deleteSegmentsSQL = `
DELETE FROM transcript_segments WHERE video_id = $1`

const insertSegmentSQL = `
INSERT INTO transcript_segments (video_id, position, text, offset_ms, duration_ms)
VALUES ($1, $2, $3, $4, $5)`

type videoRow struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	CreatedAt time.Time `db:"created_at"`
}

type segmentRow struct {
	Text       string `db:"text"`
	OffsetMs   int64  `db:"offset_ms"`
	DurationMs int64  `db:"duration_ms"`
}

// GetWithTranscript returns the video and its full transcript ordered by
// start offset. Returns domain.ErrNotFound when the video does not exist.
func (r *Repo) GetWithTranscript(ctx context.Context, videoID string) (*domain.Video, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var vr videoRow
	if err := pgxscan.Get(ctx, querier, &vr, getVideoSQL, videoID); err != nil {
		return nil, mapError(err, "video", videoID)
	}

	var segs []segmentRow
	if err := pgxscan.Select(ctx, querier, &segs, getSegmentsSQL, videoID); err != nil {
		return nil, mapError(err, "video", videoID)
	}

	video := &domain.Video{
		ID:         vr.ID,
		Title:      vr.Title,
		CreatedAt:  vr.CreatedAt,
		Transcript: make([]domain.TranscriptSegment, len(segs)),
	}
	for i, s := range segs {
		video.Transcript[i] = domain.TranscriptSegment{
			Text:       s.Text,
			OffsetMs:   s.OffsetMs,
			DurationMs: s.DurationMs,
		}
	}

	return video, nil
}

// Upsert creates the video row or updates its title.
func (r *Repo) Upsert(ctx context.Context, video domain.Video) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, upsertVideoSQL, video.ID, video.Title); err != nil {
		return mapError(err, "video", video.ID)
	}
	return nil
}

// SaveTranscript replaces the video's transcript atomically. Existing segments
// are dropped and the new set is written in one batch within a transaction.
func (r *Repo) SaveTranscript(ctx context.Context, videoID string, segments []domain.TranscriptSegment) error {
	return r.txm.RunInTx(ctx, func(txCtx context.Context) error {
		querier := postgres.QuerierFromCtx(txCtx, r.pool)

		if _, err := querier.Exec(txCtx, deleteSegmentsSQL, videoID); err != nil {
			return mapError(err, "video", videoID)
		}

		batch := &pgx.Batch{}
		for i, seg := range segments {
			batch.Queue(insertSegmentSQL, videoID, i, seg.Text, seg.OffsetMs, seg.DurationMs)
		}

		results := querier.SendBatch(txCtx, batch)
		defer results.Close()

		for range segments {
			if _, err := results.Exec(); err != nil {
				return mapError(err, "video", videoID)
			}
		}
		return nil
	})
}

// mapError converts pgx errors to domain errors for video entities.
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
