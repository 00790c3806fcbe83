package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avelichko/lingtube-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedVideo creates a video with a three-segment transcript.
// Returns the filled domain.Video.
func SeedVideo(t *testing.T, pool *pgxpool.Pool) domain.Video {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	video := domain.Video{
		ID:        "video-" + suffix,
		Title:     "Test Video " + suffix,
		CreatedAt: now,
		Transcript: []domain.TranscriptSegment{
			{Text: "hello world", OffsetMs: 0, DurationMs: 2000},
			{Text: "second segment", OffsetMs: 2000, DurationMs: 3000},
			{Text: "third segment", OffsetMs: 5000, DurationMs: 2000},
		},
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO videos (id, title, created_at) VALUES ($1, $2, $3)`,
		video.ID, video.Title, video.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedVideo insert video: %v", err)
	}

	for i, seg := range video.Transcript {
		_, err := pool.Exec(ctx,
			`INSERT INTO transcript_segments (video_id, position, text, offset_ms, duration_ms)
			 VALUES ($1, $2, $3, $4, $5)`,
			video.ID, i, seg.Text, seg.OffsetMs, seg.DurationMs,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedVideo insert segment %d: %v", i, err)
		}
	}

	return video
}

// SeedVocabularyItem creates a committed vocabulary item for the user and video.
func SeedVocabularyItem(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, videoID, word string) domain.VocabularyItem {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	item := domain.VocabularyItem{
		ID:          uuid.New().String(),
		UserID:      userID,
		VideoID:     videoID,
		Word:        word,
		Translation: "ترجمة " + word,
		State:       domain.StateCommitted,
		CreatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO vocabulary_items (id, user_id, video_id, word, translation, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		item.ID, item.UserID, item.VideoID, item.Word, item.Translation, item.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedVocabularyItem insert: %v", err)
	}

	return item
}

// SeedHistoryEntry creates a watch-history entry. watchedAt controls recency
// ordering between entries; placeholder entries are ignored by resolution.
func SeedHistoryEntry(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, videoID string, placeholder bool, watchedAt time.Time) domain.HistoryEntry {
	t.Helper()
	ctx := context.Background()

	entry := domain.HistoryEntry{
		ID:          uuid.New(),
		UserID:      userID,
		VideoID:     videoID,
		Title:       "History " + videoID,
		Placeholder: placeholder,
		WatchedAt:   watchedAt.UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO watch_history (id, user_id, video_id, title, placeholder, watched_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.UserID, entry.VideoID, entry.Title, entry.Placeholder, entry.WatchedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedHistoryEntry insert: %v", err)
	}

	return entry
}
