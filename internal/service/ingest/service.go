// Package ingest pre-processes videos: it fetches the transcript from the
// external provider, normalizes it, and stores it so sessions can load the
// video without touching the provider again.
package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/avelichko/lingtube-backend/internal/domain"
	"github.com/avelichko/lingtube-backend/internal/provider"
	"github.com/avelichko/lingtube-backend/internal/transcript"
)

type transcriptFetcher interface {
	FetchTranscript(ctx context.Context, videoID string) (*provider.TranscriptResult, error)
}

type videoStore interface {
	Upsert(ctx context.Context, video domain.Video) error
	SaveTranscript(ctx context.Context, videoID string, segments []domain.TranscriptSegment) error
}

// Service runs the transcript pre-processing pipeline.
type Service struct {
	fetcher transcriptFetcher
	store   videoStore
	log     *slog.Logger
}

// NewService creates an ingest Service.
func NewService(fetcher transcriptFetcher, store videoStore, logger *slog.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		store:   store,
		log:     logger.With("service", "ingest"),
	}
}

// IngestVideo fetches, normalizes, and stores the transcript for videoID.
// Re-ingesting an already-stored video replaces its transcript.
func (s *Service) IngestVideo(ctx context.Context, videoID string) (*domain.Video, error) {
	if videoID == "" {
		return nil, domain.NewValidationError("video_id", "required")
	}

	result, err := s.fetcher.FetchTranscript(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("fetch transcript for %s: %w", videoID, err)
	}

	raw := make([]domain.TranscriptSegment, len(result.Segments))
	for i, seg := range result.Segments {
		raw[i] = domain.TranscriptSegment{
			Text:       seg.Text,
			OffsetMs:   seg.OffsetMs,
			DurationMs: seg.DurationMs,
		}
	}
	segments := transcript.Ingest(raw)
	if len(segments) == 0 {
		return nil, fmt.Errorf("video %s: %w", videoID, domain.ErrTranscriptUnavailable)
	}

	video := domain.Video{
		ID:    videoID,
		Title: result.Title,
	}
	if err := s.store.Upsert(ctx, video); err != nil {
		return nil, fmt.Errorf("store video %s: %w", videoID, err)
	}
	if err := s.store.SaveTranscript(ctx, videoID, segments); err != nil {
		return nil, fmt.Errorf("store transcript for %s: %w", videoID, err)
	}

	s.log.InfoContext(ctx, "video ingested",
		slog.String("video_id", videoID),
		slog.Int("segments", len(segments)),
	)

	video.Transcript = segments
	return &video, nil
}
