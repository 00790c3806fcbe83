// Package session resolves the active video for a user, loads its transcript
// and vocabulary once, and exposes the playback-position and vocabulary
// handles for the duration the session is open.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/avelichko/lingtube-backend/internal/domain"
	"github.com/avelichko/lingtube-backend/internal/transcript"
	"github.com/avelichko/lingtube-backend/pkg/ctxutil"
)

// State is the session lifecycle state.
type State string

const (
	// StateResolving: no video id determined yet.
	StateResolving State = "resolving"

	// StateLoading: video id resolved, transcript and vocabulary loading.
	StateLoading State = "loading"

	// StateReady: transcript and vocabulary queries are live.
	StateReady State = "ready"

	// StateError: resolution or load failed. Terminal for this session
	// instance; a fresh session starts over from StateResolving.
	StateError State = "error"
)

type videoRepo interface {
	GetWithTranscript(ctx context.Context, videoID string) (*domain.Video, error)
}

type historyRepo interface {
	MostRecent(ctx context.Context, userID uuid.UUID) (*domain.HistoryEntry, error)
}

// VocabularyLoader binds the vocabulary service to the session's video.
type VocabularyLoader interface {
	Load(ctx context.Context, videoID string) error
}

// Session holds one user's active-video state. All methods are safe for
// concurrent use; the transcript snapshot handed to lookups is immutable.
type Session struct {
	videos  videoRepo
	history historyRepo
	vocab   VocabularyLoader
	log     *slog.Logger

	mu      sync.Mutex
	state   State
	video   *domain.Video
	loadErr error
}

// Config holds the construction parameters for a Session.
type Config struct {
	Videos     videoRepo
	History    historyRepo
	Vocabulary VocabularyLoader
	Logger     *slog.Logger
}

// New creates a Session in StateResolving.
func New(cfg Config) *Session {
	return &Session{
		videos:  cfg.Videos,
		history: cfg.History,
		vocab:   cfg.Vocabulary,
		log:     cfg.Logger.With("service", "session"),
		state:   StateResolving,
	}
}

// Load resolves and loads the session's video.
//
// An explicit non-empty videoID takes precedence; otherwise the most recent
// non-placeholder history entry is used. Loading the id that is already
// loaded is an idempotent no-op with zero fetches. Once the session is in
// StateError no further fetches are attempted.
func (s *Session) Load(ctx context.Context, videoID string) error {
	s.mu.Lock()
	switch s.state {
	case StateError:
		err := s.loadErr
		s.mu.Unlock()
		return err
	case StateReady:
		if videoID == "" || videoID == s.video.ID {
			s.mu.Unlock()
			return nil
		}
	case StateLoading:
		s.mu.Unlock()
		return fmt.Errorf("session: %w", domain.ErrConflict)
	}
	s.state = StateResolving
	s.mu.Unlock()

	resolved, err := s.resolve(ctx, videoID)
	if err != nil {
		return s.fail(err)
	}

	// Resolution through history may land on the already-loaded video.
	s.mu.Lock()
	if s.video != nil && s.video.ID == resolved {
		s.state = StateReady
		s.mu.Unlock()
		return nil
	}
	s.state = StateLoading
	s.mu.Unlock()

	video, err := s.load(ctx, resolved)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.state = StateReady
	s.video = video
	s.mu.Unlock()

	s.log.InfoContext(ctx, "session ready",
		slog.String("video_id", video.ID),
		slog.Int("segments", len(video.Transcript)),
	)
	return nil
}

// resolve determines the active video id.
func (s *Session) resolve(ctx context.Context, videoID string) (string, error) {
	if videoID != "" {
		return videoID, nil
	}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return "", domain.ErrUnauthorized
	}

	entry, err := s.history.MostRecent(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return "", domain.ErrNoActiveVideo
	}
	if err != nil {
		return "", fmt.Errorf("resolve active video: %w", err)
	}
	return entry.VideoID, nil
}

// load fetches the video with its transcript and binds the vocabulary
// service, both against the resolved id.
func (s *Session) load(ctx context.Context, videoID string) (*domain.Video, error) {
	var video *domain.Video

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.videos.GetWithTranscript(gctx, videoID)
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("video %s has no pre-processed data: %w", videoID, domain.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("load video %s: %w", videoID, err)
		}
		v.Transcript = transcript.Ingest(v.Transcript)
		video = v
		return nil
	})
	g.Go(func() error {
		if err := s.vocab.Load(gctx, videoID); err != nil {
			return fmt.Errorf("load vocabulary for %s: %w", videoID, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return video, nil
}

// fail moves the session to its terminal error state.
func (s *Session) fail(err error) error {
	s.mu.Lock()
	s.state = StateError
	s.loadErr = err
	s.mu.Unlock()
	return err
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the load error when the session is in StateError.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Video returns the loaded video, or ErrNotReady.
func (s *Session) Video() (*domain.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return nil, domain.ErrNotReady
	}
	return s.video, nil
}

// ActiveSegment returns the transcript segment active at currentTimeMs and
// its index, or index -1 when the position precedes the first segment.
func (s *Session) ActiveSegment(currentTimeMs int64) (int, *domain.TranscriptSegment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return transcript.NoActiveSegment, nil, domain.ErrNotReady
	}
	i := transcript.ActiveSegment(s.video.Transcript, currentTimeMs)
	if i == transcript.NoActiveSegment {
		return i, nil, nil
	}
	return i, &s.video.Transcript[i], nil
}
