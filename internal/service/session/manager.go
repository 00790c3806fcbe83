package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/avelichko/lingtube-backend/internal/domain"
	"github.com/avelichko/lingtube-backend/pkg/ctxutil"
)

// vocabularyFactory creates the per-session vocabulary loader for a user.
type vocabularyFactory func(userID uuid.UUID) VocabularyLoader

// Manager keeps at most one live session per user. A session that ended in
// StateError is replaced by a fresh one on the next Open call.
type Manager struct {
	videos  videoRepo
	history historyRepo
	vocab   vocabularyFactory
	log     *slog.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

// ManagerConfig holds the construction parameters for a Manager.
type ManagerConfig struct {
	Videos     videoRepo
	History    historyRepo
	Vocabulary vocabularyFactory
	Logger     *slog.Logger
}

// NewManager creates a Manager with no open sessions.
func NewManager(cfg ManagerConfig) *Manager {
	return &Manager{
		videos:   cfg.Videos,
		history:  cfg.History,
		vocab:    cfg.Vocabulary,
		log:      cfg.Logger,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Open returns the user's session, creating one if needed, and loads
// videoID into it. An empty videoID resolves through watch history.
func (m *Manager) Open(ctx context.Context, videoID string) (*Session, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	m.mu.Lock()
	s, exists := m.sessions[userID]
	if !exists || s.State() == StateError {
		s = New(Config{
			Videos:     m.videos,
			History:    m.history,
			Vocabulary: m.vocab(userID),
			Logger:     m.log,
		})
		m.sessions[userID] = s
	}
	m.mu.Unlock()

	if err := s.Load(ctx, videoID); err != nil {
		return s, err
	}
	return s, nil
}

// Get returns the user's open session, if any.
func (m *Manager) Get(ctx context.Context) (*Session, bool) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s, exists := m.sessions[userID]
	return s, exists
}

// Close discards the user's session. The next Open starts a fresh one.
func (m *Manager) Close(ctx context.Context) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return
	}

	m.mu.Lock()
	delete(m.sessions, userID)
	m.mu.Unlock()
}
