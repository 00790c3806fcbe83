// Package vocabulary maintains a user's saved-word list for the active video
// session with optimistic local mutation and eventual remote consistency.
//
// Adds are visible immediately as pending items; the translation fetch and
// remote write happen asynchronously, after which the pending item is either
// confirmed (store-assigned id, translation filled) or rolled back entirely.
package vocabulary

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/avelichko/lingtube-backend/internal/domain"
	"github.com/avelichko/lingtube-backend/internal/translation"
)

type vocabularyRepo interface {
	Create(ctx context.Context, item domain.VocabularyItem) (uuid.UUID, error)
	Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, videoID string) ([]domain.VocabularyItem, error)
}

// Service provides the session-scoped vocabulary list.
//
// The in-memory list is the caller-visible state; the repository is the
// source of truth on commit. The duplicate check and the pending insert run
// as one unit under the service mutex, so two rapid adds of the same
// normalized word cannot both pass the check.
type Service struct {
	repo       vocabularyRepo
	translator translation.Translator
	log        *slog.Logger

	sourceLang string
	targetLang string

	mu    sync.Mutex
	epoch uint64
	items []domain.VocabularyItem
	saved map[string]struct{}

	inflight sync.WaitGroup
}

// Config holds the construction parameters for the Service.
type Config struct {
	Repo       vocabularyRepo
	Translator translation.Translator
	Logger     *slog.Logger

	// SourceLang/TargetLang select the translation pair for saved words.
	// Defaults: en → ar.
	SourceLang string
	TargetLang string
}

// NewService creates a vocabulary Service.
func NewService(cfg Config) *Service {
	src := cfg.SourceLang
	if src == "" {
		src = "en"
	}
	dst := cfg.TargetLang
	if dst == "" {
		dst = "ar"
	}
	return &Service{
		repo:       cfg.Repo,
		translator: cfg.Translator,
		log:        cfg.Logger.With("service", "vocabulary"),
		sourceLang: src,
		targetLang: dst,
		saved:      make(map[string]struct{}),
	}
}

// Items returns a snapshot of the current list, pending items included.
func (s *Service) Items() []domain.VocabularyItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.VocabularyItem, len(s.items))
	copy(out, s.items)
	return out
}

// SavedWords returns a snapshot of the derived normalized-word set. The set
// is always recomputable from the item list; it exists so the duplicate
// check in AddWord is O(1).
func (s *Service) SavedWords() map[string]struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]struct{}, len(s.saved))
	for w := range s.saved {
		out[w] = struct{}{}
	}
	return out
}

// HasWord reports whether the normalized form of raw is already saved.
func (s *Service) HasWord(raw string) bool {
	word := domain.NormalizeWord(raw)
	if word == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.saved[word]
	return ok
}

// WaitIdle blocks until all outstanding asynchronous commits have settled.
func (s *Service) WaitIdle() {
	s.inflight.Wait()
}

// reset clears the list and advances the epoch so that results from commits
// launched before the reset are discarded when they arrive. Callers hold no
// locks.
func (s *Service) reset() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.items = nil
	s.saved = make(map[string]struct{})
	return s.epoch
}

// currentEpoch returns the active epoch token.
func (s *Service) currentEpoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// indexOf returns the position of the item with id, or -1. Caller holds mu.
func (s *Service) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// removeLocked deletes the item at position i preserving order and keeps the
// saved set in sync. Caller holds mu.
func (s *Service) removeLocked(i int) domain.VocabularyItem {
	item := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.saved, item.Word)
	return item
}
