package vocabulary

import (
	"context"
	"log/slog"
	"time"

	"github.com/avelichko/lingtube-backend/internal/domain"
	"github.com/avelichko/lingtube-backend/internal/translation"
	"github.com/avelichko/lingtube-backend/pkg/ctxutil"
)

// AddWord saves a word optimistically.
//
// The normalized word is checked against the current in-memory set and, when
// new, inserted immediately as a pending item; the returned item is visible
// to the caller before any network round trip. Translation and the remote
// write then run asynchronously: on success the pending item is confirmed in
// place (store-assigned id, translation filled); on any failure it is removed
// entirely and the error logged.
//
// Returns (nil, nil) when the word normalizes to empty or is already saved.
func (s *Service) AddWord(ctx context.Context, input AddWordInput) (*domain.VocabularyItem, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	word := domain.NormalizeWord(input.RawWord)
	if word == "" {
		return nil, nil
	}

	// Check-then-insert is a single unit under the mutex: no other add or
	// remove of the same normalized word can interleave.
	s.mu.Lock()
	if _, exists := s.saved[word]; exists {
		s.mu.Unlock()
		return nil, nil
	}

	item := domain.VocabularyItem{
		ID:        domain.NewTempID(),
		Word:      word,
		VideoID:   input.VideoID,
		UserID:    userID,
		State:     domain.StatePending,
		CreatedAt: time.Now().UTC(),
	}
	s.items = append(s.items, item)
	s.saved[word] = struct{}{}
	epoch := s.epoch
	s.mu.Unlock()

	s.inflight.Add(1)
	// The commit must outlive the originating request.
	go s.commit(context.WithoutCancel(ctx), epoch, item, input.SentenceContext)

	return &item, nil
}

// commit translates the word, persists it, and swaps the pending item for
// the committed one. Results for a stale epoch are discarded: the session
// that launched the commit is gone.
func (s *Service) commit(ctx context.Context, epoch uint64, item domain.VocabularyItem, sentenceContext string) {
	defer s.inflight.Done()

	translated, err := s.translator.Translate(ctx, translation.TranslateRequest{
		Text:       item.Word,
		Context:    sentenceContext,
		SourceLang: s.sourceLang,
		TargetLang: s.targetLang,
	})
	if err != nil {
		s.log.WarnContext(ctx, "word translation failed, rolling back",
			slog.String("word", item.Word),
			slog.String("error", err.Error()),
		)
		s.rollback(epoch, item.ID)
		return
	}

	item.Translation = translated
	item.State = domain.StateCommitted

	id, err := s.repo.Create(ctx, item)
	if err != nil {
		s.log.ErrorContext(ctx, "vocabulary write failed, rolling back",
			slog.String("word", item.Word),
			slog.String("error", err.Error()),
		)
		s.rollback(epoch, item.ID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		// Session ended while the commit was in flight. The row is
		// persisted and will appear on the next load; the local update
		// has nowhere to go.
		return
	}
	if i := s.indexOf(item.ID); i >= 0 {
		s.items[i].ID = id.String()
		s.items[i].Translation = translated
		s.items[i].State = domain.StateCommitted
	}
}

// rollback removes the pending item with tempID unless the epoch moved on.
func (s *Service) rollback(epoch uint64, tempID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return
	}
	if i := s.indexOf(tempID); i >= 0 {
		s.removeLocked(i)
	}
}
