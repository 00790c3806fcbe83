package vocabulary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/avelichko/lingtube-backend/internal/domain"
	"github.com/avelichko/lingtube-backend/pkg/ctxutil"
)

// RemoveWord deletes a saved word.
//
// Temporary (uncommitted) items are removed from local state only, since
// nothing was ever persisted. Committed items are removed locally and then deleted
// remotely; if the remote delete fails the item is restored at its original
// position and the error returned, so the list never silently diverges from
// the store.
func (s *Service) RemoveWord(ctx context.Context, input RemoveWordInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	i := s.indexOf(input.ItemID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("vocabulary item %s: %w", input.ItemID, domain.ErrNotFound)
	}

	if domain.IsTempID(input.ItemID) {
		s.removeLocked(i)
		s.mu.Unlock()
		return nil
	}

	item := s.removeLocked(i)
	s.mu.Unlock()

	id, err := uuid.Parse(item.ID)
	if err != nil {
		return fmt.Errorf("vocabulary item id %q: %w", item.ID, domain.ErrValidation)
	}

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		s.log.ErrorContext(ctx, "remote delete failed, restoring item",
			slog.String("item_id", item.ID),
			slog.String("word", item.Word),
			slog.String("error", err.Error()),
		)
		s.restore(i, item)
		return fmt.Errorf("delete vocabulary item: %w", err)
	}

	return nil
}

// restore re-inserts item at position i (clamped to the current list size).
func (s *Service) restore(i int, item domain.VocabularyItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i > len(s.items) {
		i = len(s.items)
	}
	s.items = append(s.items[:i], append([]domain.VocabularyItem{item}, s.items[i:]...)...)
	s.saved[item.Word] = struct{}{}
}
