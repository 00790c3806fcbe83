package vocabulary

import (
	"context"
	"fmt"

	"github.com/avelichko/lingtube-backend/internal/domain"
	"github.com/avelichko/lingtube-backend/pkg/ctxutil"
)

// Load resets the service for a new session and fills the list with the
// user's committed items for videoID. The epoch advances first, so an async
// commit still in flight for the previous session cannot touch the new list;
// temporary inserts never survive a session switch.
func (s *Service) Load(ctx context.Context, videoID string) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	epoch := s.reset()

	items, err := s.repo.ListByUser(ctx, userID, videoID)
	if err != nil {
		return fmt.Errorf("load vocabulary: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return nil
	}
	s.items = items
	for _, it := range items {
		s.saved[it.Word] = struct{}{}
	}
	return nil
}
