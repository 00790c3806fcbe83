package domain

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntry records one video in a user's watch history. Placeholder
// entries are created before a video finishes pre-processing and are never
// used for session resolution.
type HistoryEntry struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	VideoID     string
	Title       string
	Placeholder bool
	WatchedAt   time.Time
}
