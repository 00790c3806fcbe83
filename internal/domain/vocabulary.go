package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ItemState tags a vocabulary item's position in the optimistic-write
// lifecycle: a pending item is visible locally but not yet confirmed by the
// store; a committed item carries the store-assigned id and translation.
type ItemState string

const (
	StatePending   ItemState = "pending"
	StateCommitted ItemState = "committed"
)

// tempIDPrefix marks locally-generated ids for not-yet-committed items.
const tempIDPrefix = "temp_"

// VocabularyItem is one saved word in a user's vocabulary list.
//
// While State is StatePending the ID is a temporary local id and Translation
// is empty. On commit the ID is replaced with the store-assigned uuid and
// Translation is filled in.
type VocabularyItem struct {
	ID          string
	Word        string
	Translation string
	VideoID     string
	UserID      uuid.UUID
	State       ItemState
	CreatedAt   time.Time
}

// NewTempID generates a temporary local id for an uncommitted item.
func NewTempID() string {
	return fmt.Sprintf("%s%d", tempIDPrefix, time.Now().UnixNano())
}

// IsTempID reports whether id is a locally-generated temporary id.
func IsTempID(id string) bool {
	return strings.HasPrefix(id, tempIDPrefix)
}
