package vocabulary

import (
	"strings"

	"github.com/avelichko/lingtube-backend/internal/domain"
)

// AddWordInput holds the parameters for saving a word.
type AddWordInput struct {
	// RawWord is the token as clicked in the transcript; it is normalized
	// (lowercased, punctuation stripped) before the duplicate check.
	RawWord string

	// SentenceContext is the sentence the word appeared in, passed to the
	// translator for a context-aware translation.
	SentenceContext string

	// VideoID records provenance.
	VideoID string
}

// Validate checks all fields and collects all errors.
func (i AddWordInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.RawWord) == "" {
		errs = append(errs, domain.FieldError{Field: "word", Message: "required"})
	}
	if len(i.RawWord) > 100 {
		errs = append(errs, domain.FieldError{Field: "word", Message: "max 100 characters"})
	}
	if len(i.SentenceContext) > 2000 {
		errs = append(errs, domain.FieldError{Field: "context", Message: "max 2000 characters"})
	}
	if strings.TrimSpace(i.VideoID) == "" {
		errs = append(errs, domain.FieldError{Field: "video_id", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RemoveWordInput holds the parameters for removing a saved word.
type RemoveWordInput struct {
	ItemID string
}

// Validate checks all fields and collects all errors.
func (i RemoveWordInput) Validate() error {
	if strings.TrimSpace(i.ItemID) == "" {
		return domain.NewValidationError("item_id", "required")
	}
	return nil
}
