// Package translate holds translation providers that need no external service.
package translate

import (
	"context"

	"github.com/avelichko/lingtube-backend/internal/translation"
)

var _ translation.Translator = (*Stub)(nil)

// Stub is a deterministic translation provider for local development when no
// OpenAI key is configured. It tags the text with the target language instead
// of translating it.
type Stub struct{}

// NewStub creates a new stub translation provider.
func NewStub() *Stub { return &Stub{} }

// Translate returns the input text tagged with the target language.
func (s *Stub) Translate(_ context.Context, req translation.TranslateRequest) (string, error) {
	return "[" + req.TargetLang + "] " + req.Text, nil
}
