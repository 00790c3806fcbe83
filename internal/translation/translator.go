// Package translation provides the translator contract and a memoizing
// toggle cache for word- and sentence-level translation requests.
package translation

import "context"

// TranslateRequest carries one text to translate. Context is the surrounding
// sentence for word-level requests; empty for sentence-level requests.
type TranslateRequest struct {
	Text       string
	Context    string
	SourceLang string
	TargetLang string
}

// Translator is the external translation collaborator. Implementations must
// be safe for concurrent use.
type Translator interface {
	Translate(ctx context.Context, req TranslateRequest) (string, error)
}

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(ctx context.Context, req TranslateRequest) (string, error)

func (f TranslatorFunc) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	return f(ctx, req)
}
