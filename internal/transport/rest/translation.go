package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/avelichko/lingtube-backend/internal/translation"
)

// TranslationHandler serves the show/hide translation toggle.
type TranslationHandler struct {
	words      *translation.Cache
	sentences  *translation.Cache
	sourceLang string
	targetLang string
	log        *slog.Logger
}

// NewTranslationHandler creates a TranslationHandler. Word and sentence
// toggles use separate caches so their keys cannot collide.
func NewTranslationHandler(words, sentences *translation.Cache, sourceLang, targetLang string, logger *slog.Logger) *TranslationHandler {
	return &TranslationHandler{
		words:      words,
		sentences:  sentences,
		sourceLang: sourceLang,
		targetLang: targetLang,
		log:        logger.With("handler", "translation"),
	}
}

type toggleRequest struct {
	// Kind selects the cache: "word" or "sentence".
	Kind string `json:"kind"`

	// Key identifies the toggled unit. For sentences this is the line
	// index; for words it may be left empty and is derived from the word
	// plus its sentence context.
	Key string `json:"key"`

	Text    string `json:"text"`
	Context string `json:"context"`
}

type toggleResponse struct {
	Result      string `json:"result"`
	Translation string `json:"translation,omitempty"`
}

// Toggle handles POST /api/translations/toggle.
//
// Toggling an untranslated unit fetches and caches its translation; toggling
// it again discards the cached entry. A toggle while the fetch is still in
// flight is a no-op.
func (h *TranslationHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	var (
		cache *translation.Cache
		key   string
	)
	switch req.Kind {
	case "word":
		cache = h.words
		key = req.Key
		if key == "" {
			key = translation.WordKey(req.Text, req.Context)
		}
	case "sentence":
		cache = h.sentences
		key = req.Key
		if key == "" {
			writeError(w, http.StatusBadRequest, "key is required for sentence toggles")
			return
		}
	default:
		writeError(w, http.StatusBadRequest, "kind must be word or sentence")
		return
	}

	result, err := cache.Toggle(r.Context(), key, translation.TranslateRequest{
		Text:       req.Text,
		Context:    req.Context,
		SourceLang: h.sourceLang,
		TargetLang: h.targetLang,
	})
	if err != nil {
		h.log.ErrorContext(r.Context(), "translation fetch failed",
			slog.String("kind", req.Kind),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadGateway, "translation failed")
		return
	}

	resp := toggleResponse{Result: toggleResultString(result)}
	if result == translation.Fetched {
		if entry, ok := cache.Get(key); ok {
			resp.Translation = entry.TranslatedText
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func toggleResultString(r translation.ToggleResult) string {
	switch r {
	case translation.Removed:
		return "removed"
	case translation.InFlight:
		return "inFlight"
	case translation.Fetched:
		return "fetched"
	default:
		return "unknown"
	}
}
