package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/avelichko/lingtube-backend/internal/domain"
	"github.com/avelichko/lingtube-backend/internal/service/vocabulary"
	"github.com/avelichko/lingtube-backend/pkg/ctxutil"
)

// vocabularyProvider hands out the per-user vocabulary service.
type vocabularyProvider interface {
	ForUser(userID uuid.UUID) *vocabulary.Service
}

// VocabularyHandler serves the saved-words endpoints.
type VocabularyHandler struct {
	vocab vocabularyProvider
	log   *slog.Logger
}

// NewVocabularyHandler creates a VocabularyHandler.
func NewVocabularyHandler(vocab vocabularyProvider, logger *slog.Logger) *VocabularyHandler {
	return &VocabularyHandler{vocab: vocab, log: logger.With("handler", "vocabulary")}
}

type addWordRequest struct {
	Word    string `json:"word"`
	Context string `json:"context"`
	VideoID string `json:"videoId"`
}

type wordResponse struct {
	ID          string    `json:"id"`
	Word        string    `json:"word"`
	Translation string    `json:"translation,omitempty"`
	VideoID     string    `json:"videoId"`
	State       string    `json:"state"`
	CreatedAt   time.Time `json:"createdAt"`
}

type wordListResponse struct {
	Words []wordResponse `json:"words"`
}

// Add handles POST /api/vocabulary/words. The word appears in the list
// immediately as pending; translation and persistence happen asynchronously.
func (h *VocabularyHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req addWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.vocab.ForUser(userID).AddWord(r.Context(), vocabulary.AddWordInput{
		RawWord:         req.Word,
		SentenceContext: req.Context,
		VideoID:         req.VideoID,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	if item == nil {
		// Already saved, or the word normalized to nothing.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusAccepted, toWordResponse(*item))
}

// Remove handles DELETE /api/vocabulary/words/{id}.
func (h *VocabularyHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	err := h.vocab.ForUser(userID).RemoveWord(r.Context(), vocabulary.RemoveWordInput{
		ItemID: r.PathValue("id"),
	})
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrUnauthorized):
		respondError(w, r, h.log, err)
		return
	default:
		// Remote delete failed; the item was restored locally.
		h.log.ErrorContext(r.Context(), "remove word", slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, "remote delete failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/vocabulary/words. Pending items are included.
func (h *VocabularyHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	items := h.vocab.ForUser(userID).Items()
	words := make([]wordResponse, len(items))
	for i, item := range items {
		words[i] = toWordResponse(item)
	}
	writeJSON(w, http.StatusOK, wordListResponse{Words: words})
}

func toWordResponse(item domain.VocabularyItem) wordResponse {
	return wordResponse{
		ID:          item.ID,
		Word:        item.Word,
		Translation: item.Translation,
		VideoID:     item.VideoID,
		State:       string(item.State),
		CreatedAt:   item.CreatedAt,
	}
}
