package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avelichko/lingtube-backend/internal/domain"
	"github.com/avelichko/lingtube-backend/pkg/ctxutil"
)

// historyStore defines the minimal interface needed by HistoryHandler.
type historyStore interface {
	Record(ctx context.Context, entry domain.HistoryEntry) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.HistoryEntry, error)
}

// HistoryHandler serves the watch-history endpoints.
type HistoryHandler struct {
	history historyStore
	log     *slog.Logger
}

// NewHistoryHandler creates a HistoryHandler.
func NewHistoryHandler(history historyStore, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{history: history, log: logger.With("handler", "history")}
}

type recordHistoryRequest struct {
	VideoID string `json:"videoId"`
	Title   string `json:"title"`
}

type historyEntryResponse struct {
	VideoID     string    `json:"videoId"`
	Title       string    `json:"title"`
	Placeholder bool      `json:"placeholder"`
	WatchedAt   time.Time `json:"watchedAt"`
}

type historyListResponse struct {
	Entries []historyEntryResponse `json:"entries"`
}

// Record handles POST /api/history.
func (h *HistoryHandler) Record(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req recordHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.VideoID) == "" {
		writeError(w, http.StatusBadRequest, "videoId is required")
		return
	}

	err := h.history.Record(r.Context(), domain.HistoryEntry{
		UserID:  userID,
		VideoID: req.VideoID,
		Title:   req.Title,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/history?limit=<n>.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	entries, err := h.history.ListByUser(r.Context(), userID, limit)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]historyEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = historyEntryResponse{
			VideoID:     e.VideoID,
			Title:       e.Title,
			Placeholder: e.Placeholder,
			WatchedAt:   e.WatchedAt,
		}
	}
	writeJSON(w, http.StatusOK, historyListResponse{Entries: out})
}
