package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/avelichko/lingtube-backend/internal/domain"
)

// videoIngestor defines the minimal interface needed by IngestHandler.
type videoIngestor interface {
	IngestVideo(ctx context.Context, videoID string) (*domain.Video, error)
}

// IngestHandler serves the transcript pre-processing endpoint.
type IngestHandler struct {
	ingest videoIngestor
	log    *slog.Logger
}

// NewIngestHandler creates an IngestHandler.
func NewIngestHandler(ingest videoIngestor, logger *slog.Logger) *IngestHandler {
	return &IngestHandler{ingest: ingest, log: logger.With("handler", "ingest")}
}

// Ingest handles POST /api/videos/{id}/ingest.
func (h *IngestHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	video, err := h.ingest.IngestVideo(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, videoResponse{
		ID:           video.ID,
		Title:        video.Title,
		SegmentCount: len(video.Transcript),
	})
}
