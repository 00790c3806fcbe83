package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/avelichko/lingtube-backend/internal/service/session"
)

// sessionManager defines the minimal interface needed by SessionHandler.
type sessionManager interface {
	Open(ctx context.Context, videoID string) (*session.Session, error)
	Get(ctx context.Context) (*session.Session, bool)
	Close(ctx context.Context)
}

// SessionHandler serves the video session endpoints.
type SessionHandler struct {
	sessions sessionManager
	log      *slog.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(sessions sessionManager, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, log: logger.With("handler", "session")}
}

type openSessionRequest struct {
	VideoID string `json:"videoId"`
}

type sessionResponse struct {
	State string         `json:"state"`
	Video *videoResponse `json:"video,omitempty"`
	Error string         `json:"error,omitempty"`
}

type videoResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	SegmentCount int    `json:"segmentCount"`
}

type segmentResponse struct {
	Index   int             `json:"index"`
	Segment *segmentPayload `json:"segment,omitempty"`
}

type segmentPayload struct {
	Text       string `json:"text"`
	OffsetMs   int64  `json:"offsetMs"`
	DurationMs int64  `json:"durationMs"`
}

// Open handles POST /api/session. The body is optional; without a videoId
// the most recently watched video is resumed.
func (h *SessionHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req openSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := h.sessions.Open(r.Context(), req.VideoID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(s))
}

// Get handles GET /api/session.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessions.Get(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "no open session")
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(s))
}

// Close handles DELETE /api/session.
func (h *SessionHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.sessions.Close(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// Segment handles GET /api/session/segment?t=<playback position, ms>.
// An index of -1 means playback is before the first subtitle.
func (h *SessionHandler) Segment(w http.ResponseWriter, r *http.Request) {
	t, err := strconv.ParseInt(r.URL.Query().Get("t"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "query parameter t must be an integer")
		return
	}

	s, ok := h.sessions.Get(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "no open session")
		return
	}

	index, seg, err := s.ActiveSegment(t)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	resp := segmentResponse{Index: index}
	if seg != nil {
		resp.Segment = &segmentPayload{
			Text:       seg.Text,
			OffsetMs:   seg.OffsetMs,
			DurationMs: seg.DurationMs,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Transcript handles GET /api/session/transcript.
func (h *SessionHandler) Transcript(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessions.Get(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "no open session")
		return
	}

	video, err := s.Video()
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	segments := make([]segmentPayload, len(video.Transcript))
	for i, seg := range video.Transcript {
		segments[i] = segmentPayload{
			Text:       seg.Text,
			OffsetMs:   seg.OffsetMs,
			DurationMs: seg.DurationMs,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"videoId":  video.ID,
		"segments": segments,
	})
}

func toSessionResponse(s *session.Session) sessionResponse {
	resp := sessionResponse{State: string(s.State())}
	if video, err := s.Video(); err == nil {
		resp.Video = &videoResponse{
			ID:           video.ID,
			Title:        video.Title,
			SegmentCount: len(video.Transcript),
		}
	}
	if err := s.Err(); err != nil {
		resp.Error = err.Error()
	}
	return resp
}
