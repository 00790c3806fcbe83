package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/avelichko/lingtube-backend/internal/domain"
	"github.com/avelichko/lingtube-backend/internal/service/session"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeVideoRepo struct {
	video *domain.Video
	err   error
}

func (f *fakeVideoRepo) GetWithTranscript(_ context.Context, _ string) (*domain.Video, error) {
	return f.video, f.err
}

type fakeHistoryRepo struct {
	entry *domain.HistoryEntry
	err   error
}

func (f *fakeHistoryRepo) MostRecent(_ context.Context, _ uuid.UUID) (*domain.HistoryEntry, error) {
	return f.entry, f.err
}

type fakeLoader struct{ err error }

func (f *fakeLoader) Load(_ context.Context, _ string) error { return f.err }

func restTestVideo() *domain.Video {
	return &domain.Video{
		ID:    "vid-1",
		Title: "Learning English",
		Transcript: []domain.TranscriptSegment{
			{Text: "hello world", OffsetMs: 0, DurationMs: 2000},
			{Text: "second segment", OffsetMs: 2000, DurationMs: 3000},
			{Text: "third segment", OffsetMs: 5000, DurationMs: 2000},
		},
	}
}

// readySession builds a session already loaded with restTestVideo.
func readySession(t *testing.T) *session.Session {
	t.Helper()
	s := session.New(session.Config{
		Videos:     &fakeVideoRepo{video: restTestVideo()},
		History:    &fakeHistoryRepo{err: domain.ErrNotFound},
		Vocabulary: &fakeLoader{},
		Logger:     discardLogger(),
	})
	if err := s.Load(context.Background(), "vid-1"); err != nil {
		t.Fatalf("load session: %v", err)
	}
	return s
}

type sessionManagerMock struct {
	OpenFunc  func(ctx context.Context, videoID string) (*session.Session, error)
	GetFunc   func(ctx context.Context) (*session.Session, bool)
	CloseFunc func(ctx context.Context)
}

func (m *sessionManagerMock) Open(ctx context.Context, videoID string) (*session.Session, error) {
	return m.OpenFunc(ctx, videoID)
}

func (m *sessionManagerMock) Get(ctx context.Context) (*session.Session, bool) {
	return m.GetFunc(ctx)
}

func (m *sessionManagerMock) Close(ctx context.Context) {
	if m.CloseFunc != nil {
		m.CloseFunc(ctx)
	}
}

func TestSessionOpen_ReturnsVideo(t *testing.T) {
	t.Parallel()

	s := readySession(t)
	h := NewSessionHandler(&sessionManagerMock{
		OpenFunc: func(_ context.Context, videoID string) (*session.Session, error) {
			if videoID != "vid-1" {
				t.Errorf("videoID = %q, want vid-1", videoID)
			}
			return s, nil
		},
	}, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/session", strings.NewReader(`{"videoId":"vid-1"}`))
	rec := httptest.NewRecorder()

	h.Open(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp sessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.State != string(session.StateReady) {
		t.Errorf("state = %q, want ready", resp.State)
	}
	if resp.Video == nil || resp.Video.ID != "vid-1" || resp.Video.SegmentCount != 3 {
		t.Errorf("video = %+v, want vid-1 with 3 segments", resp.Video)
	}
}

func TestSessionOpen_EmptyBody(t *testing.T) {
	t.Parallel()

	s := readySession(t)
	h := NewSessionHandler(&sessionManagerMock{
		OpenFunc: func(_ context.Context, videoID string) (*session.Session, error) {
			if videoID != "" {
				t.Errorf("videoID = %q, want empty", videoID)
			}
			return s, nil
		},
	}, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/session", nil)
	rec := httptest.NewRecorder()

	h.Open(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestSessionOpen_NoVideosFound(t *testing.T) {
	t.Parallel()

	h := NewSessionHandler(&sessionManagerMock{
		OpenFunc: func(_ context.Context, _ string) (*session.Session, error) {
			return nil, domain.ErrNoActiveVideo
		},
	}, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/session", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.Open(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if !strings.Contains(rec.Body.String(), "no videos found") {
		t.Errorf("body = %q, want it to mention no videos found", rec.Body.String())
	}
}

func TestSessionGet_NoOpenSession(t *testing.T) {
	t.Parallel()

	h := NewSessionHandler(&sessionManagerMock{
		GetFunc: func(_ context.Context) (*session.Session, bool) { return nil, false },
	}, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestSessionClose(t *testing.T) {
	t.Parallel()

	closed := false
	h := NewSessionHandler(&sessionManagerMock{
		CloseFunc: func(_ context.Context) { closed = true },
	}, discardLogger())

	req := httptest.NewRequest(http.MethodDelete, "/api/session", nil)
	rec := httptest.NewRecorder()

	h.Close(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if !closed {
		t.Error("expected manager.Close to be called")
	}
}

func TestSegment_ActivePosition(t *testing.T) {
	t.Parallel()

	s := readySession(t)
	h := NewSessionHandler(&sessionManagerMock{
		GetFunc: func(_ context.Context) (*session.Session, bool) { return s, true },
	}, discardLogger())

	cases := []struct {
		name      string
		t         string
		wantIndex int
		wantText  string
	}{
		{"first segment start", "0", 0, "hello world"},
		{"gap holds previous", "4500", 1, "second segment"},
		{"last segment", "6000", 2, "third segment"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/session/segment?t="+tc.t, nil)
			rec := httptest.NewRecorder()

			h.Segment(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
			}

			var resp segmentResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Index != tc.wantIndex {
				t.Errorf("index = %d, want %d", resp.Index, tc.wantIndex)
			}
			if resp.Segment == nil || resp.Segment.Text != tc.wantText {
				t.Errorf("segment = %+v, want text %q", resp.Segment, tc.wantText)
			}
		})
	}
}

func TestSegment_BeforeFirstSubtitle(t *testing.T) {
	t.Parallel()

	s := session.New(session.Config{
		Videos: &fakeVideoRepo{video: &domain.Video{
			ID:    "vid-late",
			Title: "Late start",
			Transcript: []domain.TranscriptSegment{
				{Text: "starts late", OffsetMs: 3000, DurationMs: 1000},
			},
		}},
		History:    &fakeHistoryRepo{err: domain.ErrNotFound},
		Vocabulary: &fakeLoader{},
		Logger:     discardLogger(),
	})
	if err := s.Load(context.Background(), "vid-late"); err != nil {
		t.Fatalf("load session: %v", err)
	}

	h := NewSessionHandler(&sessionManagerMock{
		GetFunc: func(_ context.Context) (*session.Session, bool) { return s, true },
	}, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/session/segment?t=1000", nil)
	rec := httptest.NewRecorder()

	h.Segment(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp segmentResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Index != -1 {
		t.Errorf("index = %d, want -1", resp.Index)
	}
	if resp.Segment != nil {
		t.Errorf("segment = %+v, want nil", resp.Segment)
	}
}

func TestSegment_InvalidTime(t *testing.T) {
	t.Parallel()

	h := NewSessionHandler(&sessionManagerMock{
		GetFunc: func(_ context.Context) (*session.Session, bool) { return nil, false },
	}, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/session/segment?t=abc", nil)
	rec := httptest.NewRecorder()

	h.Segment(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestTranscript_ReturnsAllSegments(t *testing.T) {
	t.Parallel()

	s := readySession(t)
	h := NewSessionHandler(&sessionManagerMock{
		GetFunc: func(_ context.Context) (*session.Session, bool) { return s, true },
	}, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/session/transcript", nil)
	rec := httptest.NewRecorder()

	h.Transcript(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		VideoID  string           `json:"videoId"`
		Segments []segmentPayload `json:"segments"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.VideoID != "vid-1" {
		t.Errorf("videoId = %q, want vid-1", resp.VideoID)
	}
	if len(resp.Segments) != 3 || resp.Segments[2].Text != "third segment" {
		t.Errorf("segments = %+v, want 3 ending with third segment", resp.Segments)
	}
}
