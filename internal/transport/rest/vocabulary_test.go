package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/avelichko/lingtube-backend/internal/domain"
	"github.com/avelichko/lingtube-backend/internal/service/vocabulary"
	"github.com/avelichko/lingtube-backend/internal/translation"
	"github.com/avelichko/lingtube-backend/pkg/ctxutil"
)

type fakeVocabularyRepo struct {
	deleteErr error
}

func (f *fakeVocabularyRepo) Create(_ context.Context, _ domain.VocabularyItem) (uuid.UUID, error) {
	return uuid.New(), nil
}

func (f *fakeVocabularyRepo) Delete(_ context.Context, _ uuid.UUID, _ uuid.UUID) error {
	return f.deleteErr
}

func (f *fakeVocabularyRepo) ListByUser(_ context.Context, _ uuid.UUID, _ string) ([]domain.VocabularyItem, error) {
	return nil, nil
}

type staticProvider struct {
	svc *vocabulary.Service
}

func (p *staticProvider) ForUser(_ uuid.UUID) *vocabulary.Service { return p.svc }

func newVocabHandler(t *testing.T, repo *fakeVocabularyRepo) (*VocabularyHandler, *vocabulary.Service) {
	t.Helper()
	svc := vocabulary.NewService(vocabulary.Config{
		Repo: repo,
		Translator: translation.TranslatorFunc(func(_ context.Context, req translation.TranslateRequest) (string, error) {
			return "ترجمة " + req.Text, nil
		}),
		Logger: discardLogger(),
	})
	return NewVocabularyHandler(&staticProvider{svc: svc}, discardLogger()), svc
}

func withUser(r *http.Request) *http.Request {
	return r.WithContext(ctxutil.WithUserID(r.Context(), uuid.New()))
}

func TestVocabularyAdd_ReturnsPendingItem(t *testing.T) {
	t.Parallel()

	h, svc := newVocabHandler(t, &fakeVocabularyRepo{})

	body := `{"word":"Hello,","context":"Hello, world","videoId":"vid-1"}`
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/vocabulary/words", strings.NewReader(body)))
	rec := httptest.NewRecorder()

	h.Add(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusAccepted, rec.Body.String())
	}

	var resp wordResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Word != "hello" {
		t.Errorf("word = %q, want normalized hello", resp.Word)
	}
	if resp.State != string(domain.StatePending) {
		t.Errorf("state = %q, want pending", resp.State)
	}

	svc.WaitIdle()
}

func TestVocabularyAdd_DuplicateIsNoContent(t *testing.T) {
	t.Parallel()

	h, svc := newVocabHandler(t, &fakeVocabularyRepo{})

	body := `{"word":"hello","context":"","videoId":"vid-1"}`
	first := withUser(httptest.NewRequest(http.MethodPost, "/api/vocabulary/words", strings.NewReader(body)))
	rec := httptest.NewRecorder()
	h.Add(rec, first)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("first add status = %d, want %d", rec.Code, http.StatusAccepted)
	}

	second := withUser(httptest.NewRequest(http.MethodPost, "/api/vocabulary/words", strings.NewReader(body)))
	rec = httptest.NewRecorder()
	h.Add(rec, second)

	if rec.Code != http.StatusNoContent {
		t.Errorf("duplicate add status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	svc.WaitIdle()
}

func TestVocabularyAdd_RequiresUser(t *testing.T) {
	t.Parallel()

	h, _ := newVocabHandler(t, &fakeVocabularyRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/vocabulary/words", strings.NewReader(`{"word":"hi","videoId":"vid-1"}`))
	rec := httptest.NewRecorder()

	h.Add(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestVocabularyAdd_MissingVideoID(t *testing.T) {
	t.Parallel()

	h, _ := newVocabHandler(t, &fakeVocabularyRepo{})

	req := withUser(httptest.NewRequest(http.MethodPost, "/api/vocabulary/words", strings.NewReader(`{"word":"hi"}`)))
	rec := httptest.NewRecorder()

	h.Add(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestVocabularyList_IncludesAddedWords(t *testing.T) {
	t.Parallel()

	h, svc := newVocabHandler(t, &fakeVocabularyRepo{})

	add := withUser(httptest.NewRequest(http.MethodPost, "/api/vocabulary/words",
		strings.NewReader(`{"word":"world","videoId":"vid-1"}`)))
	h.Add(httptest.NewRecorder(), add)
	svc.WaitIdle()

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/vocabulary/words", nil))
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp wordListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Words) != 1 || resp.Words[0].Word != "world" {
		t.Fatalf("words = %+v, want one entry for world", resp.Words)
	}
	if resp.Words[0].State != string(domain.StateCommitted) {
		t.Errorf("state = %q, want committed after WaitIdle", resp.Words[0].State)
	}
	if resp.Words[0].Translation == "" {
		t.Error("expected translation to be filled after commit")
	}
}

func TestVocabularyRemove_UnknownItem(t *testing.T) {
	t.Parallel()

	h, _ := newVocabHandler(t, &fakeVocabularyRepo{})

	req := withUser(httptest.NewRequest(http.MethodDelete, "/api/vocabulary/words/temp_123", nil))
	req.SetPathValue("id", "temp_123")
	rec := httptest.NewRecorder()

	h.Remove(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestVocabularyRemove_RemoteFailureIsBadGateway(t *testing.T) {
	t.Parallel()

	repo := &fakeVocabularyRepo{}
	h, svc := newVocabHandler(t, repo)

	userID := uuid.New()
	ctx := ctxutil.WithUserID(context.Background(), userID)
	add := httptest.NewRequest(http.MethodPost, "/api/vocabulary/words",
		strings.NewReader(`{"word":"gone","videoId":"vid-1"}`)).WithContext(ctx)
	h.Add(httptest.NewRecorder(), add)
	svc.WaitIdle()

	items := svc.Items()
	if len(items) != 1 {
		t.Fatalf("items = %+v, want one committed entry", items)
	}

	repo.deleteErr = errors.New("connection reset")
	req := httptest.NewRequest(http.MethodDelete, "/api/vocabulary/words/"+items[0].ID, nil).WithContext(ctx)
	req.SetPathValue("id", items[0].ID)
	rec := httptest.NewRecorder()

	h.Remove(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadGateway)
	}
	if got := svc.Items(); len(got) != 1 {
		t.Errorf("items after failed delete = %+v, want the entry restored", got)
	}
}
