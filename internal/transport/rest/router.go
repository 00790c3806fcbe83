package rest

import "net/http"

// RouterConfig holds the handlers wired into the router.
type RouterConfig struct {
	Session     *SessionHandler
	Ingest      *IngestHandler
	Vocabulary  *VocabularyHandler
	Translation *TranslationHandler
	Quiz        *QuizHandler
	History     *HistoryHandler
	Health      *HealthHandler
}

// NewRouter builds the route table.
func NewRouter(cfg RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/session", cfg.Session.Open)
	mux.HandleFunc("GET /api/session", cfg.Session.Get)
	mux.HandleFunc("DELETE /api/session", cfg.Session.Close)
	mux.HandleFunc("GET /api/session/segment", cfg.Session.Segment)
	mux.HandleFunc("GET /api/session/transcript", cfg.Session.Transcript)

	mux.HandleFunc("POST /api/videos/{id}/ingest", cfg.Ingest.Ingest)

	mux.HandleFunc("POST /api/vocabulary/words", cfg.Vocabulary.Add)
	mux.HandleFunc("GET /api/vocabulary/words", cfg.Vocabulary.List)
	mux.HandleFunc("DELETE /api/vocabulary/words/{id}", cfg.Vocabulary.Remove)

	mux.HandleFunc("POST /api/translations/toggle", cfg.Translation.Toggle)

	mux.HandleFunc("POST /api/quiz", cfg.Quiz.Generate)
	mux.HandleFunc("POST /api/feedback", cfg.Quiz.Feedback)

	mux.HandleFunc("POST /api/history", cfg.History.Record)
	mux.HandleFunc("GET /api/history", cfg.History.List)

	mux.HandleFunc("GET /health", cfg.Health.Health)
	mux.HandleFunc("GET /health/live", cfg.Health.Live)
	mux.HandleFunc("GET /health/ready", cfg.Health.Ready)

	return mux
}
