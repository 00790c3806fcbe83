package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/avelichko/lingtube-backend/internal/adapter/provider/quizgen"
	"github.com/avelichko/lingtube-backend/internal/domain"
	"github.com/avelichko/lingtube-backend/internal/provider"
	"github.com/avelichko/lingtube-backend/pkg/ctxutil"
)

// quizGenerator defines the minimal interface needed by QuizHandler.
type quizGenerator interface {
	GenerateQuiz(ctx context.Context, req quizgen.QuizRequest) (*provider.QuizResult, error)
	SpeechFeedback(ctx context.Context, expected, spoken string) (*provider.FeedbackResult, error)
}

// QuizHandler serves quiz generation and speech feedback. The generator may
// be nil when the feature is disabled (no API key configured).
type QuizHandler struct {
	gen          quizGenerator
	sessions     sessionManager
	vocab        vocabularyProvider
	maxQuestions int
	log          *slog.Logger
}

// NewQuizHandler creates a QuizHandler.
func NewQuizHandler(gen quizGenerator, sessions sessionManager, vocab vocabularyProvider, maxQuestions int, logger *slog.Logger) *QuizHandler {
	return &QuizHandler{
		gen:          gen,
		sessions:     sessions,
		vocab:        vocab,
		maxQuestions: maxQuestions,
		log:          logger.With("handler", "quiz"),
	}
}

type quizGenerateRequest struct {
	Count int    `json:"count"`
	Level string `json:"level"`
}

type quizQuestionResponse struct {
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
}

type quizResponse struct {
	Questions []quizQuestionResponse `json:"questions"`
}

type feedbackRequest struct {
	Expected string `json:"expected"`
	Spoken   string `json:"spoken"`
}

type feedbackResponse struct {
	Score       int      `json:"score"`
	Feedback    string   `json:"feedback"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Generate handles POST /api/quiz. The quiz is built from the open
// session's transcript and the learner's saved words.
func (h *QuizHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if h.gen == nil {
		writeError(w, http.StatusServiceUnavailable, "quiz generation is disabled")
		return
	}

	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req quizGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Count < 0 || req.Count > h.maxQuestions {
		writeError(w, http.StatusBadRequest, "count out of range")
		return
	}

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

	var words []string
	for _, item := range h.vocab.ForUser(userID).Items() {
		words = append(words, item.Word)
	}

	result, err := h.gen.GenerateQuiz(r.Context(), quizgen.QuizRequest{
		TranscriptText: transcriptText(video),
		Words:          words,
		Level:          req.Level,
		NumQuestions:   req.Count,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	questions := make([]quizQuestionResponse, len(result.Questions))
	for i, q := range result.Questions {
		questions[i] = quizQuestionResponse{
			Prompt:      q.Prompt,
			Options:     q.Options,
			AnswerIndex: q.AnswerIndex,
		}
	}
	writeJSON(w, http.StatusOK, quizResponse{Questions: questions})
}

// Feedback handles POST /api/feedback.
func (h *QuizHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	if h.gen == nil {
		writeError(w, http.StatusServiceUnavailable, "speech feedback is disabled")
		return
	}

	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Expected) == "" || strings.TrimSpace(req.Spoken) == "" {
		writeError(w, http.StatusBadRequest, "expected and spoken are required")
		return
	}

	result, err := h.gen.SpeechFeedback(r.Context(), req.Expected, req.Spoken)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, feedbackResponse{
		Score:       result.Score,
		Feedback:    result.Feedback,
		Suggestions: result.Suggestions,
	})
}

func transcriptText(video *domain.Video) string {
	lines := make([]string, len(video.Transcript))
	for i, seg := range video.Transcript {
		lines[i] = seg.Text
	}
	return strings.Join(lines, "\n")
}
