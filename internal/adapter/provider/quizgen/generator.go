// Package quizgen generates comprehension quizzes and speech feedback from
// transcript text using the OpenAI API. Model output is strict JSON; anything
// that fails to parse or validate surfaces as domain.ErrBadSchema.
package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"

	"github.com/avelichko/lingtube-backend/internal/domain"
	"github.com/avelichko/lingtube-backend/internal/provider"
)

// Generator produces quizzes and speech feedback via OpenAI chat completions.
type Generator struct {
	client oai.Client
	model  string
	log    *slog.Logger
}

// config holds optional configuration for the generator.
type config struct {
	baseURL string
	timeout time.Duration
}

// Option is a functional option for Generator.
type Option func(*config)

// WithBaseURL overrides the default OpenAI API base URL. Primarily used in
// tests to point at a local mock server.
func WithBaseURL(url string) Option {
	return func(c *config) {
		c.baseURL = url
	}
}

// WithTimeout sets a per-request HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// New constructs a new Generator.
func New(apiKey, model string, logger *slog.Logger, opts ...Option) (*Generator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("quizgen: apiKey must not be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("quizgen: model must not be empty")
	}

	cfg := &config{}
	for _, o := range opts {
		o(cfg)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if cfg.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.baseURL))
	}
	if cfg.timeout > 0 {
		reqOpts = append(reqOpts, option.WithHTTPClient(&http.Client{
			Timeout: cfg.timeout,
		}))
	}

	return &Generator{
		client: oai.NewClient(reqOpts...),
		model:  model,
		log:    logger.With("adapter", "quizgen"),
	}, nil
}

// QuizRequest describes the material a quiz is generated from. Level is
// the learner's self-reported proficiency, free text such as "beginner".
type QuizRequest struct {
	TranscriptText string
	Words          []string
	Level          string
	NumQuestions   int
}

const quizSystemPrompt = `You generate language-learning quizzes. Reply with strict JSON only, no markdown, matching:
{"questions": [{"prompt": "...", "options": ["...", "..."], "answer_index": 0}]}
Each question has 2 to 4 options and exactly one correct answer.`

// GenerateQuiz builds a multiple-choice quiz over the transcript, preferring
// the learner's saved words when given.
func (g *Generator) GenerateQuiz(ctx context.Context, req QuizRequest) (*provider.QuizResult, error) {
	n := req.NumQuestions
	if n <= 0 {
		n = 5
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Create %d questions about this transcript:\n%s", n, req.TranscriptText)
	if len(req.Words) > 0 {
		fmt.Fprintf(&sb, "\nFocus on these words the learner saved: %s", strings.Join(req.Words, ", "))
	}
	if req.Level != "" {
		fmt.Fprintf(&sb, "\nThe learner's proficiency level is %s; match the difficulty to it.", req.Level)
	}

	content, err := g.complete(ctx, quizSystemPrompt, sb.String())
	if err != nil {
		return nil, err
	}

	result, err := parseQuiz(content)
	if err != nil {
		g.log.WarnContext(ctx, "quiz response rejected", slog.String("error", err.Error()))
		return nil, err
	}

	g.log.DebugContext(ctx, "quiz generated", slog.Int("questions", len(result.Questions)))
	return result, nil
}

const feedbackSystemPrompt = `You grade a language learner's spoken repetition of a transcript line. Reply with strict JSON only, no markdown, matching:
{"score": 85, "feedback": "...", "suggestions": ["..."]}
Score is an integer from 0 to 100. Feedback is one or two short sentences.
Suggestions are up to three short pronunciation or phrasing tips; an empty list is fine for a perfect repetition.`

// SpeechFeedback grades the learner's spoken text against the expected line.
func (g *Generator) SpeechFeedback(ctx context.Context, expected, spoken string) (*provider.FeedbackResult, error) {
	prompt := fmt.Sprintf("Expected line: %s\nLearner said: %s", expected, spoken)

	content, err := g.complete(ctx, feedbackSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	result, err := parseFeedback(content)
	if err != nil {
		g.log.WarnContext(ctx, "feedback response rejected", slog.String("error", err.Error()))
		return nil, err
	}

	return result, nil
}

func (g *Generator) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, oai.ChatCompletionNewParams{
		Model: shared.ChatModel(g.model),
		Messages: []oai.ChatCompletionMessageParamUnion{
			oai.SystemMessage(system),
			oai.UserMessage(user),
		},
		Temperature: param.NewOpt(0.4),
	})
	if err != nil {
		return "", fmt.Errorf("quizgen: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("quizgen: empty choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}

type quizPayload struct {
	Questions []struct {
		Prompt      string   `json:"prompt"`
		Options     []string `json:"options"`
		AnswerIndex int      `json:"answer_index"`
	} `json:"questions"`
}

// parseQuiz decodes and validates a quiz payload.
func parseQuiz(content string) (*provider.QuizResult, error) {
	var payload quizPayload
	if err := json.Unmarshal([]byte(stripFences(content)), &payload); err != nil {
		return nil, fmt.Errorf("quizgen: decode quiz: %v: %w", err, domain.ErrBadSchema)
	}
	if len(payload.Questions) == 0 {
		return nil, fmt.Errorf("quizgen: no questions: %w", domain.ErrBadSchema)
	}

	result := &provider.QuizResult{
		Questions: make([]provider.QuizQuestion, len(payload.Questions)),
	}
	for i, q := range payload.Questions {
		if q.Prompt == "" {
			return nil, fmt.Errorf("quizgen: question %d has no prompt: %w", i, domain.ErrBadSchema)
		}
		if len(q.Options) < 2 {
			return nil, fmt.Errorf("quizgen: question %d has %d options: %w", i, len(q.Options), domain.ErrBadSchema)
		}
		if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
			return nil, fmt.Errorf("quizgen: question %d answer index out of range: %w", i, domain.ErrBadSchema)
		}
		result.Questions[i] = provider.QuizQuestion{
			Prompt:      q.Prompt,
			Options:     q.Options,
			AnswerIndex: q.AnswerIndex,
		}
	}

	return result, nil
}

type feedbackPayload struct {
	Score       int      `json:"score"`
	Feedback    string   `json:"feedback"`
	Suggestions []string `json:"suggestions"`
}

// parseFeedback decodes and validates a feedback payload.
func parseFeedback(content string) (*provider.FeedbackResult, error) {
	var payload feedbackPayload
	if err := json.Unmarshal([]byte(stripFences(content)), &payload); err != nil {
		return nil, fmt.Errorf("quizgen: decode feedback: %v: %w", err, domain.ErrBadSchema)
	}
	if payload.Score < 0 || payload.Score > 100 {
		return nil, fmt.Errorf("quizgen: score %d out of range: %w", payload.Score, domain.ErrBadSchema)
	}
	if payload.Feedback == "" {
		return nil, fmt.Errorf("quizgen: empty feedback: %w", domain.ErrBadSchema)
	}

	return &provider.FeedbackResult{
		Score:       payload.Score,
		Feedback:    payload.Feedback,
		Suggestions: payload.Suggestions,
	}, nil
}

// stripFences removes a markdown code fence if the model wrapped its JSON in one.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
