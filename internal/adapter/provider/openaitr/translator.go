// Package openaitr provides a translation.Translator backed by the OpenAI API.
package openaitr

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"

	"github.com/avelichko/lingtube-backend/internal/translation"
)

// Compile-time assertion that Translator satisfies the translation interface.
var _ translation.Translator = (*Translator)(nil)

// Translator implements translation.Translator using OpenAI chat completions.
type Translator struct {
	client oai.Client
	model  string
	log    *slog.Logger
}

// config holds optional configuration for the translator.
type config struct {
	baseURL string
	timeout time.Duration
}

// Option is a functional option for Translator.
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

// New constructs a new OpenAI-backed Translator.
func New(apiKey, model string, logger *slog.Logger, opts ...Option) (*Translator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openaitr: apiKey must not be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("openaitr: model must not be empty")
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

	return &Translator{
		client: oai.NewClient(reqOpts...),
		model:  model,
		log:    logger.With("adapter", "openaitr"),
	}, nil
}

// Translate translates req.Text from req.SourceLang to req.TargetLang.
// When req.Context is set, the model sees the surrounding sentence so it can
// pick the contextually right meaning.
func (t *Translator) Translate(ctx context.Context, req translation.TranslateRequest) (string, error) {
	messages := []oai.ChatCompletionMessageParamUnion{
		oai.SystemMessage(systemPrompt(req.SourceLang, req.TargetLang)),
		oai.UserMessage(userPrompt(req)),
	}

	resp, err := t.client.Chat.Completions.New(ctx, oai.ChatCompletionNewParams{
		Model:       shared.ChatModel(t.model),
		Messages:    messages,
		Temperature: param.NewOpt(0.2),
	})
	if err != nil {
		return "", fmt.Errorf("openaitr: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openaitr: empty choices in response")
	}

	translated := strings.TrimSpace(resp.Choices[0].Message.Content)
	if translated == "" {
		return "", fmt.Errorf("openaitr: empty translation for %q", req.Text)
	}

	t.log.DebugContext(ctx, "translated",
		slog.String("text", req.Text),
		slog.Int("result_len", len(translated)),
	)

	return translated, nil
}

func systemPrompt(sourceLang, targetLang string) string {
	return fmt.Sprintf(
		"You are a translation engine. Translate the user's text from %s to %s. "+
			"Reply with the translation only, no explanations and no quotes.",
		sourceLang, targetLang,
	)
}

func userPrompt(req translation.TranslateRequest) string {
	if req.Context == "" {
		return req.Text
	}
	return fmt.Sprintf("Text: %s\nIt appears in this sentence: %s", req.Text, req.Context)
}
