// Package ytranscript fetches pre-processed video transcripts from the
// transcript API.
package ytranscript

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/avelichko/lingtube-backend/internal/domain"
	"github.com/avelichko/lingtube-backend/internal/provider"
)

// Provider fetches transcripts over HTTP.
type Provider struct {
	baseURL    string
	language   string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider for the given API base URL. An empty
// language defaults to English.
func NewProvider(baseURL, language string, logger *slog.Logger) *Provider {
	if language == "" {
		language = "en"
	}
	return &Provider{
		baseURL:    baseURL,
		language:   language,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logger.With("adapter", "ytranscript"),
	}
}

// FetchTranscript fetches the transcript for the given video.
// Returns domain.ErrTranscriptUnavailable when no transcript exists (HTTP 404).
func (p *Provider) FetchTranscript(ctx context.Context, videoID string) (*provider.TranscriptResult, error) {
	reqURL := fmt.Sprintf("%s/transcripts/%s?lang=%s", p.baseURL, url.PathEscape(videoID), url.QueryEscape(p.language))

	p.log.DebugContext(ctx, "transcript request", slog.String("video_id", videoID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("ytranscript: create request: %w", err)
	}

	resp, err := p.doWithRetry(ctx, req, videoID)
	if err != nil {
		p.log.ErrorContext(ctx, "transcript request failed", slog.String("video_id", videoID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("ytranscript: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("ytranscript: video %s: %w", videoID, domain.ErrTranscriptUnavailable)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ytranscript: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ytranscript: read body: %w", err)
	}

	var payload apiTranscript
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("ytranscript: decode json: %w", err)
	}

	result := mapAPIResponse(videoID, p.language, payload)

	p.log.DebugContext(ctx, "transcript response",
		slog.String("video_id", videoID),
		slog.Int("status", resp.StatusCode),
		slog.Int("segments", len(result.Segments)),
	)

	return result, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request, videoID string) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "transcript retry", slog.String("video_id", videoID), slog.String("reason", reason))

	// Close body from the failed attempt before retrying.
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	time.Sleep(500 * time.Millisecond)

	resp, err = p.httpClient.Do(req)
	return resp, err
}

// mapAPIResponse converts the API payload into a provider.TranscriptResult.
// Segments missing text are dropped; offsets are kept as reported, callers
// normalize ordering.
func mapAPIResponse(videoID, language string, payload apiTranscript) *provider.TranscriptResult {
	result := &provider.TranscriptResult{
		VideoID:  videoID,
		Title:    payload.Title,
		Language: language,
		Segments: make([]provider.SegmentResult, 0, len(payload.Segments)),
	}

	for _, seg := range payload.Segments {
		if seg.Text == "" {
			continue
		}
		result.Segments = append(result.Segments, provider.SegmentResult{
			Text:       seg.Text,
			OffsetMs:   seg.OffsetMs,
			DurationMs: seg.DurationMs,
		})
	}

	return result
}
