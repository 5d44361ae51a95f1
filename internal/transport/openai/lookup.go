// Package openai implements the part lookup integration on an OpenAI-compatible chat API.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/partpilot/internal/domain"
	"github.com/kailas-cloud/partpilot/internal/domain/part"
	"github.com/kailas-cloud/partpilot/internal/metrics"
)

// Compile-time check: Lookup implements domain.PartLookup.
var _ domain.PartLookup = (*Lookup)(nil)

// Lookup asks a chat model for part candidates in JSON mode.
type Lookup struct {
	client   *openai.Client
	model    string
	user     string
	provider string
	logger   *zap.Logger
}

// Config holds the lookup provider settings.
type Config struct {
	APIKey   string
	BaseURL  string
	Model    string
	User     string
	Provider string
	Timeout  time.Duration // whole-request timeout; 0 means none
	Logger   *zap.Logger
}

// NewLookup creates an OpenAI-compatible part lookup.
func NewLookup(cfg *Config) *Lookup {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Lookup{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    cfg.Model,
		user:     cfg.User,
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}
}

// payload is the JSON object the prompt asks the model to produce.
type payload struct {
	Parts []part.Part `json:"parts"`
}

// Lookup implements domain.PartLookup. One attempt, no retries.
func (l *Lookup) Lookup(ctx context.Context, prompt string) (domain.LookupResult, error) {
	req := openai.ChatCompletionRequest{
		Model: l.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		User: l.user,
	}

	start := time.Now()
	resp, err := l.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		l.fail("api_error")
		return domain.LookupResult{}, parseAPIError(err)
	}
	if len(resp.Choices) == 0 {
		l.fail("empty_response")
		return domain.LookupResult{}, fmt.Errorf("empty lookup response: %w", domain.ErrIntegration)
	}

	var p payload
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &p); err != nil {
		l.fail("malformed_response")
		l.logger.Warn("Malformed lookup response",
			zap.String("finish_reason", string(resp.Choices[0].FinishReason)),
			zap.Error(err),
		)
		return domain.LookupResult{}, fmt.Errorf("decode lookup response: %v: %w", err, domain.ErrIntegration)
	}

	metrics.LookupRequestsTotal.WithLabelValues(l.provider, l.model, "success").Inc()
	metrics.LookupRequestDuration.WithLabelValues(l.provider, l.model).Observe(duration.Seconds())
	if resp.Usage.TotalTokens > 0 {
		metrics.LookupTokensTotal.WithLabelValues(l.provider, l.model, "prompt").Add(float64(resp.Usage.PromptTokens))
		metrics.LookupTokensTotal.WithLabelValues(l.provider, l.model, "completion").Add(float64(resp.Usage.CompletionTokens))
		metrics.LookupTokensTotal.WithLabelValues(l.provider, l.model, "total").Add(float64(resp.Usage.TotalTokens))
	}

	return domain.LookupResult{
		Parts:        part.NormalizeAll(p.Parts),
		PromptTokens: resp.Usage.PromptTokens,
		TotalTokens:  resp.Usage.TotalTokens,
	}, nil
}

func (l *Lookup) fail(errorType string) {
	metrics.LookupRequestsTotal.WithLabelValues(l.provider, l.model, "error").Inc()
	metrics.LookupErrorsTotal.WithLabelValues(l.provider, l.model, errorType).Inc()
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (l *Lookup) HealthCheck(ctx context.Context) error {
	if _, err := l.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors wrap domain.ErrIntegration for correct 502 mapping.
func parseAPIError(err error) error {
	wrap := domain.ErrIntegration

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if detail := extractDetail(reqErr.Body); detail != "" {
			return fmt.Errorf("lookup API error %d: %s: %w", reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("lookup API error %d: %s: %w", reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("lookup API error %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("lookup request: %w: %w", err, wrap)
	}
	return fmt.Errorf("lookup request failed: %v: %w", err, wrap)
}

// extractDetail reads the "detail" field some OpenAI-compatible gateways use for errors.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
