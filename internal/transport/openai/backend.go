// Package openai adapts the OpenAI-compatible chat completion API to the
// domain.Backend contract.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kitvault/kitvault/internal/domain"
	"github.com/kitvault/kitvault/internal/metrics"
)

const (
	scoringSystemPrompt = "You are a document retrieval expert."
	answerSystemPrompt  = "You are a helpful assistant that answers questions based on provided context. " +
		"Be extremely concise and direct. Do not be verbose."

	// scoringModel is pinned: index-list extraction needs a cheap, reliable
	// model regardless of which generation model the caller asked for.
	scoringModel = "gpt-3.5-turbo"

	scoringTemperature = 0.2
	scoringMaxTokens   = 50
	answerTemperature  = 0.7
	answerMaxTokens    = 300
)

// Compile-time check: Backend implements domain.Backend.
var _ domain.Backend = (*Backend)(nil)

// Backend is a generation provider using the OpenAI-compatible API.
type Backend struct {
	client     *openai.Client
	model      string
	configured bool
	logger     *zap.Logger
}

// Config holds the OpenAI backend settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

// NewBackend creates an OpenAI-compatible backend. A missing API key produces
// an unconfigured backend: Configured() reports false and no client calls are
// made through it.
func NewBackend(cfg *Config) *Backend {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	b := &Backend{model: cfg.Model, logger: logger}
	if cfg.Model == "" {
		b.model = openai.GPT3Dot5Turbo
	}
	if cfg.APIKey == "" {
		return b
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	b.client = openai.NewClientWithConfig(clientCfg)
	b.configured = true
	return b
}

// Name implements domain.Backend.
func (b *Backend) Name() string { return "openai" }

// Configured implements domain.Backend without a network call.
func (b *Backend) Configured() bool { return b.configured }

// Score sends a relevance-scoring prompt with low temperature and a tight
// completion cap, returning the raw response text.
func (b *Backend) Score(ctx context.Context, prompt string) (string, error) {
	return b.complete(ctx, "score", openai.ChatCompletionRequest{
		Model: scoringModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: scoringSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: scoringTemperature,
		MaxTokens:   scoringMaxTokens,
	})
}

// Generate sends an answer-synthesis prompt using the configured model.
func (b *Backend) Generate(ctx context.Context, prompt string) (string, error) {
	return b.complete(ctx, "generate", openai.ChatCompletionRequest{
		Model: b.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: answerSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: answerTemperature,
		MaxTokens:   answerMaxTokens,
	})
}

func (b *Backend) complete(ctx context.Context, op string, req openai.ChatCompletionRequest) (string, error) {
	if !b.configured {
		return "", fmt.Errorf("openai backend not configured: %w", domain.ErrGenerationBackend)
	}

	start := time.Now()

	resp, err := b.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.LLMRequestsTotal.WithLabelValues(b.Name(), req.Model, op, "error").Inc()
		metrics.LLMErrorsTotal.WithLabelValues(b.Name(), req.Model, op, "api_error").Inc()
		return "", parseAPIError(err)
	}

	if len(resp.Choices) == 0 {
		metrics.LLMRequestsTotal.WithLabelValues(b.Name(), req.Model, op, "error").Inc()
		metrics.LLMErrorsTotal.WithLabelValues(b.Name(), req.Model, op, "empty_response").Inc()
		return "", fmt.Errorf("empty completion response: %w", domain.ErrGenerationBackend)
	}

	metrics.LLMRequestsTotal.WithLabelValues(b.Name(), req.Model, op, "success").Inc()
	metrics.LLMRequestDuration.WithLabelValues(b.Name(), req.Model, op).Observe(duration.Seconds())

	return resp.Choices[0].Message.Content, nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrGenerationBackend for correct 502 mapping.
func parseAPIError(err error) error {
	wrap := domain.ErrGenerationBackend

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail != "" {
			return fmt.Errorf("openai API error %d: %s: %w",
				reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("openai API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("openai API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("openai request failed: %w", wrap)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
