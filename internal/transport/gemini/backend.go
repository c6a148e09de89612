// Package gemini adapts the Gemini API to the domain.Backend contract.
package gemini

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/kitvault/kitvault/internal/domain"
	"github.com/kitvault/kitvault/internal/metrics"
)

// DefaultModel is used when the config names no Gemini model.
const DefaultModel = "gemini-1.5-flash"

// Compile-time check: Backend implements domain.Backend.
var _ domain.Backend = (*Backend)(nil)

// Backend is a generation provider using the Gemini API.
type Backend struct {
	client     *genai.Client
	model      string
	configured bool
	logger     *zap.Logger
}

// Config holds the Gemini backend settings.
type Config struct {
	APIKey string
	Model  string
	Logger *zap.Logger
}

// NewBackend creates a Gemini backend. A missing API key produces an
// unconfigured backend: Configured() reports false and no client calls are
// made through it.
func NewBackend(ctx context.Context, cfg *Config) (*Backend, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	b := &Backend{model: cfg.Model, logger: logger}
	if b.model == "" {
		b.model = DefaultModel
	}
	if cfg.APIKey == "" {
		return b, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	b.client = client
	b.configured = true
	return b, nil
}

// Name implements domain.Backend.
func (b *Backend) Name() string { return "gemini" }

// Configured implements domain.Backend without a network call.
func (b *Backend) Configured() bool { return b.configured }

// Score sends a relevance-scoring prompt. Gemini has no separate system
// channel here; the prompt carries the full instruction.
func (b *Backend) Score(ctx context.Context, prompt string) (string, error) {
	return b.generate(ctx, "score", prompt)
}

// Generate sends an answer-synthesis prompt.
func (b *Backend) Generate(ctx context.Context, prompt string) (string, error) {
	return b.generate(ctx, "generate", prompt)
}

func (b *Backend) generate(ctx context.Context, op, prompt string) (string, error) {
	if !b.configured {
		return "", fmt.Errorf("gemini backend not configured: %w", domain.ErrGenerationBackend)
	}

	start := time.Now()

	resp, err := b.client.Models.GenerateContent(ctx, b.model, genai.Text(prompt), nil)

	duration := time.Since(start)

	if err != nil {
		metrics.LLMRequestsTotal.WithLabelValues(b.Name(), b.model, op, "error").Inc()
		metrics.LLMErrorsTotal.WithLabelValues(b.Name(), b.model, op, "api_error").Inc()
		return "", fmt.Errorf("gemini API error: %v: %w", err, domain.ErrGenerationBackend)
	}

	text := resp.Text()
	if text == "" {
		metrics.LLMRequestsTotal.WithLabelValues(b.Name(), b.model, op, "error").Inc()
		metrics.LLMErrorsTotal.WithLabelValues(b.Name(), b.model, op, "empty_response").Inc()
		return "", fmt.Errorf("empty gemini response: %w", domain.ErrGenerationBackend)
	}

	metrics.LLMRequestsTotal.WithLabelValues(b.Name(), b.model, op, "success").Inc()
	metrics.LLMRequestDuration.WithLabelValues(b.Name(), b.model, op).Observe(duration.Seconds())

	return text, nil
}
