// Package synthesis produces a natural-language answer from a query and a
// context window of selected asset content.
//
// The failure policy is the mirror image of retrieval's: an unconfigured
// backend yields a deterministic diagnostic answer (never an error), but a
// configured backend failing mid-call propagates. Substituting a placebo
// answer for a real generation failure would mislead the caller; substituting
// one for missing credentials keeps credential-less deployments usable.
package synthesis

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

const (
	// previewCap bounds the context prefix embedded in the no-LLM preview.
	previewCap = 200
	// diagnosticCap bounds the context prefix embedded in the unconfigured
	// diagnostic answer.
	diagnosticCap = 100
)

// Service synthesizes answers over a context window.
type Service struct {
	backends Backends
	logger   *zap.Logger
}

// New creates an answer synthesizer.
func New(backends Backends, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{backends: backends, logger: logger}
}

// Answer produces an answer for the query over the given context window.
// retrieved is the number of assets the context was built from.
//
// With useLLM false the result is a deterministic, backend-free preview of
// the retrieved content. Repeated calls with identical input produce
// byte-identical output.
func (s *Service) Answer(
	ctx context.Context, query, contextBlock string, retrieved int, useLLM bool, model string,
) (string, error) {
	if !useLLM {
		return fmt.Sprintf(
			"Retrieved %d relevant documents. Content preview: %s...",
			retrieved, truncate(contextBlock, previewCap),
		), nil
	}

	backend := s.backends.ForModel(model)
	if backend == nil || !backend.Configured() {
		name := "generation"
		if backend != nil {
			name = backend.Name()
		}
		s.logger.Info("generation backend not configured, returning diagnostic answer",
			zap.String("model", model))
		return fmt.Sprintf(
			"%s backend not configured. Context: %s... Query: %s",
			name, truncate(contextBlock, diagnosticCap), query,
		), nil
	}

	answer, err := backend.Generate(ctx, buildAnswerPrompt(query, contextBlock))
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	return answer, nil
}

// buildAnswerPrompt assembles the shared context-plus-question prompt. Family
// specific framing (system messages, sampling) lives in the adapters.
func buildAnswerPrompt(query, contextBlock string) string {
	return fmt.Sprintf(
		"Context:\n%s\n\nQuestion: %s\n\nAnswer concisely and directly based on the context. Avoid unnecessary words.",
		contextBlock, query,
	)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
