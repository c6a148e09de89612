package domain

import "context"

// Backend is the shared text-model contract between layers. One implementation
// per backend family (OpenAI-compatible, Gemini), resolved by model name.
type Backend interface {
	// Name returns the backend family name (e.g. "openai", "gemini").
	Name() string

	// Configured reports whether the backend has credentials and can be
	// invoked. Must not perform a network call: the unconfigured fallback
	// paths in retrieval and synthesis rely on a cheap check.
	Configured() bool

	// Score sends a relevance-scoring prompt and returns the raw textual
	// response. The caller parses it; the backend makes no format guarantees.
	Score(ctx context.Context, prompt string) (string, error)

	// Generate sends an answer-synthesis prompt and returns the model output.
	Generate(ctx context.Context, prompt string) (string, error)
}
