package rag

import "context"

// Selector chooses relevant asset indices for a query.
type Selector interface {
	Select(ctx context.Context, query string, excerpts []string, useLLM bool, model string) []int
}

// Synthesizer produces an answer from a query and a context window.
type Synthesizer interface {
	Answer(ctx context.Context, query, contextBlock string, retrieved int, useLLM bool, model string) (string, error)
}
