package query

import "fmt"

// Mode selects how relevant assets are chosen for a query.
type Mode string

const (
	// LLM asks a scoring backend to pick relevant assets.
	LLM Mode = "llm"
	// Raw skips backends entirely: every asset is selected and the answer is
	// a deterministic content preview.
	Raw Mode = "raw"
)

// DefaultModel is used when the caller names no generation model.
const DefaultModel = "gemini-pro"

// Query is a single RAG question (ephemeral, one per request).
type Query struct {
	text  string
	mode  Mode
	model string
}

// New validates and creates a Query. An empty model falls back to DefaultModel.
func New(text string, mode Mode, model string) (Query, error) {
	if text == "" {
		return Query{}, fmt.Errorf("query text is required")
	}
	switch mode {
	case LLM, Raw:
	default:
		return Query{}, fmt.Errorf("unsupported query mode: %s", mode)
	}
	if model == "" {
		model = DefaultModel
	}
	return Query{text: text, mode: mode, model: model}, nil
}

// Text returns the free-form question.
func (q *Query) Text() string { return q.text }

// Mode returns the selection mode.
func (q *Query) Mode() Mode { return q.mode }

// UseLLM reports whether backends should be consulted.
func (q *Query) UseLLM() bool { return q.mode == LLM }

// Model returns the generation model name.
func (q *Query) Model() string { return q.model }
