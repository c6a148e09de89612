// Package rag composes relevance selection and answer synthesis into the
// retrieve-and-answer pipeline.
package rag

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kitvault/kitvault/internal/domain"
	domasset "github.com/kitvault/kitvault/internal/domain/asset"
	"github.com/kitvault/kitvault/internal/domain/query"
)

// contextSeparator joins selected asset contents into the context window.
const contextSeparator = "\n---\n"

// Answer is the pipeline result: the answer text and the IDs of the assets it
// was grounded in, in selection order.
type Answer struct {
	Text    string
	Sources []string
}

// Service orchestrates the RAG pipeline.
type Service struct {
	selector Selector
	synth    Synthesizer
	logger   *zap.Logger
}

// New creates a RAG pipeline service.
func New(selector Selector, synth Synthesizer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{selector: selector, synth: synth, logger: logger}
}

// RetrieveAndAnswer selects the assets relevant to the query, builds a
// context window from them, and synthesizes an answer attributed to those
// assets. Callers are expected to reject empty kits before invoking the
// pipeline; the check here is defensive.
func (s *Service) RetrieveAndAnswer(
	ctx context.Context, q query.Query, assets []domasset.Asset,
) (Answer, error) {
	if len(assets) == 0 {
		return Answer{}, domain.ErrEmptyCollection
	}

	excerpts := make([]string, len(assets))
	for i := range assets {
		excerpts[i] = assets[i].Content()
	}

	indices := s.selector.Select(ctx, q.Text(), excerpts, q.UseLLM(), q.Model())

	// An empty selection over a non-empty kit narrows to the first asset:
	// answering from nothing is worse than answering from too little.
	if len(indices) == 0 {
		indices = []int{0}
	}

	// The scoring backend may list indices outside the kit; drop them rather
	// than failing the query.
	indices = boundsFilter(indices, len(assets))
	if len(indices) == 0 {
		indices = []int{0}
	}

	selected := make([]string, len(indices))
	sources := make([]string, len(indices))
	for i, idx := range indices {
		selected[i] = assets[idx].Content()
		sources[i] = assets[idx].ID()
	}

	answer, err := s.synth.Answer(
		ctx, q.Text(), strings.Join(selected, contextSeparator),
		len(indices), q.UseLLM(), q.Model(),
	)
	if err != nil {
		return Answer{}, fmt.Errorf("synthesize answer: %w", err)
	}

	s.logger.Debug("rag query answered",
		zap.Int("assets", len(assets)),
		zap.Int("selected", len(indices)),
		zap.String("mode", string(q.Mode())),
	)

	return Answer{Text: answer, Sources: sources}, nil
}

// boundsFilter drops out-of-range and duplicate indices, preserving order.
func boundsFilter(indices []int, n int) []int {
	seen := make(map[int]struct{}, len(indices))
	kept := indices[:0]
	for _, idx := range indices {
		if idx < 0 || idx >= n {
			continue
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		kept = append(kept, idx)
	}
	return kept
}
