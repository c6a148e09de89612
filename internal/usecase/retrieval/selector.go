// Package retrieval selects the subset of assets relevant to a query.
//
// Selection is deliberately failure-proof: when the scoring backend is
// missing, erroring, or returns garbage, the selector degrades to "use every
// asset" rather than losing the answer. A failed selection is recoverable by
// over-inclusion; a failed answer is not (see usecase/synthesis).
package retrieval

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kitvault/kitvault/internal/metrics"
)

const (
	// excerptCap bounds each excerpt's contribution to the scoring prompt.
	excerptCap = 200

	documentDelimiter = "\n---DOCUMENT START---\n"
)

// Service chooses relevant asset indices for a query.
type Service struct {
	backends Backends
	logger   *zap.Logger
}

// New creates a relevance selector.
func New(backends Backends, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{backends: backends, logger: logger}
}

// Select returns the indices of excerpts relevant to the query, in the order
// the scoring backend listed them. It never fails: every backend problem
// degrades to returning all indices in input order. With useLLM false the
// backend is skipped entirely and all indices are returned.
func (s *Service) Select(ctx context.Context, query string, excerpts []string, useLLM bool, model string) []int {
	if len(excerpts) == 0 {
		return nil
	}
	if !useLLM {
		return allIndices(len(excerpts))
	}

	backend := s.backends.ForModel(model)
	if backend == nil || !backend.Configured() {
		metrics.SelectorFallbacksTotal.WithLabelValues("unconfigured").Inc()
		s.logger.Debug("scoring backend not configured, selecting all assets",
			zap.String("model", model))
		return allIndices(len(excerpts))
	}

	raw, err := backend.Score(ctx, buildScoringPrompt(query, excerpts))
	if err != nil {
		metrics.SelectorFallbacksTotal.WithLabelValues("backend_error").Inc()
		s.logger.Warn("relevance scoring failed, selecting all assets",
			zap.String("backend", backend.Name()),
			zap.Error(err))
		return allIndices(len(excerpts))
	}

	indices := parseIndices(raw)
	if len(indices) == 0 {
		metrics.SelectorFallbacksTotal.WithLabelValues("unparseable").Inc()
		s.logger.Warn("scoring response had no usable indices, selecting all assets",
			zap.String("backend", backend.Name()),
			zap.String("response", raw))
		return allIndices(len(excerpts))
	}

	return indices
}

// buildScoringPrompt labels each excerpt with its index and truncates it so
// the prompt stays bounded regardless of asset sizes.
func buildScoringPrompt(query string, excerpts []string) string {
	labeled := make([]string, len(excerpts))
	for i, e := range excerpts {
		labeled[i] = fmt.Sprintf("ID %d: %s...", i, truncate(e, excerptCap))
	}

	var b strings.Builder
	b.WriteString("You are a document retrieval expert. Given a query and document snippets, " +
		"identify which documents are most relevant. Return ONLY the document IDs " +
		"as a comma-separated list (e.g., '1,3,5').\n\n")
	b.WriteString("Query: ")
	b.WriteString(query)
	b.WriteString("\n\nDocuments:\n")
	b.WriteString(strings.Join(labeled, documentDelimiter))
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
