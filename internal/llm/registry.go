// Package llm routes model names to backend families.
package llm

import (
	"strings"

	"github.com/kitvault/kitvault/internal/domain"
)

// Registry resolves a model name to a backend family by name-prefix matching.
// It is assembled once at startup and read-only afterwards, so it is safe for
// concurrent use.
type Registry struct {
	prefixes []prefixEntry
	fallback domain.Backend
}

type prefixEntry struct {
	prefix  string
	backend domain.Backend
}

// NewRegistry creates a registry with the given default backend family, used
// for every model name no prefix claims.
func NewRegistry(fallback domain.Backend) *Registry {
	return &Registry{fallback: fallback}
}

// WithPrefix maps a model-name prefix (e.g. "gemini") to a backend family.
// Prefixes are matched in registration order.
func (r *Registry) WithPrefix(prefix string, backend domain.Backend) *Registry {
	r.prefixes = append(r.prefixes, prefixEntry{prefix: prefix, backend: backend})
	return r
}

// ForModel returns the backend family for a model name. Returns nil only when
// no prefix matches and no default is registered.
func (r *Registry) ForModel(model string) domain.Backend {
	for _, e := range r.prefixes {
		if strings.HasPrefix(model, e.prefix) {
			return e.backend
		}
	}
	return r.fallback
}

// All returns each registered backend family once, default first.
func (r *Registry) All() []domain.Backend {
	var out []domain.Backend
	seen := make(map[string]struct{})
	if r.fallback != nil {
		out = append(out, r.fallback)
		seen[r.fallback.Name()] = struct{}{}
	}
	for _, e := range r.prefixes {
		if _, ok := seen[e.backend.Name()]; ok {
			continue
		}
		seen[e.backend.Name()] = struct{}{}
		out = append(out, e.backend)
	}
	return out
}
