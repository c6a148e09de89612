package retrieval

import "github.com/kitvault/kitvault/internal/domain"

// Backends resolves a model name to a scoring backend family.
type Backends interface {
	ForModel(model string) domain.Backend
}
