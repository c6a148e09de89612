package synthesis

import "github.com/kitvault/kitvault/internal/domain"

// Backends resolves a model name to a generation backend family.
type Backends interface {
	ForModel(model string) domain.Backend
}
