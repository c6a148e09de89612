package health

import (
	"context"

	"github.com/kitvault/kitvault/internal/domain"
)

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// Backends lists the registered backend families for configuration checks.
type Backends interface {
	All() []domain.Backend
}
