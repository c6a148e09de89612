package sharing

import (
	"context"

	domkit "github.com/kitvault/kitvault/internal/domain/kit"
	domshare "github.com/kitvault/kitvault/internal/domain/sharing"
)

// Repository defines the storage contract for sharing links.
type Repository interface {
	Save(ctx context.Context, l domshare.Link) error
	Get(ctx context.Context, id string) (domshare.Link, error)
	GetByToken(ctx context.Context, token string) (domshare.Link, error)
	ListByKit(ctx context.Context, kitID string) ([]domshare.Link, error)
	Delete(ctx context.Context, l domshare.Link) error
}

// KitReader reads kits for existence checks and shared access.
type KitReader interface {
	Get(ctx context.Context, id string) (domkit.Kit, error)
}
