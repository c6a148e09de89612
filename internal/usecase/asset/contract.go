package asset

import (
	"context"

	domasset "github.com/kitvault/kitvault/internal/domain/asset"
	domkit "github.com/kitvault/kitvault/internal/domain/kit"
	domws "github.com/kitvault/kitvault/internal/domain/workspace"
)

// Repository defines the storage contract for assets.
type Repository interface {
	Save(ctx context.Context, a domasset.Asset) error
	Get(ctx context.Context, id string) (domasset.Asset, error)
	GetMulti(ctx context.Context, ids []string) ([]domasset.Asset, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]domasset.Asset, error)
	Delete(ctx context.Context, id string) error
}

// WorkspaceReader reads workspaces for existence checks.
type WorkspaceReader interface {
	Get(ctx context.Context, id string) (domws.Workspace, error)
}

// KitRepository is the kit store surface needed to detach deleted assets.
type KitRepository interface {
	List(ctx context.Context, workspaceID string) ([]domkit.Kit, error)
	Save(ctx context.Context, k domkit.Kit) error
}
