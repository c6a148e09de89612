package workspace

import (
	"context"

	domasset "github.com/kitvault/kitvault/internal/domain/asset"
	domkit "github.com/kitvault/kitvault/internal/domain/kit"
	domshare "github.com/kitvault/kitvault/internal/domain/sharing"
	domws "github.com/kitvault/kitvault/internal/domain/workspace"
)

// Repository defines the storage contract for workspaces.
type Repository interface {
	Create(ctx context.Context, ws domws.Workspace) error
	Get(ctx context.Context, id string) (domws.Workspace, error)
	List(ctx context.Context) ([]domws.Workspace, error)
	Update(ctx context.Context, prev, next domws.Workspace) error
	Delete(ctx context.Context, ws domws.Workspace) error
}

// AssetRepository is the asset store surface needed for cascade deletes.
type AssetRepository interface {
	ListByWorkspace(ctx context.Context, workspaceID string) ([]domasset.Asset, error)
	Delete(ctx context.Context, id string) error
}

// KitRepository is the kit store surface needed for cascade deletes.
type KitRepository interface {
	List(ctx context.Context, workspaceID string) ([]domkit.Kit, error)
	Delete(ctx context.Context, id string) error
}

// LinkRepository is the sharing-link store surface needed for cascade deletes.
type LinkRepository interface {
	ListByKit(ctx context.Context, kitID string) ([]domshare.Link, error)
	Delete(ctx context.Context, l domshare.Link) error
}
