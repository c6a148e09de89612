package kit

import (
	"context"

	domasset "github.com/kitvault/kitvault/internal/domain/asset"
	domkit "github.com/kitvault/kitvault/internal/domain/kit"
	domshare "github.com/kitvault/kitvault/internal/domain/sharing"
	domws "github.com/kitvault/kitvault/internal/domain/workspace"
)

// Repository defines the storage contract for kits.
type Repository interface {
	Save(ctx context.Context, k domkit.Kit) error
	Get(ctx context.Context, id string) (domkit.Kit, error)
	List(ctx context.Context, workspaceID string) ([]domkit.Kit, error)
	Delete(ctx context.Context, id string) error
}

// WorkspaceReader reads workspaces for existence checks.
type WorkspaceReader interface {
	Get(ctx context.Context, id string) (domws.Workspace, error)
}

// AssetReader reads assets for membership resolution.
type AssetReader interface {
	GetMulti(ctx context.Context, ids []string) ([]domasset.Asset, error)
}

// LinkRepository is the sharing-link store surface needed for cascade deletes.
type LinkRepository interface {
	ListByKit(ctx context.Context, kitID string) ([]domshare.Link, error)
	Delete(ctx context.Context, l domshare.Link) error
}
