package chi

import (
	"time"

	domasset "github.com/kitvault/kitvault/internal/domain/asset"
	domkit "github.com/kitvault/kitvault/internal/domain/kit"
	domshare "github.com/kitvault/kitvault/internal/domain/sharing"
	domws "github.com/kitvault/kitvault/internal/domain/workspace"
)

// WorkspaceResponse is the JSON shape of a workspace.
type WorkspaceResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AssetResponse is the JSON shape of an asset.
type AssetResponse struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	AssetType   string    `json:"asset_type"`
	MimeType    string    `json:"mime_type"`
	FileSize    int64     `json:"file_size"`
	FilePath    string    `json:"file_path"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// KitResponse is the JSON shape of a kit.
type KitResponse struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	AssetIDs    []string  `json:"asset_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SharingLinkResponse is the JSON shape of a sharing link.
type SharingLinkResponse struct {
	ID        string     `json:"id"`
	KitID     string     `json:"kit_id"`
	Token     string     `json:"token"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func workspaceToDTO(ws domws.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		ID:          ws.ID(),
		Name:        ws.Name(),
		Description: ws.Description(),
		CreatedAt:   ws.CreatedAt().UTC(),
		UpdatedAt:   ws.UpdatedAt().UTC(),
	}
}

func assetToDTO(a domasset.Asset) AssetResponse {
	return AssetResponse{
		ID:          a.ID(),
		WorkspaceID: a.WorkspaceID(),
		Name:        a.Name(),
		Description: a.Description(),
		Content:     a.Content(),
		AssetType:   a.AssetType(),
		MimeType:    a.MimeType(),
		FileSize:    a.FileSize(),
		FilePath:    a.FilePath(),
		CreatedAt:   a.CreatedAt().UTC(),
		UpdatedAt:   a.UpdatedAt().UTC(),
	}
}

func kitToDTO(k domkit.Kit) KitResponse {
	ids := k.AssetIDs()
	if ids == nil {
		ids = []string{}
	}
	return KitResponse{
		ID:          k.ID(),
		WorkspaceID: k.WorkspaceID(),
		Name:        k.Name(),
		Description: k.Description(),
		AssetIDs:    ids,
		CreatedAt:   k.CreatedAt().UTC(),
		UpdatedAt:   k.UpdatedAt().UTC(),
	}
}

func linkToDTO(l domshare.Link) SharingLinkResponse {
	var expiresAt *time.Time
	if l.ExpiresAt() != nil {
		t := l.ExpiresAt().UTC()
		expiresAt = &t
	}
	return SharingLinkResponse{
		ID:        l.ID(),
		KitID:     l.KitID(),
		Token:     l.Token(),
		IsActive:  l.Active(),
		CreatedAt: l.CreatedAt().UTC(),
		ExpiresAt: expiresAt,
	}
}

func assetsToDTO(assets []domasset.Asset) []AssetResponse {
	items := make([]AssetResponse, len(assets))
	for i := range assets {
		items[i] = assetToDTO(assets[i])
	}
	return items
}
