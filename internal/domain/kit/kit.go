package kit

import (
	"fmt"
	"time"
)

// Kit is a named, ordered selection of assets within a workspace. The same
// asset may belong to any number of kits (immutable value object).
type Kit struct {
	id          string
	workspaceID string
	name        string
	description string
	assetIDs    []string
	createdAt   time.Time
	updatedAt   time.Time
}

// New validates and creates a Kit.
func New(id, workspaceID, name, description string, assetIDs []string, now time.Time) (Kit, error) {
	if id == "" {
		return Kit{}, fmt.Errorf("kit ID is required")
	}
	if workspaceID == "" {
		return Kit{}, fmt.Errorf("workspace ID is required")
	}
	if name == "" {
		return Kit{}, fmt.Errorf("kit name is required")
	}
	return Kit{
		id: id, workspaceID: workspaceID, name: name, description: description,
		assetIDs: dedupe(assetIDs), createdAt: now, updatedAt: now,
	}, nil
}

// Reconstruct creates a Kit without validation (storage hydration).
func Reconstruct(
	id, workspaceID, name, description string, assetIDs []string,
	createdAt, updatedAt time.Time,
) Kit {
	return Kit{
		id: id, workspaceID: workspaceID, name: name, description: description,
		assetIDs: assetIDs, createdAt: createdAt, updatedAt: updatedAt,
	}
}

// ID returns the kit identifier.
func (k *Kit) ID() string { return k.id }

// WorkspaceID returns the owning workspace identifier.
func (k *Kit) WorkspaceID() string { return k.workspaceID }

// Name returns the kit name.
func (k *Kit) Name() string { return k.name }

// Description returns the kit description.
func (k *Kit) Description() string { return k.description }

// AssetIDs returns the member asset identifiers in membership order.
func (k *Kit) AssetIDs() []string { return k.assetIDs }

// CreatedAt returns the creation timestamp.
func (k *Kit) CreatedAt() time.Time { return k.createdAt }

// UpdatedAt returns the last modification timestamp.
func (k *Kit) UpdatedAt() time.Time { return k.updatedAt }

// Update returns a copy with non-zero fields replaced. A nil assetIDs keeps
// the current membership; an empty non-nil slice clears it.
func (k *Kit) Update(name, description string, assetIDs []string, now time.Time) Kit {
	c := *k
	if name != "" {
		c.name = name
	}
	if description != "" {
		c.description = description
	}
	if assetIDs != nil {
		c.assetIDs = dedupe(assetIDs)
	}
	c.updatedAt = now
	return c
}

// WithoutAsset returns a copy with the given asset removed from membership.
func (k *Kit) WithoutAsset(assetID string) Kit {
	c := *k
	kept := make([]string, 0, len(k.assetIDs))
	for _, id := range k.assetIDs {
		if id != assetID {
			kept = append(kept, id)
		}
	}
	c.assetIDs = kept
	return c
}

// HasAsset reports whether the asset is a member of the kit.
func (k *Kit) HasAsset(assetID string) bool {
	for _, id := range k.assetIDs {
		if id == assetID {
			return true
		}
	}
	return false
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
