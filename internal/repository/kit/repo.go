// Package kit persists kits as JSON values in the KV store.
package kit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/kitvault/kitvault/internal/db"
	"github.com/kitvault/kitvault/internal/domain"
	domkit "github.com/kitvault/kitvault/internal/domain/kit"
)

// store is the consumer interface for kit persistence (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	GetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/kit.Repository.
type Repo struct {
	store  store
	prefix string
}

// New creates a kit repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, prefix: keyPrefix}
}

func (r *Repo) key(id string) string { return r.prefix + "kit:" + id }

// Save stores a kit (create or overwrite).
func (r *Repo) Save(ctx context.Context, k domkit.Kit) error {
	data, err := json.Marshal(toDTO(k))
	if err != nil {
		return fmt.Errorf("marshal kit: %w", err)
	}
	if err := r.store.Set(ctx, r.key(k.ID()), data); err != nil {
		return fmt.Errorf("set kit %s: %w", k.ID(), err)
	}
	return nil
}

// Get retrieves a kit by ID.
func (r *Repo) Get(ctx context.Context, id string) (domkit.Kit, error) {
	data, err := r.store.Get(ctx, r.key(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domkit.Kit{}, domain.ErrNotFound
		}
		return domkit.Kit{}, fmt.Errorf("get kit %s: %w", id, err)
	}
	return fromJSON(data)
}

// List returns all kits, optionally filtered by workspace, sorted by
// creation time. An empty workspaceID returns every kit.
func (r *Repo) List(ctx context.Context, workspaceID string) ([]domkit.Kit, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"kit:*")
	if err != nil {
		return nil, fmt.Errorf("scan kits: %w", err)
	}
	if len(keys) == 0 {
		return []domkit.Kit{}, nil
	}

	values, err := r.store.GetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("mget kits: %w", err)
	}

	out := make([]domkit.Kit, 0, len(values))
	for _, v := range values {
		if v == nil {
			continue
		}
		k, parseErr := fromJSON(v)
		if parseErr != nil {
			return nil, parseErr
		}
		if workspaceID == "" || k.WorkspaceID() == workspaceID {
			out = append(out, k)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})
	return out, nil
}

// Delete removes a kit. Deleting a missing kit is not an error.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, r.key(id)); err != nil {
		return fmt.Errorf("del kit %s: %w", id, err)
	}
	return nil
}

type dto struct {
	ID          string   `json:"id"`
	WorkspaceID string   `json:"workspace_id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	AssetIDs    []string `json:"asset_ids"`
	CreatedAt   int64    `json:"created_at"` // unix millis
	UpdatedAt   int64    `json:"updated_at"`
}

func toDTO(k domkit.Kit) dto {
	return dto{
		ID:          k.ID(),
		WorkspaceID: k.WorkspaceID(),
		Name:        k.Name(),
		Description: k.Description(),
		AssetIDs:    k.AssetIDs(),
		CreatedAt:   k.CreatedAt().UnixMilli(),
		UpdatedAt:   k.UpdatedAt().UnixMilli(),
	}
}

func fromJSON(data []byte) (domkit.Kit, error) {
	var d dto
	if err := json.Unmarshal(data, &d); err != nil {
		return domkit.Kit{}, fmt.Errorf("unmarshal kit: %w", err)
	}
	return domkit.Reconstruct(
		d.ID, d.WorkspaceID, d.Name, d.Description, d.AssetIDs,
		time.UnixMilli(d.CreatedAt).UTC(), time.UnixMilli(d.UpdatedAt).UTC(),
	), nil
}
