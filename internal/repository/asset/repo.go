// Package asset persists assets as JSON values in the KV store.
package asset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/kitvault/kitvault/internal/db"
	"github.com/kitvault/kitvault/internal/domain"
	domasset "github.com/kitvault/kitvault/internal/domain/asset"
)

// store is the consumer interface for asset persistence (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	GetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/asset.Repository.
type Repo struct {
	store  store
	prefix string
}

// New creates an asset repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, prefix: keyPrefix}
}

func (r *Repo) key(id string) string { return r.prefix + "asset:" + id }

// Save stores an asset (create or overwrite).
func (r *Repo) Save(ctx context.Context, a domasset.Asset) error {
	data, err := json.Marshal(toDTO(a))
	if err != nil {
		return fmt.Errorf("marshal asset: %w", err)
	}
	if err := r.store.Set(ctx, r.key(a.ID()), data); err != nil {
		return fmt.Errorf("set asset %s: %w", a.ID(), err)
	}
	return nil
}

// Get retrieves an asset by ID.
func (r *Repo) Get(ctx context.Context, id string) (domasset.Asset, error) {
	data, err := r.store.Get(ctx, r.key(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domasset.Asset{}, domain.ErrNotFound
		}
		return domasset.Asset{}, fmt.Errorf("get asset %s: %w", id, err)
	}
	return fromJSON(data)
}

// GetMulti fetches assets by ID, preserving input order and skipping missing
// IDs. Kits reference assets by ID and tolerate dangling references.
func (r *Repo) GetMulti(ctx context.Context, ids []string) ([]domasset.Asset, error) {
	if len(ids) == 0 {
		return []domasset.Asset{}, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.key(id)
	}

	values, err := r.store.GetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("mget assets: %w", err)
	}

	out := make([]domasset.Asset, 0, len(values))
	for _, v := range values {
		if v == nil {
			continue
		}
		a, parseErr := fromJSON(v)
		if parseErr != nil {
			return nil, parseErr
		}
		out = append(out, a)
	}
	return out, nil
}

// ListByWorkspace returns a workspace's assets sorted by creation time.
func (r *Repo) ListByWorkspace(ctx context.Context, workspaceID string) ([]domasset.Asset, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"asset:*")
	if err != nil {
		return nil, fmt.Errorf("scan assets: %w", err)
	}
	if len(keys) == 0 {
		return []domasset.Asset{}, nil
	}

	values, err := r.store.GetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("mget assets: %w", err)
	}

	out := make([]domasset.Asset, 0, len(values))
	for _, v := range values {
		if v == nil {
			continue
		}
		a, parseErr := fromJSON(v)
		if parseErr != nil {
			return nil, parseErr
		}
		if a.WorkspaceID() == workspaceID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})
	return out, nil
}

// Delete removes an asset. Deleting a missing asset is not an error.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, r.key(id)); err != nil {
		return fmt.Errorf("del asset %s: %w", id, err)
	}
	return nil
}

type dto struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspace_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content"`
	AssetType   string `json:"asset_type"`
	MimeType    string `json:"mime_type,omitempty"`
	FileSize    int64  `json:"file_size"`
	FilePath    string `json:"file_path,omitempty"`
	CreatedAt   int64  `json:"created_at"` // unix millis
	UpdatedAt   int64  `json:"updated_at"`
}

func toDTO(a domasset.Asset) dto {
	return dto{
		ID:          a.ID(),
		WorkspaceID: a.WorkspaceID(),
		Name:        a.Name(),
		Description: a.Description(),
		Content:     a.Content(),
		AssetType:   a.AssetType(),
		MimeType:    a.MimeType(),
		FileSize:    a.FileSize(),
		FilePath:    a.FilePath(),
		CreatedAt:   a.CreatedAt().UnixMilli(),
		UpdatedAt:   a.UpdatedAt().UnixMilli(),
	}
}

func fromJSON(data []byte) (domasset.Asset, error) {
	var d dto
	if err := json.Unmarshal(data, &d); err != nil {
		return domasset.Asset{}, fmt.Errorf("unmarshal asset: %w", err)
	}
	return domasset.Reconstruct(
		d.ID, d.WorkspaceID, d.Name, d.Description, d.Content, d.AssetType,
		d.MimeType, d.FileSize, d.FilePath,
		time.UnixMilli(d.CreatedAt).UTC(), time.UnixMilli(d.UpdatedAt).UTC(),
	), nil
}
