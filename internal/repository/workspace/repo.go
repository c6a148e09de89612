// Package workspace persists workspaces as JSON values in the KV store.
package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kitvault/kitvault/internal/db"
	"github.com/kitvault/kitvault/internal/domain"
	domws "github.com/kitvault/kitvault/internal/domain/workspace"
)

// store is the consumer interface for workspace persistence (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	GetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/workspace.Repository.
type Repo struct {
	store  store
	prefix string
}

// New creates a workspace repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, prefix: keyPrefix}
}

func (r *Repo) key(id string) string       { return r.prefix + "workspace:" + id }
func (r *Repo) nameKey(name string) string { return r.prefix + "workspace:name:" + name }

// Create stores a workspace, enforcing name uniqueness via a name index key.
func (r *Repo) Create(ctx context.Context, ws domws.Workspace) error {
	taken, err := r.store.Exists(ctx, r.nameKey(ws.Name()))
	if err != nil {
		return fmt.Errorf("check name: %w", err)
	}
	if taken {
		return domain.ErrAlreadyExists
	}

	data, err := json.Marshal(toDTO(ws))
	if err != nil {
		return fmt.Errorf("marshal workspace: %w", err)
	}
	if err := r.store.Set(ctx, r.key(ws.ID()), data); err != nil {
		return fmt.Errorf("set workspace %s: %w", ws.ID(), err)
	}
	if err := r.store.Set(ctx, r.nameKey(ws.Name()), []byte(ws.ID())); err != nil {
		return fmt.Errorf("set workspace name index: %w", err)
	}
	return nil
}

// Get retrieves a workspace by ID.
func (r *Repo) Get(ctx context.Context, id string) (domws.Workspace, error) {
	data, err := r.store.Get(ctx, r.key(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domws.Workspace{}, domain.ErrNotFound
		}
		return domws.Workspace{}, fmt.Errorf("get workspace %s: %w", id, err)
	}
	return fromJSON(data)
}

// List returns all workspaces sorted by creation time, oldest first.
func (r *Repo) List(ctx context.Context) ([]domws.Workspace, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"workspace:*")
	if err != nil {
		return nil, fmt.Errorf("scan workspaces: %w", err)
	}
	keys = withoutNameIndex(keys, r.prefix)
	if len(keys) == 0 {
		return []domws.Workspace{}, nil
	}

	values, err := r.store.GetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("mget workspaces: %w", err)
	}

	out := make([]domws.Workspace, 0, len(values))
	for _, v := range values {
		if v == nil {
			continue // deleted between SCAN and MGET
		}
		ws, parseErr := fromJSON(v)
		if parseErr != nil {
			return nil, parseErr
		}
		out = append(out, ws)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})
	return out, nil
}

// Update overwrites a workspace record. The name index is rewritten when the
// name changed, enforcing the same uniqueness as Create.
func (r *Repo) Update(ctx context.Context, prev, next domws.Workspace) error {
	if prev.Name() != next.Name() {
		taken, err := r.store.Exists(ctx, r.nameKey(next.Name()))
		if err != nil {
			return fmt.Errorf("check name: %w", err)
		}
		if taken {
			return domain.ErrAlreadyExists
		}
	}

	data, err := json.Marshal(toDTO(next))
	if err != nil {
		return fmt.Errorf("marshal workspace: %w", err)
	}
	if err := r.store.Set(ctx, r.key(next.ID()), data); err != nil {
		return fmt.Errorf("set workspace %s: %w", next.ID(), err)
	}
	if prev.Name() != next.Name() {
		if err := r.store.Del(ctx, r.nameKey(prev.Name())); err != nil {
			return fmt.Errorf("del old name index: %w", err)
		}
		if err := r.store.Set(ctx, r.nameKey(next.Name()), []byte(next.ID())); err != nil {
			return fmt.Errorf("set name index: %w", err)
		}
	}
	return nil
}

// Delete removes a workspace and its name index entry.
func (r *Repo) Delete(ctx context.Context, ws domws.Workspace) error {
	if err := r.store.Del(ctx, r.key(ws.ID())); err != nil {
		return fmt.Errorf("del workspace %s: %w", ws.ID(), err)
	}
	if err := r.store.Del(ctx, r.nameKey(ws.Name())); err != nil {
		return fmt.Errorf("del workspace name index: %w", err)
	}
	return nil
}

// withoutNameIndex drops name-index keys from a workspace key scan.
func withoutNameIndex(keys []string, prefix string) []string {
	nameIdx := prefix + "workspace:name:"
	kept := keys[:0]
	for _, k := range keys {
		if strings.HasPrefix(k, nameIdx) {
			continue
		}
		kept = append(kept, k)
	}
	return kept
}

type dto struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   int64  `json:"created_at"` // unix millis
	UpdatedAt   int64  `json:"updated_at"`
}

func toDTO(ws domws.Workspace) dto {
	return dto{
		ID:          ws.ID(),
		Name:        ws.Name(),
		Description: ws.Description(),
		CreatedAt:   ws.CreatedAt().UnixMilli(),
		UpdatedAt:   ws.UpdatedAt().UnixMilli(),
	}
}

func millisToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func fromJSON(data []byte) (domws.Workspace, error) {
	var d dto
	if err := json.Unmarshal(data, &d); err != nil {
		return domws.Workspace{}, fmt.Errorf("unmarshal workspace: %w", err)
	}
	return domws.Reconstruct(
		d.ID, d.Name, d.Description,
		millisToTime(d.CreatedAt), millisToTime(d.UpdatedAt),
	), nil
}
