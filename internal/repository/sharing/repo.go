// Package sharing persists sharing links as JSON values in the KV store,
// with a token index key for shared-access lookups.
package sharing

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
	domshare "github.com/kitvault/kitvault/internal/domain/sharing"
)

// store is the consumer interface for link persistence (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	GetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/sharing.Repository.
type Repo struct {
	store  store
	prefix string
}

// New creates a sharing-link repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, prefix: keyPrefix}
}

func (r *Repo) key(id string) string         { return r.prefix + "link:" + id }
func (r *Repo) tokenKey(token string) string { return r.prefix + "link:token:" + token }

func (r *Repo) isTokenKey(key string) bool {
	return strings.HasPrefix(key, r.prefix+"link:token:")
}

// Save stores a link and its token index entry.
func (r *Repo) Save(ctx context.Context, l domshare.Link) error {
	data, err := json.Marshal(toDTO(l))
	if err != nil {
		return fmt.Errorf("marshal link: %w", err)
	}
	if err := r.store.Set(ctx, r.key(l.ID()), data); err != nil {
		return fmt.Errorf("set link %s: %w", l.ID(), err)
	}
	if err := r.store.Set(ctx, r.tokenKey(l.Token()), []byte(l.ID())); err != nil {
		return fmt.Errorf("set link token index: %w", err)
	}
	return nil
}

// Get retrieves a link by ID.
func (r *Repo) Get(ctx context.Context, id string) (domshare.Link, error) {
	data, err := r.store.Get(ctx, r.key(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domshare.Link{}, domain.ErrNotFound
		}
		return domshare.Link{}, fmt.Errorf("get link %s: %w", id, err)
	}
	return fromJSON(data)
}

// GetByToken resolves a link via the token index.
func (r *Repo) GetByToken(ctx context.Context, token string) (domshare.Link, error) {
	id, err := r.store.Get(ctx, r.tokenKey(token))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domshare.Link{}, domain.ErrNotFound
		}
		return domshare.Link{}, fmt.Errorf("get link token %s: %w", token, err)
	}
	return r.Get(ctx, string(id))
}

// ListByKit returns a kit's links sorted by creation time.
func (r *Repo) ListByKit(ctx context.Context, kitID string) ([]domshare.Link, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"link:*")
	if err != nil {
		return nil, fmt.Errorf("scan links: %w", err)
	}
	dataKeys := keys[:0]
	for _, k := range keys {
		if !r.isTokenKey(k) {
			dataKeys = append(dataKeys, k)
		}
	}
	if len(dataKeys) == 0 {
		return []domshare.Link{}, nil
	}

	values, err := r.store.GetMulti(ctx, dataKeys)
	if err != nil {
		return nil, fmt.Errorf("mget links: %w", err)
	}

	out := make([]domshare.Link, 0, len(values))
	for _, v := range values {
		if v == nil {
			continue
		}
		l, parseErr := fromJSON(v)
		if parseErr != nil {
			return nil, parseErr
		}
		if l.KitID() == kitID {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})
	return out, nil
}

// Delete removes a link and its token index entry.
func (r *Repo) Delete(ctx context.Context, l domshare.Link) error {
	if err := r.store.Del(ctx, r.key(l.ID())); err != nil {
		return fmt.Errorf("del link %s: %w", l.ID(), err)
	}
	if err := r.store.Del(ctx, r.tokenKey(l.Token())); err != nil {
		return fmt.Errorf("del link token index: %w", err)
	}
	return nil
}

type dto struct {
	ID        string `json:"id"`
	KitID     string `json:"kit_id"`
	Token     string `json:"token"`
	Active    bool   `json:"is_active"`
	CreatedAt int64  `json:"created_at"`           // unix millis
	ExpiresAt *int64 `json:"expires_at,omitempty"` // unix millis, nil = never
}

func toDTO(l domshare.Link) dto {
	d := dto{
		ID:        l.ID(),
		KitID:     l.KitID(),
		Token:     l.Token(),
		Active:    l.Active(),
		CreatedAt: l.CreatedAt().UnixMilli(),
	}
	if exp := l.ExpiresAt(); exp != nil {
		ms := exp.UnixMilli()
		d.ExpiresAt = &ms
	}
	return d
}

func fromJSON(data []byte) (domshare.Link, error) {
	var d dto
	if err := json.Unmarshal(data, &d); err != nil {
		return domshare.Link{}, fmt.Errorf("unmarshal link: %w", err)
	}
	var expiresAt *time.Time
	if d.ExpiresAt != nil {
		t := time.UnixMilli(*d.ExpiresAt).UTC()
		expiresAt = &t
	}
	return domshare.Reconstruct(
		d.ID, d.KitID, d.Token, d.Active,
		time.UnixMilli(d.CreatedAt).UTC(), expiresAt,
	), nil
}
