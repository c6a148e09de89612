package workspace

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kitvault/kitvault/internal/db"
	"github.com/kitvault/kitvault/internal/domain"
	domws "github.com/kitvault/kitvault/internal/domain/workspace"
)

type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memStore) GetMulti(_ context.Context, keys []string) ([][]byte, error) {
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = m.data[k]
	}
	return out, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}

func (m *memStore) Del(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *memStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

func (m *memStore) Scan(_ context.Context, pattern string) ([]string, error) {
	prefix := strings.TrimSuffix(pattern, "*")
	var out []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out, nil
}

func mustWorkspace(t *testing.T, id, name string) domws.Workspace {
	t.Helper()
	ws, err := domws.New(id, name, "", time.Now())
	if err != nil {
		t.Fatalf("workspace.New: %v", err)
	}
	return ws
}

func TestCreate_DuplicateName(t *testing.T) {
	repo := New(newMemStore(), "kv:")
	ctx := context.Background()

	if err := repo.Create(ctx, mustWorkspace(t, "id-a", "alpha")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	err := repo.Create(ctx, mustWorkspace(t, "id-b", "alpha"))
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestUpdate_RenameToTakenName(t *testing.T) {
	store := newMemStore()
	repo := New(store, "kv:")
	ctx := context.Background()

	a := mustWorkspace(t, "id-a", "alpha")
	b := mustWorkspace(t, "id-b", "beta")
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("create alpha: %v", err)
	}
	if err := repo.Create(ctx, b); err != nil {
		t.Fatalf("create beta: %v", err)
	}

	renamed := b.Rename("alpha", "", time.Now())
	err := repo.Update(ctx, b, renamed)
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("rename to taken name: got err=%v, want ErrAlreadyExists", err)
	}

	// The name index must still point at the original holder.
	owner, err := store.Get(ctx, "kv:workspace:name:alpha")
	if err != nil {
		t.Fatalf("name index missing: %v", err)
	}
	if string(owner) != "id-a" {
		t.Errorf("name index: got %q, want id-a", owner)
	}

	// Deleting the workspace that failed to rename must not touch alpha's index.
	if err := repo.Delete(ctx, b); err != nil {
		t.Fatalf("delete beta: %v", err)
	}
	if _, err := store.Get(ctx, "kv:workspace:name:alpha"); err != nil {
		t.Errorf("surviving name index should remain: %v", err)
	}
	if _, err := repo.Get(ctx, "id-a"); err != nil {
		t.Errorf("surviving workspace should remain: %v", err)
	}
}

func TestUpdate_RenameMovesNameIndex(t *testing.T) {
	store := newMemStore()
	repo := New(store, "kv:")
	ctx := context.Background()

	a := mustWorkspace(t, "id-a", "alpha")
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}

	renamed := a.Rename("gamma", "", time.Now())
	if err := repo.Update(ctx, a, renamed); err != nil {
		t.Fatalf("rename: %v", err)
	}

	if _, err := store.Get(ctx, "kv:workspace:name:alpha"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Error("old name index should be removed")
	}
	owner, err := store.Get(ctx, "kv:workspace:name:gamma")
	if err != nil {
		t.Fatalf("new name index missing: %v", err)
	}
	if string(owner) != "id-a" {
		t.Errorf("new name index: got %q, want id-a", owner)
	}

	// The freed name is available again.
	if err := repo.Create(ctx, mustWorkspace(t, "id-b", "alpha")); err != nil {
		t.Errorf("freed name should be reusable: %v", err)
	}
}
