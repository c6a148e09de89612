package workspace

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kitvault/kitvault/internal/domain"
	domasset "github.com/kitvault/kitvault/internal/domain/asset"
	domkit "github.com/kitvault/kitvault/internal/domain/kit"
	domshare "github.com/kitvault/kitvault/internal/domain/sharing"
	domws "github.com/kitvault/kitvault/internal/domain/workspace"
)

// --- Mocks ---

type mockRepo struct {
	byID    map[string]domws.Workspace
	deleted []string
}

func newMockRepo() *mockRepo {
	return &mockRepo{byID: make(map[string]domws.Workspace)}
}

func (m *mockRepo) Create(_ context.Context, ws domws.Workspace) error {
	for _, existing := range m.byID {
		if existing.Name() == ws.Name() {
			return domain.ErrAlreadyExists
		}
	}
	m.byID[ws.ID()] = ws
	return nil
}

func (m *mockRepo) Get(_ context.Context, id string) (domws.Workspace, error) {
	ws, ok := m.byID[id]
	if !ok {
		return domws.Workspace{}, domain.ErrNotFound
	}
	return ws, nil
}

func (m *mockRepo) List(_ context.Context) ([]domws.Workspace, error) {
	var out []domws.Workspace
	for _, ws := range m.byID {
		out = append(out, ws)
	}
	return out, nil
}

func (m *mockRepo) Update(_ context.Context, _, next domws.Workspace) error {
	m.byID[next.ID()] = next
	return nil
}

func (m *mockRepo) Delete(_ context.Context, ws domws.Workspace) error {
	delete(m.byID, ws.ID())
	m.deleted = append(m.deleted, ws.ID())
	return nil
}

type mockAssets struct {
	assets  []domasset.Asset
	deleted []string
}

func (m *mockAssets) ListByWorkspace(_ context.Context, _ string) ([]domasset.Asset, error) {
	return m.assets, nil
}

func (m *mockAssets) Delete(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

type mockKits struct {
	kits    []domkit.Kit
	deleted []string
}

func (m *mockKits) List(_ context.Context, _ string) ([]domkit.Kit, error) {
	return m.kits, nil
}

func (m *mockKits) Delete(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

type mockLinks struct {
	byKit   map[string][]domshare.Link
	deleted []string
}

func (m *mockLinks) ListByKit(_ context.Context, kitID string) ([]domshare.Link, error) {
	return m.byKit[kitID], nil
}

func (m *mockLinks) Delete(_ context.Context, l domshare.Link) error {
	m.deleted = append(m.deleted, l.ID())
	return nil
}

// --- Tests ---

func TestCreate(t *testing.T) {
	repo := newMockRepo()
	svc := New(repo, &mockAssets{}, &mockKits{}, &mockLinks{})

	ws, err := svc.Create(context.Background(), "research", "my docs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ws.ID() == "" {
		t.Error("expected a generated ID")
	}
	if ws.Name() != "research" {
		t.Errorf("name: got %q", ws.Name())
	}
}

func TestCreate_DuplicateName(t *testing.T) {
	repo := newMockRepo()
	svc := New(repo, &mockAssets{}, &mockKits{}, &mockLinks{})

	if _, err := svc.Create(context.Background(), "research", ""); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(context.Background(), "research", "")
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestUpdate_Rename(t *testing.T) {
	repo := newMockRepo()
	svc := New(repo, &mockAssets{}, &mockKits{}, &mockLinks{})

	ws, err := svc.Create(context.Background(), "before", "d")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	next, err := svc.Update(context.Background(), ws.ID(), "after", "d2")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if next.Name() != "after" || next.Description() != "d2" {
		t.Errorf("got %q/%q, want after/d2", next.Name(), next.Description())
	}
}

func TestDelete_CascadesEverything(t *testing.T) {
	repo := newMockRepo()
	now := time.Now()
	ws, err := domws.New("ws1", "research", "", now)
	if err != nil {
		t.Fatalf("workspace.New: %v", err)
	}
	repo.byID["ws1"] = ws

	a := domasset.Reconstruct("a1", "ws1", "doc", "", "c", "document", "", 1, "", now, now)
	assets := &mockAssets{assets: []domasset.Asset{a}}

	k, err := domkit.New("k1", "ws1", "docs", "", []string{"a1"}, now)
	if err != nil {
		t.Fatalf("kit.New: %v", err)
	}
	kits := &mockKits{kits: []domkit.Kit{k}}

	l, _ := domshare.New("l1", "k1", "tok", nil, now)
	links := &mockLinks{byKit: map[string][]domshare.Link{"k1": {l}}}

	svc := New(repo, assets, kits, links)
	if err := svc.Delete(context.Background(), "ws1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if len(links.deleted) != 1 || links.deleted[0] != "l1" {
		t.Errorf("deleted links: got %v, want [l1]", links.deleted)
	}
	if len(kits.deleted) != 1 || kits.deleted[0] != "k1" {
		t.Errorf("deleted kits: got %v, want [k1]", kits.deleted)
	}
	if len(assets.deleted) != 1 || assets.deleted[0] != "a1" {
		t.Errorf("deleted assets: got %v, want [a1]", assets.deleted)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "ws1" {
		t.Errorf("deleted workspaces: got %v, want [ws1]", repo.deleted)
	}
}

func TestDelete_MissingWorkspace(t *testing.T) {
	svc := New(newMockRepo(), &mockAssets{}, &mockKits{}, &mockLinks{})

	err := svc.Delete(context.Background(), "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
