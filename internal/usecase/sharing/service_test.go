package sharing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kitvault/kitvault/internal/domain"
	domkit "github.com/kitvault/kitvault/internal/domain/kit"
	domshare "github.com/kitvault/kitvault/internal/domain/sharing"
)

// --- Mocks ---

type mockRepo struct {
	byID    map[string]domshare.Link
	byToken map[string]domshare.Link
	deleted []string
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		byID:    make(map[string]domshare.Link),
		byToken: make(map[string]domshare.Link),
	}
}

func (m *mockRepo) Save(_ context.Context, l domshare.Link) error {
	m.byID[l.ID()] = l
	m.byToken[l.Token()] = l
	return nil
}

func (m *mockRepo) Get(_ context.Context, id string) (domshare.Link, error) {
	l, ok := m.byID[id]
	if !ok {
		return domshare.Link{}, domain.ErrNotFound
	}
	return l, nil
}

func (m *mockRepo) GetByToken(_ context.Context, token string) (domshare.Link, error) {
	l, ok := m.byToken[token]
	if !ok {
		return domshare.Link{}, domain.ErrNotFound
	}
	return l, nil
}

func (m *mockRepo) ListByKit(_ context.Context, kitID string) ([]domshare.Link, error) {
	var out []domshare.Link
	for _, l := range m.byID {
		if l.KitID() == kitID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *mockRepo) Delete(_ context.Context, l domshare.Link) error {
	delete(m.byID, l.ID())
	delete(m.byToken, l.Token())
	m.deleted = append(m.deleted, l.ID())
	return nil
}

type mockKits struct {
	kit domkit.Kit
	err error
}

func (m *mockKits) Get(_ context.Context, _ string) (domkit.Kit, error) {
	return m.kit, m.err
}

func testKit(t *testing.T) domkit.Kit {
	t.Helper()
	k, err := domkit.New("k1", "ws", "docs", "", []string{"a"}, time.Now())
	if err != nil {
		t.Fatalf("kit.New: %v", err)
	}
	return k
}

// --- Tests ---

func TestCreate_NeverExpires(t *testing.T) {
	repo := newMockRepo()
	svc := New(repo, &mockKits{kit: testKit(t)})

	l, err := svc.Create(context.Background(), "k1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.ExpiresAt() != nil {
		t.Error("zero expires_in_days should mean no expiry")
	}
	if l.Token() == "" {
		t.Error("expected a generated token")
	}
	if !l.Active() {
		t.Error("new links should be active")
	}
}

func TestCreate_WithExpiry(t *testing.T) {
	repo := newMockRepo()
	svc := New(repo, &mockKits{kit: testKit(t)})
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	l, err := svc.Create(context.Background(), "k1", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.ExpiresAt() == nil {
		t.Fatal("expected an expiry")
	}
	want := base.AddDate(0, 0, 7)
	if !l.ExpiresAt().Equal(want) {
		t.Errorf("expiry: got %v, want %v", l.ExpiresAt(), want)
	}
}

func TestCreate_MissingKit(t *testing.T) {
	svc := New(newMockRepo(), &mockKits{err: domain.ErrNotFound})

	_, err := svc.Create(context.Background(), "nope", 0)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestResolve_ActiveLink(t *testing.T) {
	repo := newMockRepo()
	svc := New(repo, &mockKits{kit: testKit(t)})

	l, err := svc.Create(context.Background(), "k1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	k, err := svc.Resolve(context.Background(), l.Token())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k.ID() != "k1" {
		t.Errorf("kit: got %q, want k1", k.ID())
	}
}

func TestResolve_UnknownToken(t *testing.T) {
	svc := New(newMockRepo(), &mockKits{kit: testKit(t)})

	_, err := svc.Resolve(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestResolve_DeactivatedLink(t *testing.T) {
	repo := newMockRepo()
	svc := New(repo, &mockKits{kit: testKit(t)})

	l, err := svc.Create(context.Background(), "k1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Deactivate(context.Background(), l.ID()); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	_, err = svc.Resolve(context.Background(), l.Token())
	if !errors.Is(err, domain.ErrLinkInactive) {
		t.Errorf("expected ErrLinkInactive, got %v", err)
	}
}

func TestResolve_ExpiredLink(t *testing.T) {
	repo := newMockRepo()
	svc := New(repo, &mockKits{kit: testKit(t)})
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	l, err := svc.Create(context.Background(), "k1", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc.now = func() time.Time { return base.AddDate(0, 0, 2) }

	_, err = svc.Resolve(context.Background(), l.Token())
	if !errors.Is(err, domain.ErrLinkInactive) {
		t.Errorf("expected ErrLinkInactive for expired link, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo := newMockRepo()
	svc := New(repo, &mockKits{kit: testKit(t)})

	l, err := svc.Create(context.Background(), "k1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Delete(context.Background(), l.ID()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(context.Background(), l.ID()); !errors.Is(err, domain.ErrNotFound) {
		t.Error("link should be gone after delete")
	}
}
