// Package sharing issues and validates tokenized kit access links.
package sharing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kitvault/kitvault/internal/domain"
	domkit "github.com/kitvault/kitvault/internal/domain/kit"
	domshare "github.com/kitvault/kitvault/internal/domain/sharing"
)

// Service handles sharing-link issuance and resolution.
type Service struct {
	repo Repository
	kits KitReader
	now  func() time.Time
}

// New creates a sharing service.
func New(repo Repository, kits KitReader) *Service {
	return &Service{repo: repo, kits: kits, now: time.Now}
}

// Create issues a link for a kit. expiresInDays zero means the link never
// expires.
func (s *Service) Create(ctx context.Context, kitID string, expiresInDays int) (domshare.Link, error) {
	if _, err := s.kits.Get(ctx, kitID); err != nil {
		return domshare.Link{}, fmt.Errorf("get kit: %w", err)
	}

	now := s.now().UTC()
	var expiresAt *time.Time
	if expiresInDays > 0 {
		t := now.AddDate(0, 0, expiresInDays)
		expiresAt = &t
	}

	l, err := domshare.New(uuid.NewString(), kitID, uuid.NewString(), expiresAt, now)
	if err != nil {
		return domshare.Link{}, fmt.Errorf("new link: %w", err)
	}
	if err := s.repo.Save(ctx, l); err != nil {
		return domshare.Link{}, fmt.Errorf("save link: %w", err)
	}
	return l, nil
}

// ListByKit returns a kit's links.
func (s *Service) ListByKit(ctx context.Context, kitID string) ([]domshare.Link, error) {
	links, err := s.repo.ListByKit(ctx, kitID)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	return links, nil
}

// Deactivate revokes a link without deleting its record.
func (s *Service) Deactivate(ctx context.Context, id string) (domshare.Link, error) {
	l, err := s.repo.Get(ctx, id)
	if err != nil {
		return domshare.Link{}, fmt.Errorf("get link: %w", err)
	}

	revoked := l.Deactivate()
	if err := s.repo.Save(ctx, revoked); err != nil {
		return domshare.Link{}, fmt.Errorf("save link: %w", err)
	}
	return revoked, nil
}

// Delete removes a link entirely.
func (s *Service) Delete(ctx context.Context, id string) error {
	l, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get link: %w", err)
	}
	if err := s.repo.Delete(ctx, l); err != nil {
		return fmt.Errorf("delete link: %w", err)
	}
	return nil
}

// Resolve maps a token to the kit it shares. Deactivated and expired links
// fail with domain.ErrLinkInactive.
func (s *Service) Resolve(ctx context.Context, token string) (domkit.Kit, error) {
	l, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return domkit.Kit{}, fmt.Errorf("get link by token: %w", err)
	}
	if !l.Usable(s.now().UTC()) {
		return domkit.Kit{}, domain.ErrLinkInactive
	}

	k, err := s.kits.Get(ctx, l.KitID())
	if err != nil {
		return domkit.Kit{}, fmt.Errorf("get shared kit: %w", err)
	}
	return k, nil
}
