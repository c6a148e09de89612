// Package kit handles kit CRUD and asset membership.
package kit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domasset "github.com/kitvault/kitvault/internal/domain/asset"
	domkit "github.com/kitvault/kitvault/internal/domain/kit"
)

// Service handles kit CRUD.
type Service struct {
	repo       Repository
	workspaces WorkspaceReader
	assets     AssetReader
	links      LinkRepository
	now        func() time.Time
}

// New creates a kit service.
func New(repo Repository, workspaces WorkspaceReader, assets AssetReader, links LinkRepository) *Service {
	return &Service{repo: repo, workspaces: workspaces, assets: assets, links: links, now: time.Now}
}

// Create makes a new kit. Asset IDs that resolve to nothing are silently
// dropped from membership.
func (s *Service) Create(
	ctx context.Context, workspaceID, name, description string, assetIDs []string,
) (domkit.Kit, error) {
	if _, err := s.workspaces.Get(ctx, workspaceID); err != nil {
		return domkit.Kit{}, fmt.Errorf("get workspace: %w", err)
	}

	resolved, err := s.resolveAssetIDs(ctx, assetIDs)
	if err != nil {
		return domkit.Kit{}, err
	}

	k, err := domkit.New(uuid.NewString(), workspaceID, name, description, resolved, s.now().UTC())
	if err != nil {
		return domkit.Kit{}, fmt.Errorf("new kit: %w", err)
	}
	if err := s.repo.Save(ctx, k); err != nil {
		return domkit.Kit{}, fmt.Errorf("save kit: %w", err)
	}
	return k, nil
}

// Get retrieves a kit by ID.
func (s *Service) Get(ctx context.Context, id string) (domkit.Kit, error) {
	k, err := s.repo.Get(ctx, id)
	if err != nil {
		return domkit.Kit{}, fmt.Errorf("get kit: %w", err)
	}
	return k, nil
}

// List returns kits, optionally scoped to a workspace.
func (s *Service) List(ctx context.Context, workspaceID string) ([]domkit.Kit, error) {
	kits, err := s.repo.List(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list kits: %w", err)
	}
	return kits, nil
}

// Assets resolves a kit's member assets in membership order. Dangling IDs are
// skipped.
func (s *Service) Assets(ctx context.Context, k domkit.Kit) ([]domasset.Asset, error) {
	assets, err := s.assets.GetMulti(ctx, k.AssetIDs())
	if err != nil {
		return nil, fmt.Errorf("resolve kit assets: %w", err)
	}
	return assets, nil
}

// Update applies a partial update. A nil assetIDs keeps the membership.
func (s *Service) Update(
	ctx context.Context, id, name, description string, assetIDs []string,
) (domkit.Kit, error) {
	k, err := s.repo.Get(ctx, id)
	if err != nil {
		return domkit.Kit{}, fmt.Errorf("get kit: %w", err)
	}

	if assetIDs != nil {
		assetIDs, err = s.resolveAssetIDs(ctx, assetIDs)
		if err != nil {
			return domkit.Kit{}, err
		}
	}

	next := k.Update(name, description, assetIDs, s.now().UTC())
	if err := s.repo.Save(ctx, next); err != nil {
		return domkit.Kit{}, fmt.Errorf("save kit: %w", err)
	}
	return next, nil
}

// Delete removes a kit and its sharing links.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return fmt.Errorf("get kit: %w", err)
	}

	links, err := s.links.ListByKit(ctx, id)
	if err != nil {
		return fmt.Errorf("list links: %w", err)
	}
	for i := range links {
		if err := s.links.Delete(ctx, links[i]); err != nil {
			return fmt.Errorf("delete link: %w", err)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete kit: %w", err)
	}
	return nil
}

// resolveAssetIDs keeps only IDs that resolve to stored assets, preserving
// input order.
func (s *Service) resolveAssetIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	assets, err := s.assets.GetMulti(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve assets: %w", err)
	}
	resolved := make([]string, len(assets))
	for i := range assets {
		resolved[i] = assets[i].ID()
	}
	return resolved, nil
}
