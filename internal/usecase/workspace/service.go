// Package workspace handles workspace CRUD with cascade deletes.
package workspace

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domws "github.com/kitvault/kitvault/internal/domain/workspace"
)

// Service handles workspace CRUD.
type Service struct {
	repo  Repository
	kits  KitRepository
	links LinkRepository
	// assets is the asset repository, named to avoid clashing with the
	// domain package.
	assets AssetRepository
	now    func() time.Time
}

// New creates a workspace service.
func New(repo Repository, assets AssetRepository, kits KitRepository, links LinkRepository) *Service {
	return &Service{repo: repo, assets: assets, kits: kits, links: links, now: time.Now}
}

// Create makes a new workspace with a generated ID.
func (s *Service) Create(ctx context.Context, name, description string) (domws.Workspace, error) {
	ws, err := domws.New(uuid.NewString(), name, description, s.now().UTC())
	if err != nil {
		return domws.Workspace{}, fmt.Errorf("new workspace: %w", err)
	}
	if err := s.repo.Create(ctx, ws); err != nil {
		return domws.Workspace{}, fmt.Errorf("create workspace: %w", err)
	}
	return ws, nil
}

// Get retrieves a workspace by ID.
func (s *Service) Get(ctx context.Context, id string) (domws.Workspace, error) {
	ws, err := s.repo.Get(ctx, id)
	if err != nil {
		return domws.Workspace{}, fmt.Errorf("get workspace: %w", err)
	}
	return ws, nil
}

// List returns all workspaces.
func (s *Service) List(ctx context.Context) ([]domws.Workspace, error) {
	wss, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	return wss, nil
}

// Update renames a workspace and/or replaces its description.
func (s *Service) Update(ctx context.Context, id, name, description string) (domws.Workspace, error) {
	prev, err := s.repo.Get(ctx, id)
	if err != nil {
		return domws.Workspace{}, fmt.Errorf("get workspace: %w", err)
	}

	next := prev.Rename(name, description, s.now().UTC())
	if err := s.repo.Update(ctx, prev, next); err != nil {
		return domws.Workspace{}, fmt.Errorf("update workspace: %w", err)
	}
	return next, nil
}

// Delete removes a workspace and everything it owns: assets, kits, and the
// kits' sharing links.
func (s *Service) Delete(ctx context.Context, id string) error {
	ws, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get workspace: %w", err)
	}

	kits, err := s.kits.List(ctx, id)
	if err != nil {
		return fmt.Errorf("list kits: %w", err)
	}
	for i := range kits {
		links, linkErr := s.links.ListByKit(ctx, kits[i].ID())
		if linkErr != nil {
			return fmt.Errorf("list links: %w", linkErr)
		}
		for j := range links {
			if err := s.links.Delete(ctx, links[j]); err != nil {
				return fmt.Errorf("delete link: %w", err)
			}
		}
		if err := s.kits.Delete(ctx, kits[i].ID()); err != nil {
			return fmt.Errorf("delete kit: %w", err)
		}
	}

	assets, err := s.assets.ListByWorkspace(ctx, id)
	if err != nil {
		return fmt.Errorf("list assets: %w", err)
	}
	for i := range assets {
		if err := s.assets.Delete(ctx, assets[i].ID()); err != nil {
			return fmt.Errorf("delete asset: %w", err)
		}
	}

	if err := s.repo.Delete(ctx, ws); err != nil {
		return fmt.Errorf("delete workspace: %w", err)
	}
	return nil
}
