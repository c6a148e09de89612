// Package asset handles asset CRUD, file uploads, and MIME-based type
// detection.
package asset

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	domasset "github.com/kitvault/kitvault/internal/domain/asset"
)

// Service handles asset CRUD.
type Service struct {
	repo       Repository
	workspaces WorkspaceReader
	kits       KitRepository
	now        func() time.Time
}

// New creates an asset service.
func New(repo Repository, workspaces WorkspaceReader, kits KitRepository) *Service {
	return &Service{repo: repo, workspaces: workspaces, kits: kits, now: time.Now}
}

// Create stores a text asset authored directly through the API.
func (s *Service) Create(
	ctx context.Context, workspaceID, name, description, content, assetType string,
) (domasset.Asset, error) {
	if _, err := s.workspaces.Get(ctx, workspaceID); err != nil {
		return domasset.Asset{}, fmt.Errorf("get workspace: %w", err)
	}

	a, err := domasset.New(
		uuid.NewString(), workspaceID, name, description, content,
		assetType, "", int64(len(content)), "", s.now().UTC(),
	)
	if err != nil {
		return domasset.Asset{}, fmt.Errorf("new asset: %w", err)
	}
	if err := s.repo.Save(ctx, a); err != nil {
		return domasset.Asset{}, fmt.Errorf("save asset: %w", err)
	}
	return a, nil
}

// Upload stores a file asset. The MIME type is detected from the filename
// extension, falling back to content sniffing; binary payloads are stored
// base64-encoded so the content column stays text.
func (s *Service) Upload(
	ctx context.Context, workspaceID, name, description, filename string, data []byte,
) (domasset.Asset, error) {
	if _, err := s.workspaces.Get(ctx, workspaceID); err != nil {
		return domasset.Asset{}, fmt.Errorf("get workspace: %w", err)
	}

	mimeType := detectMime(filename, data)

	content := string(data)
	if !utf8.ValidString(content) {
		content = base64.StdEncoding.EncodeToString(data)
	}

	a, err := domasset.New(
		uuid.NewString(), workspaceID, name, description, content,
		domasset.TypeFromMime(mimeType), mimeType, int64(len(data)), filename,
		s.now().UTC(),
	)
	if err != nil {
		return domasset.Asset{}, fmt.Errorf("new asset: %w", err)
	}
	if err := s.repo.Save(ctx, a); err != nil {
		return domasset.Asset{}, fmt.Errorf("save asset: %w", err)
	}
	return a, nil
}

// Get retrieves an asset by ID.
func (s *Service) Get(ctx context.Context, id string) (domasset.Asset, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return domasset.Asset{}, fmt.Errorf("get asset: %w", err)
	}
	return a, nil
}

// GetMulti fetches assets by ID in input order, skipping missing IDs.
func (s *Service) GetMulti(ctx context.Context, ids []string) ([]domasset.Asset, error) {
	assets, err := s.repo.GetMulti(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get assets: %w", err)
	}
	return assets, nil
}

// ListByWorkspace returns a workspace's assets.
func (s *Service) ListByWorkspace(ctx context.Context, workspaceID string) ([]domasset.Asset, error) {
	if _, err := s.workspaces.Get(ctx, workspaceID); err != nil {
		return nil, fmt.Errorf("get workspace: %w", err)
	}
	assets, err := s.repo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	return assets, nil
}

// Delete removes an asset and detaches it from every kit that references it.
func (s *Service) Delete(ctx context.Context, id string) error {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get asset: %w", err)
	}

	kits, err := s.kits.List(ctx, a.WorkspaceID())
	if err != nil {
		return fmt.Errorf("list kits: %w", err)
	}
	for i := range kits {
		if !kits[i].HasAsset(id) {
			continue
		}
		detached := kits[i].WithoutAsset(id)
		if err := s.kits.Save(ctx, detached); err != nil {
			return fmt.Errorf("detach asset from kit %s: %w", kits[i].ID(), err)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	return nil
}

// detectMime resolves a MIME type from the filename extension, falling back
// to net/http content sniffing.
func detectMime(filename string, data []byte) string {
	if ext := filepath.Ext(filename); ext != "" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			// Strip parameters like "; charset=utf-8".
			if i := strings.IndexByte(byExt, ';'); i >= 0 {
				byExt = byExt[:i]
			}
			return byExt
		}
	}
	if len(data) > 0 {
		sniffed := http.DetectContentType(data)
		if i := strings.IndexByte(sniffed, ';'); i >= 0 {
			sniffed = sniffed[:i]
		}
		return sniffed
	}
	return ""
}
