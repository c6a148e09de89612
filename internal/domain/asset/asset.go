package asset

import (
	"fmt"
	"strings"
	"time"
)

// MaxContentSize is the maximum asset content size in bytes.
const MaxContentSize = 10 << 20 // 10MB, binary payloads arrive base64-encoded

// Asset is a unit of retrievable content plus file metadata
// (immutable value object).
type Asset struct {
	id          string
	workspaceID string
	name        string
	description string
	content     string
	assetType   string
	mimeType    string
	fileSize    int64
	filePath    string
	createdAt   time.Time
	updatedAt   time.Time
}

// New validates and creates an Asset.
func New(
	id, workspaceID, name, description, content, assetType, mimeType string,
	fileSize int64, filePath string, now time.Time,
) (Asset, error) {
	if id == "" {
		return Asset{}, fmt.Errorf("asset ID is required")
	}
	if workspaceID == "" {
		return Asset{}, fmt.Errorf("workspace ID is required")
	}
	if name == "" {
		return Asset{}, fmt.Errorf("asset name is required")
	}
	if len(content) > MaxContentSize {
		return Asset{}, fmt.Errorf("content too large (max %d bytes)", MaxContentSize)
	}
	if assetType == "" {
		assetType = TypeFromMime(mimeType)
	}

	return Asset{
		id:          id,
		workspaceID: workspaceID,
		name:        name,
		description: description,
		content:     content,
		assetType:   assetType,
		mimeType:    mimeType,
		fileSize:    fileSize,
		filePath:    filePath,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct creates an Asset without validation (storage hydration).
func Reconstruct(
	id, workspaceID, name, description, content, assetType, mimeType string,
	fileSize int64, filePath string, createdAt, updatedAt time.Time,
) Asset {
	return Asset{
		id: id, workspaceID: workspaceID, name: name, description: description,
		content: content, assetType: assetType, mimeType: mimeType,
		fileSize: fileSize, filePath: filePath,
		createdAt: createdAt, updatedAt: updatedAt,
	}
}

// ID returns the asset identifier.
func (a *Asset) ID() string { return a.id }

// WorkspaceID returns the owning workspace identifier.
func (a *Asset) WorkspaceID() string { return a.workspaceID }

// Name returns the asset name.
func (a *Asset) Name() string { return a.name }

// Description returns the asset description.
func (a *Asset) Description() string { return a.description }

// Content returns the asset text content (base64 for binary files).
func (a *Asset) Content() string { return a.content }

// AssetType returns the coarse asset category (document, image, video, ...).
func (a *Asset) AssetType() string { return a.assetType }

// MimeType returns the MIME type, empty when unknown.
func (a *Asset) MimeType() string { return a.mimeType }

// FileSize returns the file size in bytes.
func (a *Asset) FileSize() int64 { return a.fileSize }

// FilePath returns the original upload path or name.
func (a *Asset) FilePath() string { return a.filePath }

// CreatedAt returns the creation timestamp.
func (a *Asset) CreatedAt() time.Time { return a.createdAt }

// UpdatedAt returns the last modification timestamp.
func (a *Asset) UpdatedAt() time.Time { return a.updatedAt }

// TypeFromMime derives the coarse asset category from a MIME type.
func TypeFromMime(mimeType string) string {
	switch {
	case mimeType == "":
		return "document"
	case strings.HasPrefix(mimeType, "image/"):
		return "image"
	case strings.HasPrefix(mimeType, "video/"):
		return "video"
	case strings.HasPrefix(mimeType, "audio/"):
		return "audio"
	case mimeType == "application/pdf",
		strings.HasPrefix(mimeType, "text/"):
		return "document"
	case strings.HasPrefix(mimeType, "application/"):
		return "data"
	default:
		return "document"
	}
}
