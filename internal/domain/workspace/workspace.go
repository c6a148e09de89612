package workspace

import (
	"fmt"
	"time"
)

// Workspace is the top-level container for assets and kits
// (immutable value object).
type Workspace struct {
	id          string
	name        string
	description string
	createdAt   time.Time
	updatedAt   time.Time
}

// New validates and creates a Workspace. Name uniqueness is enforced by the
// repository, not here.
func New(id, name, description string, now time.Time) (Workspace, error) {
	if id == "" {
		return Workspace{}, fmt.Errorf("workspace ID is required")
	}
	if name == "" {
		return Workspace{}, fmt.Errorf("workspace name is required")
	}
	return Workspace{id: id, name: name, description: description, createdAt: now, updatedAt: now}, nil
}

// Reconstruct creates a Workspace without validation (storage hydration).
func Reconstruct(id, name, description string, createdAt, updatedAt time.Time) Workspace {
	return Workspace{id: id, name: name, description: description, createdAt: createdAt, updatedAt: updatedAt}
}

// ID returns the workspace identifier.
func (w *Workspace) ID() string { return w.id }

// Name returns the workspace name.
func (w *Workspace) Name() string { return w.name }

// Description returns the workspace description.
func (w *Workspace) Description() string { return w.description }

// CreatedAt returns the creation timestamp.
func (w *Workspace) CreatedAt() time.Time { return w.createdAt }

// UpdatedAt returns the last modification timestamp.
func (w *Workspace) UpdatedAt() time.Time { return w.updatedAt }

// Rename returns a copy with the name and description updated.
func (w *Workspace) Rename(name, description string, now time.Time) Workspace {
	c := *w
	if name != "" {
		c.name = name
	}
	c.description = description
	c.updatedAt = now
	return c
}
