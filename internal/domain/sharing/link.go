package sharing

import (
	"fmt"
	"time"
)

// Link is a tokenized read grant for a kit. Links can be deactivated and can
// carry an optional expiry (immutable value object).
type Link struct {
	id        string
	kitID     string
	token     string
	active    bool
	createdAt time.Time
	expiresAt *time.Time
}

// New validates and creates an active Link. expiresAt nil means no expiry.
func New(id, kitID, token string, expiresAt *time.Time, now time.Time) (Link, error) {
	if id == "" {
		return Link{}, fmt.Errorf("link ID is required")
	}
	if kitID == "" {
		return Link{}, fmt.Errorf("kit ID is required")
	}
	if token == "" {
		return Link{}, fmt.Errorf("token is required")
	}
	return Link{id: id, kitID: kitID, token: token, active: true, createdAt: now, expiresAt: expiresAt}, nil
}

// Reconstruct creates a Link without validation (storage hydration).
func Reconstruct(id, kitID, token string, active bool, createdAt time.Time, expiresAt *time.Time) Link {
	return Link{id: id, kitID: kitID, token: token, active: active, createdAt: createdAt, expiresAt: expiresAt}
}

// ID returns the link identifier.
func (l *Link) ID() string { return l.id }

// KitID returns the shared kit identifier.
func (l *Link) KitID() string { return l.kitID }

// Token returns the opaque access token.
func (l *Link) Token() string { return l.token }

// Active reports whether the link has been deactivated.
func (l *Link) Active() bool { return l.active }

// CreatedAt returns the creation timestamp.
func (l *Link) CreatedAt() time.Time { return l.createdAt }

// ExpiresAt returns the expiry timestamp, nil when the link never expires.
func (l *Link) ExpiresAt() *time.Time { return l.expiresAt }

// Usable reports whether the link grants access at the given instant: it must
// be active and not past its expiry.
func (l *Link) Usable(now time.Time) bool {
	if !l.active {
		return false
	}
	if l.expiresAt != nil && l.expiresAt.Before(now) {
		return false
	}
	return true
}

// Deactivate returns a copy with the link revoked.
func (l *Link) Deactivate() Link {
	c := *l
	c.active = false
	return c
}
