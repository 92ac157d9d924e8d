package domain

import "time"

// Content statuses recognised by the permission rules.
const (
	StatusPublish = "publish"
	StatusDraft   = "draft"
	StatusPending = "pending"
	StatusPrivate = "private"
)

// ContentItem is an addressable unit of content owned by the host platform.
//
// adminmarks never edits content. Items are loaded from the catalog and
// only read when bookmarks are projected into navigation.
type ContentItem struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the host platform identifier.
	ID int64

	// Type is the machine name of the content type.
	// Example: post, page, product
	Type string

	// ─────────────────────────────
	// Presentation
	// ─────────────────────────────

	// Title is the item's own title. May be empty.
	Title string

	// Status is the publication status (publish, draft, pending, private).
	Status string

	// AuthorID is the user id of the owner.
	AuthorID string

	// Permalink is the public URL of the item. Empty means the default
	// public route is used.
	Permalink string

	// Sticky items are listed first in unfiltered listings.
	Sticky bool

	// ─────────────────────────────
	// Provenance & lifecycle
	// ─────────────────────────────

	// Sources indicates where this item was discovered from.
	// Example: catalog, redis
	Sources []string

	// CreatedAt is the first time the item was seen.
	CreatedAt time.Time

	// UpdatedAt is updated on any mutation.
	UpdatedAt time.Time

	// Disabled marks an item removed from the catalog.
	// It is invisible to projections and garbage-collected later.
	Disabled bool
}

// ContentType describes a registered content type.
type ContentType struct {
	// Name is the machine name (post, page, book_review).
	Name string

	// Label is the plural display name. Empty means the humanised name is used.
	Label string

	// SingularLabel is the display name of one item.
	SingularLabel string
}

// DisplayLabel returns the configured label or the humanised machine name.
func (t ContentType) DisplayLabel() string {
	if t.Label != "" {
		return t.Label
	}
	return HumanizeTypeName(t.Name)
}
