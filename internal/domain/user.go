package domain

import "slices"

// Roles understood by CanEdit.
const (
	RoleAdministrator = "administrator"
	RoleEditor        = "editor"
	RoleAuthor        = "author"
	RoleContributor   = "contributor"
)

// User is an admin-area actor. Users are owned by the host platform and
// resolved from the catalog.
type User struct {
	ID          string
	DisplayName string
	Role        string

	// EditableTypes restricts the content types the user may edit.
	// Empty means every type.
	EditableTypes []string

	// Disabled users resolve but can edit nothing.
	Disabled bool
}

// CanEditType reports whether the user's type restriction admits contentType.
func (u *User) CanEditType(contentType string) bool {
	if len(u.EditableTypes) == 0 {
		return true
	}
	return slices.Contains(u.EditableTypes, contentType)
}

// CanEdit is the per-item edit capability check used by every projection.
// Items failing it are omitted silently.
func CanEdit(u *User, item *ContentItem) bool {
	if u == nil || item == nil || u.Disabled || item.Disabled {
		return false
	}
	if !u.CanEditType(item.Type) {
		return false
	}

	switch u.Role {
	case RoleAdministrator, RoleEditor:
		return true
	case RoleAuthor:
		return item.AuthorID == u.ID
	case RoleContributor:
		return item.AuthorID == u.ID && item.Status != StatusPublish
	default:
		return false
	}
}
