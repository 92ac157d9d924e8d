package domain

// ToggleAction is the form action name of the toggle endpoint.
const ToggleAction = "toggle_admin_bookmark"

// Anti-forgery token scopes.
const (
	NonceActionToggle    = "admin-bookmarks"
	NonceActionQuickEdit = "admin_bookmarks_quick_edit"
)

// ToggledItem describes a freshly bookmarked item.
type ToggledItem struct {
	ID          int64  `json:"id"`
	URL         string `json:"url"`
	Label       string `json:"label"`
	GroupHandle string `json:"groupHandle"`
	GroupHref   string `json:"groupHref"`
	GroupLabel  string `json:"groupLabel"`
	ContentType string `json:"content_type"`
}

// ToggleResult is the toggle endpoint payload.
//
// Added:   {itemId, removed:false, item:{...}}
// Removed: {itemId, removed:true, groupHandle, content_type, groupHref}
type ToggleResult struct {
	ItemID      int64        `json:"itemId"`
	Removed     bool         `json:"removed"`
	Item        *ToggledItem `json:"item,omitempty"`
	GroupHandle string       `json:"groupHandle,omitempty"`
	ContentType string       `json:"content_type,omitempty"`
	GroupHref   string       `json:"groupHref,omitempty"`
}
