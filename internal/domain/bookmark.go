package domain

import "sort"

// BookmarkGroup is the derived bucket of one content type's bookmarked items.
// Never persisted; always recomputed from the bookmark set and the catalog.
type BookmarkGroup struct {
	ContentType string
	Label       string
	Href        string // navigation target: listing filtered to bookmarks
	Handle      string // menu handle of the content type
	Items       []*ContentItem
}

// Groups maps content type -> group.
type Groups map[string]*BookmarkGroup

// Types returns the group keys sorted by name.
func (g Groups) Types() []string {
	types := make([]string, 0, len(g))
	for t := range g {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Count is the number of items over all groups.
func (g Groups) Count() int {
	n := 0
	for _, grp := range g {
		n += len(grp.Items)
	}
	return n
}

// MenuEntry is the client-visible projection of one bookmarked item.
type MenuEntry struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Menu is one group as shipped to clients.
type Menu struct {
	Handle      string      `json:"handle"`
	Href        string      `json:"href"`
	ContentType string      `json:"content_type"`
	Label       string      `json:"label"`
	Items       []MenuEntry `json:"items"`
}

// ClientConfig is the configuration object clients load at start.
type ClientConfig struct {
	Nonce           string   `json:"nonce"`
	UntitledPattern string   `json:"untitledPattern"`
	Label           string   `json:"label"`
	CurrentHandle   string   `json:"currentHandle,omitempty"`
	CurrentItemID   int64    `json:"currentItemId,omitempty"`
	Anchors         []string `json:"anchors"`
	Menus           []Menu   `json:"menus"`
}
