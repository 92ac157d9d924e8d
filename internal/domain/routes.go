package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// BookmarkFilterParam scopes a listing to the viewer's bookmarked items.
const BookmarkFilterParam = "admin_bookmarks"

// Routes derives admin URLs and menu handles. Base is the admin mount point
// (ex: "/admin").
type Routes struct {
	Base string
}

// NewRoutes normalises base ("admin/" -> "/admin").
func NewRoutes(base string) Routes {
	base = "/" + strings.Trim(base, "/")
	if base == "/" {
		base = ""
	}
	return Routes{Base: base}
}

// ListingURL is the list table of one content type.
func (r Routes) ListingURL(contentType string) string {
	return r.Base + "/content/" + url.PathEscape(contentType)
}

// BookmarkedListingURL is the listing filtered to bookmarked items.
func (r Routes) BookmarkedListingURL(contentType string) string {
	return r.ListingURL(contentType) + "?" + BookmarkFilterParam + "=1"
}

// EditURL is the edit screen of one item.
func (r Routes) EditURL(id int64) string {
	return r.Base + "/content/item/" + strconv.FormatInt(id, 10) + "/edit"
}

// ViewURL is the public URL of an item.
func (r Routes) ViewURL(item *ContentItem) string {
	if item.Permalink != "" {
		return item.Permalink
	}
	return "/" + url.PathEscape(item.Type) + "/" + strconv.FormatInt(item.ID, 10)
}

// MenuHandle is the navigation key of a content type's menu.
func MenuHandle(contentType string) string {
	return "content-" + SanitizeKey(contentType)
}

// SanitizeKey lowercases s and keeps only [a-z0-9_-].
func SanitizeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
