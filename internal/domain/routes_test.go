package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRoutes(t *testing.T) {
	assert.Equal(t, "/admin", NewRoutes("admin/").Base)
	assert.Equal(t, "/admin", NewRoutes("/admin").Base)
	assert.Equal(t, "", NewRoutes("/").Base)
	assert.Equal(t, "", NewRoutes("").Base)
}

func TestRoutesURLs(t *testing.T) {
	r := NewRoutes("/admin")

	assert.Equal(t, "/admin/content/post", r.ListingURL("post"))
	assert.Equal(t, "/admin/content/post?admin_bookmarks=1", r.BookmarkedListingURL("post"))
	assert.Equal(t, "/admin/content/item/42/edit", r.EditURL(42))
	assert.Equal(t, "/hello-world", r.ViewURL(&ContentItem{ID: 42, Type: "post", Permalink: "/hello-world"}))
	assert.Equal(t, "/page/7", r.ViewURL(&ContentItem{ID: 7, Type: "page"}))
}

func TestMenuHandle(t *testing.T) {
	assert.Equal(t, "content-post", MenuHandle("post"))
	assert.Equal(t, "content-book_review", MenuHandle("Book_Review"))
	assert.Equal(t, "content-faq-entry", MenuHandle("faq-entry!"))
}

func TestGroups(t *testing.T) {
	g := Groups{
		"post": {ContentType: "post", Items: []*ContentItem{{ID: 1}, {ID: 2}}},
		"page": {ContentType: "page", Items: []*ContentItem{{ID: 3}}},
	}
	assert.Equal(t, []string{"page", "post"}, g.Types())
	assert.Equal(t, 3, g.Count())
}
