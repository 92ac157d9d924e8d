package bookmarks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/adminmarks/internal/domain"
)

func ids(items []*domain.ContentItem) []int64 {
	out := make([]int64, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestListing_Unfiltered(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()
	alice, _ := f.idx.GetUser("alice")

	require.NoError(t, f.svc.Add(ctx, "alice", 42))
	require.NoError(t, f.store.SetTitle(ctx, 42, "Pinned"))

	l, err := f.svc.Listing(ctx, alice, "post", false)
	require.NoError(t, err)

	assert.False(t, l.Filtered)
	assert.Equal(t, "Posts", l.Label)
	assert.Equal(t, []int64{44, 43, 42}, ids(l.Items), "sticky first, then newest id")
	assert.Equal(t, map[int64]bool{42: true}, l.Bookmarked)
	assert.Equal(t, map[int64]string{42: "Pinned"}, l.Titles)
	assert.Equal(t, 3, l.Total)
	assert.Equal(t, 2, l.StatusCounts[domain.StatusPublish])
	assert.Equal(t, 1, l.StatusCounts[domain.StatusDraft])
	assert.Equal(t, 1, l.BookmarkCount)
}

func TestListing_FilteredKeepsInsertionOrder(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()
	alice, _ := f.idx.GetUser("alice")

	for _, id := range []int64{42, 44, 43} {
		require.NoError(t, f.svc.Add(ctx, "alice", id))
	}

	l, err := f.svc.Listing(ctx, alice, "post", true)
	require.NoError(t, err)
	assert.True(t, l.Filtered)
	assert.Equal(t, []int64{42, 44, 43}, ids(l.Items), "no sticky reordering")
}

func TestListing_FilteredWithoutBookmarksIsEmpty(t *testing.T) {
	f := newFixture(t, Options{})
	alice, _ := f.idx.GetUser("alice")

	l, err := f.svc.Listing(context.Background(), alice, "post", true)
	require.NoError(t, err)
	assert.Empty(t, l.Items)
	assert.Zero(t, l.BookmarkCount)
}

func TestListing_PermissionFiltering(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()
	bob, _ := f.idx.GetUser("bob")

	// bob bookmarks alice's post; he cannot edit it
	require.NoError(t, f.svc.Add(ctx, "bob", 42))
	require.NoError(t, f.svc.Add(ctx, "bob", 44))

	l, err := f.svc.Listing(ctx, bob, "post", true)
	require.NoError(t, err)
	assert.Equal(t, []int64{44}, ids(l.Items))
	assert.Equal(t, 1, l.BookmarkCount)

	all, err := f.svc.Listing(ctx, bob, "post", false)
	require.NoError(t, err)
	assert.Equal(t, []int64{44, 43}, ids(all.Items))
}

func TestListing_UnsupportedType(t *testing.T) {
	f := newFixture(t, Options{SupportedTypes: []string{"page"}})
	alice, _ := f.idx.GetUser("alice")

	_, err := f.svc.Listing(context.Background(), alice, "post", false)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}
