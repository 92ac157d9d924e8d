package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/adminmarks/internal/domain"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client), mr
}

func TestBookmarks_AddIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddBookmark(ctx, "u1", 42))
	require.NoError(t, s.AddBookmark(ctx, "u1", 42))

	ids, err := s.ListBookmarks(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []int64{42}, ids)
}

func TestBookmarks_RemoveIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.RemoveBookmark(ctx, "u1", 42))
	require.NoError(t, s.AddBookmark(ctx, "u1", 42))
	require.NoError(t, s.RemoveBookmark(ctx, "u1", 42))
	require.NoError(t, s.RemoveBookmark(ctx, "u1", 42))

	ok, err := s.IsBookmarked(ctx, "u1", 42)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBookmarks_ToggleTwiceRestores(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	on, err := s.ToggleBookmark(ctx, "u1", 7)
	require.NoError(t, err)
	assert.True(t, on)

	off, err := s.ToggleBookmark(ctx, "u1", 7)
	require.NoError(t, err)
	assert.False(t, off)

	ids, err := s.ListBookmarks(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestBookmarks_ListKeepsInsertionOrder(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for _, id := range []int64{30, 10, 20} {
		require.NoError(t, s.AddBookmark(ctx, "u1", id))
	}
	// Re-adding does not move an item
	require.NoError(t, s.AddBookmark(ctx, "u1", 30))

	// Removing then toggling back appends at the end
	require.NoError(t, s.RemoveBookmark(ctx, "u1", 10))
	_, err := s.ToggleBookmark(ctx, "u1", 10)
	require.NoError(t, err)

	ids, err := s.ListBookmarks(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []int64{30, 20, 10}, ids)
}

func TestBookmarks_SetsArePerUser(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddBookmark(ctx, "u1", 1))
	require.NoError(t, s.AddBookmark(ctx, "u2", 2))

	ok, err := s.IsBookmarked(ctx, "u1", 2)
	require.NoError(t, err)
	assert.False(t, ok)

	ids, err := s.ListBookmarks(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids)
}

func TestBookmarks_MissingSetIsEmpty(t *testing.T) {
	s, _ := newTestStore(t)

	ids, err := s.ListBookmarks(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestBookmarks_RedisDown(t *testing.T) {
	s, mr := newTestStore(t)
	mr.Close()

	_, err := s.ToggleBookmark(context.Background(), "u1", 1)
	assert.Error(t, err)
}

func TestTitles(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	title, err := s.GetTitle(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, title)

	require.NoError(t, s.SetTitle(ctx, 5, "Pinned"))
	require.NoError(t, s.SetTitle(ctx, 6, "Other"))

	titles, err := s.GetTitles(ctx, []int64{5, 6, 7})
	require.NoError(t, err)
	assert.Equal(t, map[int64]string{5: "Pinned", 6: "Other"}, titles)

	// Empty deletes
	require.NoError(t, s.SetTitle(ctx, 5, ""))
	title, err = s.GetTitle(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, title)

	require.NoError(t, s.DeleteTitles(ctx, 6))
	titles, err = s.GetTitles(ctx, []int64{6})
	require.NoError(t, err)
	assert.Empty(t, titles)
}

func TestItems_RoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	items := []*domain.ContentItem{
		{ID: 1, Type: "post", Title: "One", Status: domain.StatusPublish},
		{ID: 2, Type: "page", Title: "Two", Status: domain.StatusDraft},
	}
	require.NoError(t, s.SaveItemsMany(ctx, items))

	got, err := s.GetItem(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Two", got.Title)

	all, err := s.GetAllItems(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, s.DeleteItem(ctx, 1))
	_, err = s.GetItem(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	all, err = s.GetAllItems(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestTypesAndUsers_Replace(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveTypes(ctx, []domain.ContentType{{Name: "post"}, {Name: "page"}}))
	require.NoError(t, s.SaveTypes(ctx, []domain.ContentType{{Name: "book", Label: "Books"}}))

	types, err := s.GetTypes(ctx)
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, "Books", types[0].Label)

	require.NoError(t, s.SaveUsers(ctx, []*domain.User{{ID: "alice", Role: domain.RoleEditor}}))
	users, err := s.GetUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, domain.RoleEditor, users[0].Role)
}
