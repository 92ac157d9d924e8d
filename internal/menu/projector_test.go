package menu

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/adminmarks/internal/bookmarks"
	"github.com/MrSnakeDoc/adminmarks/internal/domain"
	"github.com/MrSnakeDoc/adminmarks/internal/i18n"
	"github.com/MrSnakeDoc/adminmarks/internal/index"
	"github.com/MrSnakeDoc/adminmarks/internal/logger"
	redisstore "github.com/MrSnakeDoc/adminmarks/internal/store/redis"
)

type fixture struct {
	proj  *Projector
	svc   *bookmarks.Service
	idx   *index.MemoryIndex
	store *redisstore.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	idx := index.NewMemoryIndex()
	idx.UpdateCatalog(
		[]domain.ContentType{{Name: "post", Label: "Posts"}, {Name: "page", Label: "Pages"}},
		[]*domain.ContentItem{
			{ID: 42, Type: "post", Title: "Hello", Status: domain.StatusPublish, AuthorID: "alice"},
			{ID: 43, Type: "post", Title: "Alpha", Status: domain.StatusDraft, AuthorID: "bob"},
			{ID: 44, Type: "post", Title: "Alpha", Status: domain.StatusPublish, AuthorID: "bob", Permalink: "/alpha"},
			{ID: 50, Type: "page", Title: "About", Status: domain.StatusPublish, AuthorID: "alice"},
		},
		[]*domain.User{
			{ID: "alice", Role: domain.RoleAdministrator},
			{ID: "bob", Role: domain.RoleAuthor},
			{ID: "carl", Role: domain.RoleContributor},
		},
	)

	store := redisstore.NewStore(client)
	svc := bookmarks.NewService(store, idx, bookmarks.Options{Routes: domain.NewRoutes("/admin")}, nil, logger.NewNop())
	return &fixture{proj: NewProjector(svc), svc: svc, idx: idx, store: store}
}

func (f *fixture) user(t *testing.T, id string) *domain.User {
	t.Helper()
	u, ok := f.idx.GetUser(id)
	require.True(t, ok)
	return u
}

func (f *fixture) bookmark(t *testing.T, userID string, ids ...int64) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, f.svc.Add(context.Background(), userID, id))
	}
}

func TestMenus(t *testing.T) {
	f := newFixture(t)
	f.bookmark(t, "alice", 50, 42, 43)
	require.NoError(t, f.store.SetTitle(context.Background(), 43, "Custom"))

	menus, err := f.proj.Menus(context.Background(), f.user(t, "alice"))
	require.NoError(t, err)
	require.Len(t, menus, 2)

	assert.Equal(t, domain.Menu{
		Handle:      "content-page",
		Href:        "/admin/content/page?admin_bookmarks=1",
		ContentType: "page",
		Label:       "Pages",
		Items:       []domain.MenuEntry{{ID: 50, Label: "About", URL: "/admin/content/item/50/edit"}},
	}, menus[0])

	assert.Equal(t, []domain.MenuEntry{
		{ID: 42, Label: "Hello", URL: "/admin/content/item/42/edit"},
		{ID: 43, Label: "Custom", URL: "/admin/content/item/43/edit"},
	}, menus[1].Items)
}

func TestPermissionFilteringAcrossProjections(t *testing.T) {
	f := newFixture(t)
	// bob can edit 43 and 44, not alice's 42 or 50
	f.bookmark(t, "bob", 42, 43, 50)
	bob := f.user(t, "bob")
	pr := i18n.English()
	ctx := context.Background()

	nav, err := f.proj.PrimaryNav(ctx, bob, pr, 0)
	require.NoError(t, err)
	require.Len(t, nav, 1, "page group has no editable item")
	require.Len(t, nav[0].Children, 1)
	assert.Equal(t, "content-post-43", nav[0].Children[0].ID)

	bar, err := f.proj.AdminBar(ctx, bob, pr)
	require.NoError(t, err)
	for _, n := range bar {
		assert.NotContains(t, n.ID, "-42")
		assert.NotContains(t, n.ID, "-50")
	}

	dash, err := f.proj.Dashboard(ctx, bob, pr)
	require.NoError(t, err)
	require.Len(t, dash.Sections, 1)
	require.Len(t, dash.Sections[0].Rows, 1)
	assert.EqualValues(t, 43, dash.Sections[0].Rows[0].ID)
}

func TestPrimaryNav(t *testing.T) {
	f := newFixture(t)
	f.bookmark(t, "alice", 42, 44)

	nav, err := f.proj.PrimaryNav(context.Background(), f.user(t, "alice"), i18n.Printer("fr"), 44)
	require.NoError(t, err)
	require.Len(t, nav, 1)

	parent := nav[0]
	assert.Equal(t, "content-post", parent.ID)
	assert.Equal(t, "Favoris", parent.Title)
	assert.Equal(t, "/admin/content/post?admin_bookmarks=1", parent.Href)
	require.Len(t, parent.Children, 2)
	assert.False(t, parent.Children[0].Current)
	assert.True(t, parent.Children[1].Current)
}

func TestAdminBar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")

	empty, err := f.proj.AdminBar(ctx, alice, i18n.English())
	require.NoError(t, err)
	assert.Empty(t, empty)

	f.bookmark(t, "alice", 42, 50)
	bar, err := f.proj.AdminBar(ctx, alice, i18n.English())
	require.NoError(t, err)

	var ids []string
	for _, n := range bar {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{
		"admin-bookmarks",
		"admin-bookmarks-page",
		"admin-bookmarks-page-50",
		"admin-bookmarks-post",
		"admin-bookmarks-post-42",
	}, ids)
	assert.Equal(t, "admin-bookmarks-post", bar[4].Parent)
	assert.Equal(t, "/admin/content/item/42/edit", bar[4].Href)
	assert.Equal(t, "Posts", bar[3].Title)
}

func TestClientConfig(t *testing.T) {
	f := newFixture(t)
	f.bookmark(t, "alice", 42)

	cfg, err := f.proj.ClientConfig(context.Background(), f.user(t, "alice"), i18n.English(), "tok", "content-post", 42)
	require.NoError(t, err)

	assert.Equal(t, "tok", cfg.Nonce)
	assert.Equal(t, domain.DefaultUntitledPattern, cfg.UntitledPattern)
	assert.Equal(t, "Bookmarks", cfg.Label)
	assert.Equal(t, "content-post", cfg.CurrentHandle)
	assert.EqualValues(t, 42, cfg.CurrentItemID)
	assert.Equal(t, []string{"content-page", "content-post"}, cfg.Anchors)
	require.Len(t, cfg.Menus, 1)
}
