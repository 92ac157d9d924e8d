package menusync

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/adminmarks/internal/domain"
	"github.com/MrSnakeDoc/adminmarks/internal/logger"
)

type fakeSurface struct {
	anchors map[string]bool
	renders [][]domain.Menu
	current []int64
	reloads int
}

func (f *fakeSurface) HasAnchor(handle string) bool { return f.anchors[handle] }

func (f *fakeSurface) Render(menus []domain.Menu, current int64) error {
	f.renders = append(f.renders, menus)
	f.current = append(f.current, current)
	return nil
}

func (f *fakeSurface) Reload(context.Context) error {
	f.reloads++
	return nil
}

func seedConfig() *domain.ClientConfig {
	return &domain.ClientConfig{
		Nonce:         "tok",
		Label:         "Bookmarks",
		CurrentItemID: 42,
		Anchors:       []string{"content-post", "content-page", "content-catalog"},
		Menus: []domain.Menu{
			{
				Handle:      "content-post",
				Href:        "/admin/content/post?admin_bookmarks=1",
				ContentType: "post",
				Label:       "Posts",
				Items: []domain.MenuEntry{
					{ID: 42, Label: "Hello", URL: "/admin/content/item/42/edit"},
					{ID: 43, Label: "World", URL: "/admin/content/item/43/edit"},
				},
			},
			{
				Handle:      "content-page",
				Href:        "/admin/content/page?admin_bookmarks=1",
				ContentType: "page",
				Label:       "Pages",
				Items:       []domain.MenuEntry{{ID: 50, Label: "About", URL: "/admin/content/item/50/edit"}},
			},
		},
	}
}

func newTestMirror() (*Mirror, *fakeSurface) {
	cfg := seedConfig()
	surface := &fakeSurface{anchors: map[string]bool{}}
	for _, a := range cfg.Anchors {
		surface.anchors[a] = true
	}
	return NewMirror(cfg, surface, logger.NewNop()), surface
}

func added(id int64, label, handle, contentType string) domain.ToggleResult {
	return domain.ToggleResult{
		ItemID: id,
		Item: &domain.ToggledItem{
			ID:          id,
			URL:         "/admin/content/item/" + label + "/edit",
			Label:       label,
			GroupHandle: handle,
			GroupHref:   "/admin/content/" + contentType + "?admin_bookmarks=1",
			ContentType: contentType,
		},
	}
}

func TestApplyRemoved(t *testing.T) {
	m, surface := newTestMirror()
	ctx := context.Background()

	require.NoError(t, m.Apply(ctx, domain.ToggleResult{ItemID: 43, Removed: true, GroupHandle: "content-post"}))
	menus := m.Menus()
	require.Len(t, menus, 2)
	assert.Equal(t, []domain.MenuEntry{{ID: 42, Label: "Hello", URL: "/admin/content/item/42/edit"}}, menus[0].Items)

	// Removing the last entry drops the group.
	require.NoError(t, m.Apply(ctx, domain.ToggleResult{ItemID: 50, Removed: true, GroupHandle: "content-page"}))
	menus = m.Menus()
	require.Len(t, menus, 1)
	assert.Equal(t, "content-post", menus[0].Handle)

	assert.Len(t, surface.renders, 2)
	assert.Equal(t, []int64{42, 42}, surface.current)
}

func TestApplyRemovedWithoutHandle(t *testing.T) {
	m, _ := newTestMirror()

	require.NoError(t, m.Apply(context.Background(), domain.ToggleResult{ItemID: 50, Removed: true}))
	assert.Len(t, m.Menus(), 1)
}

func TestApplyAddedUpserts(t *testing.T) {
	m, surface := newTestMirror()
	ctx := context.Background()

	require.NoError(t, m.Apply(ctx, added(44, "Third", "content-post", "post")))
	require.NoError(t, m.Apply(ctx, added(44, "Renamed", "content-post", "post")))

	menus := m.Menus()
	require.Len(t, menus[0].Items, 3)
	assert.Equal(t, "Renamed", menus[0].Items[2].Label)
	assert.Len(t, surface.renders, 2)
}

func TestApplyAddedNewGroup(t *testing.T) {
	m, surface := newTestMirror()

	require.NoError(t, m.Apply(context.Background(), added(7, "Widget", "content-catalog", "catalog")))

	want := domain.Menu{
		Handle:      "content-catalog",
		Href:        "/admin/content/catalog?admin_bookmarks=1",
		ContentType: "catalog",
		Label:       "Catalog",
		Items:       []domain.MenuEntry{{ID: 7, Label: "Widget", URL: "/admin/content/item/Widget/edit"}},
	}
	menus := m.Menus()
	require.Len(t, menus, 3)
	if diff := cmp.Diff(want, menus[2]); diff != "" {
		t.Errorf("new group mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 0, surface.reloads)
	require.Len(t, surface.renders, 1)
	assert.Len(t, surface.renders[0], 3)
}

func TestApplyWithoutAnchorReloads(t *testing.T) {
	m, surface := newTestMirror()

	require.NoError(t, m.Apply(context.Background(), added(9, "Orphan", "content-product", "product")))

	assert.Equal(t, 1, surface.reloads)
	assert.Empty(t, surface.renders)
}

func TestApplyUnresolvedAddIsNoop(t *testing.T) {
	m, surface := newTestMirror()
	before := m.Menus()

	require.NoError(t, m.Apply(context.Background(), domain.ToggleResult{ItemID: 0}))

	assert.Equal(t, before, m.Menus())
	assert.Empty(t, surface.renders)
	assert.Zero(t, surface.reloads)
}

type fakeToggler struct {
	calls int
	res   domain.ToggleResult
	err   error
}

func (f *fakeToggler) Toggle(_ context.Context, nonce string, id int64) (domain.ToggleResult, error) {
	f.calls++
	return f.res, f.err
}

func TestSyncerFailureLeavesMirror(t *testing.T) {
	m, surface := newTestMirror()
	api := &fakeToggler{err: errors.New("connection refused")}
	s := NewSyncer(api, seedConfig(), m, logger.NewNop())
	before := m.Menus()

	_, err := s.Toggle(context.Background(), 42)
	require.Error(t, err)

	assert.Equal(t, 1, api.calls)
	assert.Equal(t, before, m.Menus())
	assert.Empty(t, surface.renders)
}

func TestSyncerAppliesResult(t *testing.T) {
	m, _ := newTestMirror()
	api := &fakeToggler{res: domain.ToggleResult{ItemID: 42, Removed: true, GroupHandle: "content-post"}}
	s := NewSyncer(api, seedConfig(), m, logger.NewNop())

	res, err := s.Toggle(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, res.Removed)
	assert.Len(t, m.Menus()[0].Items, 1)
}

func TestTerminalHighlightsCurrent(t *testing.T) {
	var buf bytes.Buffer
	cfg := seedConfig()
	term := NewTerminal(&buf, cfg, nil)

	require.NoError(t, term.Render(cfg.Menus, 42))
	out := buf.String()

	assert.Contains(t, out, "Bookmarks")
	assert.Contains(t, out, "Posts")
	assert.Contains(t, out, "▸ #42 Hello")
	assert.NotContains(t, out, "▸ #43")
	assert.Equal(t, 1, strings.Count(out, "▸"))
}

func TestTerminalReload(t *testing.T) {
	var buf bytes.Buffer
	fresh := seedConfig()
	fresh.Anchors = append(fresh.Anchors, "content-product")

	term := NewTerminal(&buf, seedConfig(), func(context.Context) (*domain.ClientConfig, error) {
		return fresh, nil
	})
	assert.False(t, term.HasAnchor("content-product"))

	require.NoError(t, term.Reload(context.Background()))
	assert.True(t, term.HasAnchor("content-product"))
	assert.Contains(t, buf.String(), "About")
}

func TestApplyAddedNewGroupUsesServerLabel(t *testing.T) {
	m, _ := newTestMirror()
	res := added(8, "Gadget", "content-catalog", "catalog")
	res.Item.GroupLabel = "Catalog entries"

	require.NoError(t, m.Apply(context.Background(), res))

	menus := m.Menus()
	require.Len(t, menus, 3)
	assert.Equal(t, "Catalog entries", menus[2].Label)
}

func TestApplyRemovedFromUnknownGroupReloads(t *testing.T) {
	m, surface := newTestMirror()
	before := m.Menus()

	require.NoError(t, m.Apply(context.Background(),
		domain.ToggleResult{ItemID: 77, Removed: true, GroupHandle: "content-product"}))

	assert.Equal(t, 1, surface.reloads)
	assert.Empty(t, surface.renders)
	assert.Equal(t, before, m.Menus())
}

func TestApplyRemovedUnknownItemInKnownGroupIsNoop(t *testing.T) {
	m, surface := newTestMirror()

	require.NoError(t, m.Apply(context.Background(),
		domain.ToggleResult{ItemID: 77, Removed: true, GroupHandle: "content-post"}))

	assert.Zero(t, surface.reloads)
	assert.Empty(t, surface.renders)
}

func TestApplyAddedWithoutDescriptorNeverRenders(t *testing.T) {
	var buf bytes.Buffer
	cfg := seedConfig()
	cfg.Menus = nil
	term := NewTerminal(&buf, cfg, nil)
	m := NewMirror(cfg, term, logger.NewNop())

	// The server withholds the descriptor of items the user cannot edit.
	require.NoError(t, m.Apply(context.Background(), domain.ToggleResult{ItemID: 42, Removed: false}))
	require.NoError(t, m.Render())

	assert.Empty(t, m.Menus())
	assert.NotContains(t, buf.String(), "#42")
}
