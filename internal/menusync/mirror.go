// Package menusync keeps a client-side copy of the bookmark menus in step
// with toggle results, without refetching them from the server.
package menusync

import (
	"context"
	"slices"
	"sync"

	"github.com/MrSnakeDoc/adminmarks/internal/domain"
	"github.com/MrSnakeDoc/adminmarks/internal/logger"
)

// Surface draws menus for the user.
type Surface interface {
	// HasAnchor reports whether the host navigation exposes handle.
	HasAnchor(handle string) bool

	// Render draws every menu and highlights the entry of current
	// (0 for none).
	Render(menus []domain.Menu, current int64) error

	// Reload rebuilds the whole view from the server.
	Reload(ctx context.Context) error
}

// Mirror holds the menus received at bootstrap and patches them with toggle
// results.
type Mirror struct {
	mu      sync.Mutex
	menus   []domain.Menu
	current int64
	surface Surface
	logger  logger.Logger
}

// NewMirror creates a mirror seeded from cfg.
func NewMirror(cfg *domain.ClientConfig, surface Surface, log logger.Logger) *Mirror {
	m := &Mirror{surface: surface, logger: log}
	m.Reset(cfg)
	return m
}

// Reset replaces the mirrored state with cfg.
func (m *Mirror) Reset(cfg *domain.ClientConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.menus = cloneMenus(cfg.Menus)
	m.current = cfg.CurrentItemID
}

// Menus returns a copy of the mirrored menus.
func (m *Mirror) Menus() []domain.Menu {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneMenus(m.menus)
}

// Render draws the current state.
func (m *Mirror) Render() error {
	m.mu.Lock()
	menus, current := cloneMenus(m.menus), m.current
	m.mu.Unlock()

	return m.surface.Render(menus, current)
}

// Apply patches the mirror with one toggle result and redraws.
//
// A removed item is deleted from its group, and the group is dropped once
// empty. An added item is upserted by id into the group of its handle,
// creating the group when the handle is new. When the surface has no anchor
// for the affected handle, or a removal names a group the mirror does not
// hold, the whole view is reloaded instead.
func (m *Mirror) Apply(ctx context.Context, res domain.ToggleResult) error {
	m.mu.Lock()
	handle, outcome := m.applyLocked(res)
	menus, current := cloneMenus(m.menus), m.current
	m.mu.Unlock()

	switch {
	case outcome == missing:
		m.logger.Info("menu of removed item not mirrored, reloading",
			logger.String("handle", handle),
			logger.Int64("item_id", res.ItemID))
		return m.surface.Reload(ctx)
	case outcome == unchanged:
		m.logger.Debug("toggle result left menus unchanged",
			logger.Int64("item_id", res.ItemID),
			logger.Bool("removed", res.Removed))
		return nil
	case !m.surface.HasAnchor(handle):
		m.logger.Info("no anchor for menu, reloading",
			logger.String("handle", handle))
		return m.surface.Reload(ctx)
	}

	return m.surface.Render(menus, current)
}

type applyOutcome int

const (
	unchanged applyOutcome = iota
	changed
	// missing means the result names a group the mirror does not hold.
	missing
)

func (m *Mirror) applyLocked(res domain.ToggleResult) (string, applyOutcome) {
	if res.Removed {
		return m.removeLocked(res)
	}
	return m.addLocked(res)
}

func (m *Mirror) removeLocked(res domain.ToggleResult) (string, applyOutcome) {
	found := false
	for gi := range m.menus {
		menu := &m.menus[gi]
		if res.GroupHandle != "" && menu.Handle != res.GroupHandle {
			continue
		}
		found = true

		ei := slices.IndexFunc(menu.Items, func(e domain.MenuEntry) bool { return e.ID == res.ItemID })
		if ei < 0 {
			continue
		}

		handle := menu.Handle
		menu.Items = slices.Delete(menu.Items, ei, ei+1)
		if len(menu.Items) == 0 {
			m.menus = slices.Delete(m.menus, gi, gi+1)
		}
		return handle, changed
	}

	if res.GroupHandle != "" && !found {
		return res.GroupHandle, missing
	}
	return "", unchanged
}

func (m *Mirror) addLocked(res domain.ToggleResult) (string, applyOutcome) {
	item := res.Item
	if item == nil || item.GroupHandle == "" {
		return "", unchanged
	}

	gi := slices.IndexFunc(m.menus, func(menu domain.Menu) bool { return menu.Handle == item.GroupHandle })
	if gi < 0 {
		label := item.GroupLabel
		if label == "" {
			label = domain.HumanizeTypeName(item.ContentType)
		}
		m.menus = append(m.menus, domain.Menu{
			Handle:      item.GroupHandle,
			Href:        item.GroupHref,
			ContentType: item.ContentType,
			Label:       label,
		})
		gi = len(m.menus) - 1
	}

	menu := &m.menus[gi]
	entry := domain.MenuEntry{ID: item.ID, Label: item.Label, URL: item.URL}
	if ei := slices.IndexFunc(menu.Items, func(e domain.MenuEntry) bool { return e.ID == item.ID }); ei >= 0 {
		menu.Items[ei] = entry
	} else {
		menu.Items = append(menu.Items, entry)
	}
	return menu.Handle, changed
}

func cloneMenus(in []domain.Menu) []domain.Menu {
	out := make([]domain.Menu, len(in))
	for i, menu := range in {
		menu.Items = slices.Clone(menu.Items)
		out[i] = menu
	}
	return out
}
