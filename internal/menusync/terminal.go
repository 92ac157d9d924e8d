package menusync

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/MrSnakeDoc/adminmarks/internal/domain"
)

// ReloadFunc refetches the client configuration.
type ReloadFunc func(ctx context.Context) (*domain.ClientConfig, error)

// Terminal is a Surface writing menus to a terminal.
type Terminal struct {
	mu      sync.Mutex
	w       io.Writer
	label   string
	anchors map[string]bool
	reload  ReloadFunc

	header  lipgloss.Style
	group   lipgloss.Style
	entry   lipgloss.Style
	current lipgloss.Style
	muted   lipgloss.Style
}

// NewTerminal creates a terminal surface for cfg. reload may be nil, in
// which case Reload only redraws what the surface last knew.
func NewTerminal(w io.Writer, cfg *domain.ClientConfig, reload ReloadFunc) *Terminal {
	r := lipgloss.NewRenderer(w)
	t := &Terminal{
		w:       w,
		reload:  reload,
		header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A")),
		group:   r.NewStyle().Bold(true).PaddingLeft(1),
		entry:   r.NewStyle().PaddingLeft(3),
		current: r.NewStyle().PaddingLeft(1).Bold(true).Foreground(lipgloss.Color("#FFC107")),
		muted:   r.NewStyle().Faint(true),
	}
	t.configure(cfg)
	return t
}

func (t *Terminal) configure(cfg *domain.ClientConfig) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.label = cfg.Label
	if t.label == "" {
		t.label = "Bookmarks"
	}
	t.anchors = make(map[string]bool, len(cfg.Anchors))
	for _, a := range cfg.Anchors {
		t.anchors[a] = true
	}
}

// HasAnchor implements Surface.
func (t *Terminal) HasAnchor(handle string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.anchors[handle]
}

// Render implements Surface. Menus without an anchor are not drawn.
func (t *Terminal) Render(menus []domain.Menu, current int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var b strings.Builder
	b.WriteString(t.header.Render("★ "+t.label) + "\n")

	drawn := 0
	for _, menu := range menus {
		if !t.anchors[menu.Handle] || len(menu.Items) == 0 {
			continue
		}
		drawn++
		b.WriteString(t.group.Render(menu.Label) + " " + t.muted.Render(menu.Href) + "\n")
		for _, e := range menu.Items {
			line := fmt.Sprintf("#%d %s %s", e.ID, e.Label, t.muted.Render(e.URL))
			if current != 0 && e.ID == current {
				b.WriteString(t.current.Render("▸ "+line) + "\n")
				continue
			}
			b.WriteString(t.entry.Render(line) + "\n")
		}
	}
	if drawn == 0 {
		b.WriteString(t.muted.Render("  (empty)") + "\n")
	}

	_, err := io.WriteString(t.w, b.String())
	return err
}

// Reload implements Surface: it refetches the configuration, refreshes the
// anchors and draws the fresh menus.
func (t *Terminal) Reload(ctx context.Context) error {
	if t.reload == nil {
		return nil
	}
	cfg, err := t.reload(ctx)
	if err != nil {
		return fmt.Errorf("reload menus: %w", err)
	}
	t.configure(cfg)
	return t.Render(cfg.Menus, cfg.CurrentItemID)
}
