// Package menu projects a user's bookmark groups onto the admin navigation
// surfaces: primary navigation, admin bar, dashboard widget and list tables.
//
// Every projection applies domain.CanEdit per item. Items failing it are
// left out silently, and a group left without items is not emitted.
package menu

import (
	"context"

	"golang.org/x/text/message"

	"github.com/MrSnakeDoc/adminmarks/internal/bookmarks"
	"github.com/MrSnakeDoc/adminmarks/internal/domain"
	"github.com/MrSnakeDoc/adminmarks/internal/i18n"
)

// AdminBarRoot is the id of the admin bar root node.
const AdminBarRoot = "admin-bookmarks"

// Node is one navigation entry.
type Node struct {
	ID       string `json:"id"`
	Parent   string `json:"parent,omitempty"`
	Title    string `json:"title"`
	Href     string `json:"href,omitempty"`
	Current  bool   `json:"current,omitempty"`
	Children []Node `json:"children,omitempty"`
}

// Projector renders bookmark groups for one actor.
type Projector struct {
	svc *bookmarks.Service
}

// NewProjector creates a projector over svc.
func NewProjector(svc *bookmarks.Service) *Projector {
	return &Projector{svc: svc}
}

// visibleGroup is a group restricted to the items the actor can edit, with
// resolved labels.
type visibleGroup struct {
	group  *domain.BookmarkGroup
	items  []*domain.ContentItem
	labels map[int64]string
}

// visible computes the actor's groups sorted by content type, dropping items
// the actor cannot edit and groups left empty.
func (p *Projector) visible(ctx context.Context, user *domain.User) ([]visibleGroup, error) {
	groups, err := p.svc.Groups(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	var out []visibleGroup
	for _, t := range groups.Types() {
		grp := groups[t]
		var items []*domain.ContentItem
		for _, item := range grp.Items {
			if domain.CanEdit(user, item) {
				items = append(items, item)
			}
		}
		if len(items) == 0 {
			continue
		}
		labels, err := p.svc.Labels(ctx, items)
		if err != nil {
			return nil, err
		}
		out = append(out, visibleGroup{group: grp, items: items, labels: labels})
	}
	return out, nil
}

// Menus returns one client menu per visible group.
func (p *Projector) Menus(ctx context.Context, user *domain.User) ([]domain.Menu, error) {
	groups, err := p.visible(ctx, user)
	if err != nil {
		return nil, err
	}

	routes := p.svc.Routes()
	menus := make([]domain.Menu, 0, len(groups))
	for _, vg := range groups {
		m := domain.Menu{
			Handle:      vg.group.Handle,
			Href:        vg.group.Href,
			ContentType: vg.group.ContentType,
			Label:       vg.group.Label,
			Items:       make([]domain.MenuEntry, 0, len(vg.items)),
		}
		for _, item := range vg.items {
			m.Items = append(m.Items, domain.MenuEntry{
				ID:    item.ID,
				Label: vg.labels[item.ID],
				URL:   routes.EditURL(item.ID),
			})
		}
		menus = append(menus, m)
	}
	return menus, nil
}

// PrimaryNav returns one "Bookmarks" parent per visible group, pointing at
// the filtered listing, with one child per item. current marks the open item.
func (p *Projector) PrimaryNav(ctx context.Context, user *domain.User, pr *message.Printer, current int64) ([]Node, error) {
	menus, err := p.Menus(ctx, user)
	if err != nil {
		return nil, err
	}

	nodes := make([]Node, 0, len(menus))
	for _, m := range menus {
		parent := Node{
			ID:    m.Handle,
			Title: pr.Sprintf(i18n.Bookmarks),
			Href:  m.Href,
		}
		for _, entry := range m.Items {
			parent.Children = append(parent.Children, Node{
				ID:      itemNodeID(m.Handle, entry.ID),
				Parent:  m.Handle,
				Title:   entry.Label,
				Href:    entry.URL,
				Current: current != 0 && entry.ID == current,
			})
		}
		nodes = append(nodes, parent)
	}
	return nodes, nil
}

// AdminBar returns the admin bar nodes as a flat list: the root, one node
// per group and one per item, linked through Parent. No groups, no nodes.
func (p *Projector) AdminBar(ctx context.Context, user *domain.User, pr *message.Printer) ([]Node, error) {
	groups, err := p.visible(ctx, user)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return []Node{}, nil
	}

	routes := p.svc.Routes()
	nodes := []Node{{ID: AdminBarRoot, Title: pr.Sprintf(i18n.Bookmarks)}}
	for _, vg := range groups {
		groupID := AdminBarRoot + "-" + domain.SanitizeKey(vg.group.ContentType)
		nodes = append(nodes, Node{
			ID:     groupID,
			Parent: AdminBarRoot,
			Title:  vg.group.Label,
			Href:   vg.group.Href,
		})
		for _, item := range vg.items {
			nodes = append(nodes, Node{
				ID:     itemNodeID(groupID, item.ID),
				Parent: groupID,
				Title:  vg.labels[item.ID],
				Href:   routes.EditURL(item.ID),
			})
		}
	}
	return nodes, nil
}

func itemNodeID(parent string, id int64) string {
	return parent + "-" + formatID(id)
}
