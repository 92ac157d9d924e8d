package menu

import (
	"context"

	"golang.org/x/text/message"

	"github.com/MrSnakeDoc/adminmarks/internal/domain"
	"github.com/MrSnakeDoc/adminmarks/internal/i18n"
)

// Anchors returns the navigation handles the host exposes, one per supported
// content type. Clients can only render menus whose handle is anchored.
func (p *Projector) Anchors() []string {
	types := p.svc.SupportedTypes()
	anchors := make([]string, 0, len(types))
	for _, t := range types {
		anchors = append(anchors, domain.MenuHandle(t.Name))
	}
	return anchors
}

// ClientConfig builds the configuration a client loads at start.
// screen is the navigation handle of the active listing, current the id of
// the open item (0 for none).
func (p *Projector) ClientConfig(ctx context.Context, user *domain.User, pr *message.Printer, nonce, screen string, current int64) (*domain.ClientConfig, error) {
	menus, err := p.Menus(ctx, user)
	if err != nil {
		return nil, err
	}

	return &domain.ClientConfig{
		Nonce:           nonce,
		UntitledPattern: p.svc.UntitledPattern(),
		Label:           pr.Sprintf(i18n.Bookmarks),
		CurrentHandle:   screen,
		CurrentItemID:   current,
		Anchors:         p.Anchors(),
		Menus:           menus,
	}, nil
}
