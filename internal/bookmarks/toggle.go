package bookmarks

import (
	"context"

	"github.com/MrSnakeDoc/adminmarks/internal/domain"
)

// ToggleWithResult flips itemID for userID and describes the mutation.
//
// The request cache is invalidated before the description is computed so the
// group handle and href reflect the new state. An added item that does not
// resolve is reported without an item descriptor; a removed one without
// group metadata. Items of unsupported types or that the user cannot edit
// get no descriptor either, matching what the menus show.
func (s *Service) ToggleWithResult(ctx context.Context, userID string, itemID int64) (domain.ToggleResult, error) {
	on, err := s.Toggle(ctx, userID, itemID)
	if err != nil {
		return domain.ToggleResult{}, err
	}
	CacheFrom(ctx).Invalidate(userID)

	res := domain.ToggleResult{ItemID: itemID, Removed: !on}

	item, ok := s.Item(itemID)
	if !ok {
		return res, nil
	}
	grp := s.Group(item.Type)

	if !on {
		res.GroupHandle = grp.Handle
		res.ContentType = grp.ContentType
		res.GroupHref = grp.Href
		return res, nil
	}

	user, err := s.ResolveUser(userID)
	if err != nil {
		return domain.ToggleResult{}, err
	}
	if !s.IsSupported(item.Type) || !domain.CanEdit(user, item) {
		return res, nil
	}

	title, err := s.Title(ctx, itemID)
	if err != nil {
		return domain.ToggleResult{}, err
	}
	res.Item = &domain.ToggledItem{
		ID:          item.ID,
		URL:         s.opts.Routes.EditURL(item.ID),
		Label:       domain.ResolveLabel(title, item.Title, item.ID, s.opts.UntitledPattern),
		GroupHandle: grp.Handle,
		GroupHref:   grp.Href,
		GroupLabel:  grp.Label,
		ContentType: grp.ContentType,
	}
	return res, nil
}
