package bookmarks

import (
	"context"
	"slices"

	"github.com/MrSnakeDoc/adminmarks/internal/domain"
)

// Groups buckets userID's bookmarks by content type.
//
// Ids that no longer resolve, disabled items and items of unsupported types
// are skipped. Items keep bookmark insertion order inside their group and
// types without items are absent. Results are memoised in the request cache
// when ctx carries one.
func (s *Service) Groups(ctx context.Context, userID string) (domain.Groups, error) {
	cache := CacheFrom(ctx)
	if cache != nil {
		if g, ok := cache.get(userID); ok {
			s.metrics.RecordGroupCacheHit()
			return g, nil
		}
	}

	ids, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	supported := make(map[string]bool)
	for _, t := range s.SupportedTypes() {
		supported[t.Name] = true
	}

	groups := make(domain.Groups)
	for _, id := range ids {
		item, ok := s.Item(id)
		if !ok || !supported[item.Type] {
			continue
		}
		grp, ok := groups[item.Type]
		if !ok {
			grp = s.newGroup(item.Type)
			groups[item.Type] = grp
		}
		grp.Items = append(grp.Items, item)
	}

	s.metrics.RecordGroupComputation()
	if cache != nil {
		cache.put(userID, groups)
	}
	return groups, nil
}

// Group returns the group metadata of contentType without items. Used to
// describe a group that may just have been emptied.
func (s *Service) Group(contentType string) *domain.BookmarkGroup {
	return s.newGroup(contentType)
}

func (s *Service) newGroup(contentType string) *domain.BookmarkGroup {
	return &domain.BookmarkGroup{
		ContentType: contentType,
		Label:       s.TypeLabel(contentType),
		Href:        s.opts.Routes.BookmarkedListingURL(contentType),
		Handle:      domain.MenuHandle(contentType),
	}
}

// BookmarkedOfType returns userID's bookmarked ids of contentType in
// insertion order.
func (s *Service) BookmarkedOfType(ctx context.Context, userID, contentType string) ([]*domain.ContentItem, error) {
	groups, err := s.Groups(ctx, userID)
	if err != nil {
		return nil, err
	}
	grp, ok := groups[contentType]
	if !ok {
		return nil, nil
	}
	return slices.Clone(grp.Items), nil
}

// Labels resolves the display label of every item, custom title first.
func (s *Service) Labels(ctx context.Context, items []*domain.ContentItem) (map[int64]string, error) {
	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	titles, err := s.store.GetTitles(ctx, ids)
	if err != nil {
		return nil, err
	}
	labels := make(map[int64]string, len(items))
	for _, item := range items {
		labels[item.ID] = domain.ResolveLabel(titles[item.ID], item.Title, item.ID, s.opts.UntitledPattern)
	}
	return labels, nil
}
