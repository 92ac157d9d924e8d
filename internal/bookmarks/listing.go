package bookmarks

import (
	"context"
	"fmt"
	"sort"

	"github.com/MrSnakeDoc/adminmarks/internal/domain"
)

// Listing is the list table of one content type as seen by one actor.
type Listing struct {
	ContentType string
	Label       string

	// Filtered is true when the listing is scoped to bookmarked items.
	Filtered bool

	Items []*domain.ContentItem

	// Bookmarked marks which rows are in the actor's set.
	Bookmarked map[int64]bool

	// Titles holds custom bookmark titles of the rows that have one.
	Titles map[int64]string

	// StatusCounts counts editable items per status; Total counts them all.
	StatusCounts map[string]int
	Total        int

	// BookmarkCount is the number of bookmarked, editable items of the type.
	BookmarkCount int
}

// Listing builds the list table of contentType for user.
//
// Unfiltered listings show every item the user can edit, sticky items first
// and then newest id first. Filtered listings show only bookmarked items in
// bookmark insertion order, without sticky reordering.
func (s *Service) Listing(ctx context.Context, user *domain.User, contentType string, filtered bool) (*Listing, error) {
	if !s.IsSupported(contentType) {
		return nil, fmt.Errorf("type %q: %w", contentType, domain.ErrUnsupportedType)
	}

	var all []*domain.ContentItem
	for _, item := range s.dir.ItemsOfType(contentType) {
		if domain.CanEdit(user, item) {
			all = append(all, item)
		}
	}

	bookmarked, err := s.BookmarkedOfType(ctx, user.ID, contentType)
	if err != nil {
		return nil, err
	}

	l := &Listing{
		ContentType:  contentType,
		Label:        s.TypeLabel(contentType),
		Filtered:     filtered,
		Bookmarked:   make(map[int64]bool),
		StatusCounts: make(map[string]int),
		Total:        len(all),
	}

	for _, item := range bookmarked {
		if domain.CanEdit(user, item) {
			l.Bookmarked[item.ID] = true
			l.BookmarkCount++
		}
	}
	for _, item := range all {
		l.StatusCounts[item.Status]++
	}

	if filtered {
		for _, item := range bookmarked {
			if l.Bookmarked[item.ID] {
				l.Items = append(l.Items, item)
			}
		}
	} else {
		l.Items = all
		sort.SliceStable(l.Items, func(i, j int) bool {
			a, b := l.Items[i], l.Items[j]
			if a.Sticky != b.Sticky {
				return a.Sticky
			}
			return a.ID > b.ID
		})
	}

	ids := make([]int64, len(l.Items))
	for i, item := range l.Items {
		ids[i] = item.ID
	}
	l.Titles, err = s.store.GetTitles(ctx, ids)
	if err != nil {
		return nil, err
	}

	return l, nil
}
