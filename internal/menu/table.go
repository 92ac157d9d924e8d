package menu

import (
	"golang.org/x/text/message"

	"github.com/MrSnakeDoc/adminmarks/internal/bookmarks"
	"github.com/MrSnakeDoc/adminmarks/internal/domain"
	"github.com/MrSnakeDoc/adminmarks/internal/i18n"
)

// Column keys of the list table.
const (
	ColumnCheckbox = "cb"
	ColumnBookmark = "bookmark"
	ColumnTitle    = "title"
	ColumnAuthor   = "author"
	ColumnStatus   = "status"
)

// BookmarksView is the key of the bookmarks view tab.
const BookmarksView = "admin-bookmarks"

// Column is one list table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// BookmarkCell is the toggle control of one row.
type BookmarkCell struct {
	ItemID     int64  `json:"item_id"`
	Bookmarked bool   `json:"bookmarked"`
	Tooltip    string `json:"tooltip"`
}

// Row is one list table row.
type Row struct {
	ID       int64        `json:"id"`
	Title    string       `json:"title"`
	Status   string       `json:"status"`
	Author   string       `json:"author"`
	EditURL  string       `json:"edit_url"`
	Bookmark BookmarkCell `json:"bookmark"`

	// BookmarkTitle is the hidden per-row node holding the custom title,
	// used to prefill the quick edit form.
	BookmarkTitle string `json:"bookmark_title"`
}

// View is one status link above the table.
type View struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	URL     string `json:"url"`
	Current bool   `json:"current"`
}

// ListTable is the list screen of one content type.
type ListTable struct {
	ContentType string   `json:"content_type"`
	Label       string   `json:"label"`
	Filtered    bool     `json:"filtered"`
	Columns     []Column `json:"columns"`
	Rows        []Row    `json:"rows"`
	Views       []View   `json:"views"`

	// QuickEditLabel labels the bookmark title field of the quick edit form.
	QuickEditLabel string `json:"quick_edit_label"`

	// Nonce authorises toggles, QuickEditNonce authorises title edits.
	Nonce          string `json:"nonce"`
	QuickEditNonce string `json:"quick_edit_nonce"`
}

// BaseColumns returns the host's default list table columns.
func BaseColumns() []Column {
	return []Column{
		{Key: ColumnCheckbox},
		{Key: ColumnTitle, Label: "Title"},
		{Key: ColumnAuthor, Label: "Author"},
		{Key: ColumnStatus, Label: "Status"},
	}
}

// InsertBookmarkColumn inserts the bookmark column right after the checkbox
// column, or first when there is none. An existing bookmark column is left
// where it is.
func InsertBookmarkColumn(cols []Column, pr *message.Printer) []Column {
	for _, c := range cols {
		if c.Key == ColumnBookmark {
			return cols
		}
	}

	col := Column{Key: ColumnBookmark, Label: pr.Sprintf(i18n.AddBookmark)}
	at := 0
	for i, c := range cols {
		if c.Key == ColumnCheckbox {
			at = i + 1
			break
		}
	}

	out := make([]Column, 0, len(cols)+1)
	out = append(out, cols[:at]...)
	out = append(out, col)
	out = append(out, cols[at:]...)
	return out
}

// Table projects a listing into a list table.
func (p *Projector) Table(l *bookmarks.Listing, pr *message.Printer) *ListTable {
	routes := p.svc.Routes()

	t := &ListTable{
		ContentType: l.ContentType,
		Label:       l.Label,
		Filtered:    l.Filtered,
		Columns:     InsertBookmarkColumn(BaseColumns(), pr),
		Rows:        make([]Row, 0, len(l.Items)),
		Views:       Views(l, routes, pr),

		QuickEditLabel: pr.Sprintf(i18n.BookmarkTitle),
	}

	for _, item := range l.Items {
		on := l.Bookmarked[item.ID]
		tip := pr.Sprintf(i18n.AddBookmark)
		if on {
			tip = pr.Sprintf(i18n.RemoveBookmark)
		}
		t.Rows = append(t.Rows, Row{
			ID:      item.ID,
			Title:   item.Title,
			Status:  item.Status,
			Author:  item.AuthorID,
			EditURL: routes.EditURL(item.ID),
			Bookmark: BookmarkCell{
				ItemID:     item.ID,
				Bookmarked: on,
				Tooltip:    tip,
			},
			BookmarkTitle: l.Titles[item.ID],
		})
	}
	return t
}

var statusViews = []struct {
	status string
	key    string
}{
	{domain.StatusPublish, i18n.ViewPublished},
	{domain.StatusDraft, i18n.ViewDrafts},
	{domain.StatusPending, i18n.ViewPending},
	{domain.StatusPrivate, i18n.ViewPrivate},
}

// Views returns the status views of a listing. The bookmarks view is added
// when the actor has bookmarks of the type or the filter is active; while
// active it is the only current view.
func Views(l *bookmarks.Listing, routes domain.Routes, pr *message.Printer) []View {
	base := routes.ListingURL(l.ContentType)

	views := []View{{
		Key:     "all",
		Label:   pr.Sprintf(i18n.ViewAll, l.Total),
		URL:     base,
		Current: true,
	}}
	for _, sv := range statusViews {
		n := l.StatusCounts[sv.status]
		if n == 0 {
			continue
		}
		views = append(views, View{
			Key:   sv.status,
			Label: pr.Sprintf(sv.key, n),
			URL:   base + "?status=" + sv.status,
		})
	}

	if l.BookmarkCount == 0 && !l.Filtered {
		return views
	}

	if l.Filtered {
		for i := range views {
			views[i].Current = false
		}
	}
	return append(views, View{
		Key:     BookmarksView,
		Label:   pr.Sprintf(i18n.BookmarksCount, l.BookmarkCount),
		URL:     routes.BookmarkedListingURL(l.ContentType),
		Current: l.Filtered,
	})
}
