package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/adminmarks/internal/domain"
	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/mw"
	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/respond"
	"github.com/MrSnakeDoc/adminmarks/internal/menu"
)

// Listing returns the list table of a content type. ?admin_bookmarks=1
// scopes it to the actor's bookmarks, ?status= to one status.
func Listing(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := mw.UserFrom(r.Context())
		contentType := chi.URLParam(r, "type")
		q := r.URL.Query()
		filtered := q.Get(domain.BookmarkFilterParam) == "1"

		l, err := d.Bookmarks.Listing(r.Context(), user, contentType, filtered)
		if err != nil {
			writeError(w, r, d, err)
			return
		}

		table := d.Projector.Table(l, printer(r))
		if status := q.Get("status"); status != "" && !filtered {
			filterStatus(table, status)
		}
		table.Nonce = d.Nonces.Create(domain.NonceActionToggle, user.ID)
		table.QuickEditNonce = d.Nonces.Create(domain.NonceActionQuickEdit, user.ID)

		respond.JSON(w, http.StatusOK, table)
	}
}

// filterStatus keeps the rows of one status and moves the current view to it.
func filterStatus(t *menu.ListTable, status string) {
	rows := t.Rows[:0]
	for _, row := range t.Rows {
		if row.Status == status {
			rows = append(rows, row)
		}
	}
	t.Rows = rows

	for i := range t.Views {
		t.Views[i].Current = t.Views[i].Key == status
	}
}
