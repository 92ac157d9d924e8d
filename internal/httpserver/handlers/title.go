package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/adminmarks/internal/domain"
	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/mw"
	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/respond"
)

// Form fields of the quick edit title form.
const (
	TitleField          = "admin_bookmark_title"
	QuickEditNonceField = "admin_bookmarks_quick_edit_nonce"
)

type titleResponse struct {
	ItemID int64  `json:"itemId"`
	Title  string `json:"title"`
}

// Title stores the custom bookmark title of an item. An empty title deletes
// it.
func Title(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, r, d, domain.ErrItemNotFound)
			return
		}
		if err := r.ParseForm(); err != nil {
			respond.Error(w, http.StatusBadRequest, respond.CodeBadRequest, err.Error())
			return
		}

		user := mw.UserFrom(r.Context())
		if !d.Nonces.Verify(r.PostFormValue(QuickEditNonceField), domain.NonceActionQuickEdit, user.ID) {
			writeError(w, r, d, domain.ErrInvalidNonce)
			return
		}

		title, err := d.Bookmarks.SetTitle(r.Context(), user, itemID, r.PostFormValue(TitleField))
		if err != nil {
			writeError(w, r, d, err)
			return
		}

		respond.JSON(w, http.StatusOK, titleResponse{ItemID: itemID, Title: title})
	}
}
