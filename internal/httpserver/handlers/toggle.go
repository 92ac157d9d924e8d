package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/MrSnakeDoc/adminmarks/internal/domain"
	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/mw"
	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/respond"
	"github.com/MrSnakeDoc/adminmarks/internal/logger"
)

// Toggle flips the actor's bookmark on post_id and answers with the menu
// metadata the client needs to patch its navigation.
//
// The nonce is checked before anything is mutated. A missing or unparsable
// post_id is toggled as 0.
func Toggle(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			respond.Error(w, http.StatusBadRequest, respond.CodeBadRequest, err.Error())
			return
		}

		if action := r.PostFormValue("action"); action != domain.ToggleAction {
			d.Metrics.RecordToggleRejected("action")
			respond.Error(w, http.StatusBadRequest, respond.CodeUnknownAction, "unknown action "+strconv.Quote(action))
			return
		}

		user := mw.UserFrom(r.Context())
		if !d.Nonces.Verify(r.PostFormValue("nonce"), domain.NonceActionToggle, user.ID) {
			d.Metrics.RecordToggleRejected("nonce")
			d.Logger.Info("toggle rejected: invalid nonce",
				logger.String("user", user.ID))
			writeError(w, r, d, domain.ErrInvalidNonce)
			return
		}

		itemID, _ := strconv.ParseInt(strings.TrimSpace(r.PostFormValue("post_id")), 10, 64)

		result, err := d.Bookmarks.ToggleWithResult(r.Context(), user.ID, itemID)
		if err != nil {
			writeError(w, r, d, err)
			return
		}

		respond.JSON(w, http.StatusOK, result)
	}
}
