package handlers

import (
	"net/http"
	"strconv"

	"github.com/MrSnakeDoc/adminmarks/internal/domain"
	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/mw"
	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/respond"
)

// Bootstrap returns the client configuration: toggle nonce, labels, anchors
// and the actor's menus.
func Bootstrap(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := mw.UserFrom(r.Context())
		q := r.URL.Query()

		current, _ := strconv.ParseInt(q.Get("current"), 10, 64)
		token := d.Nonces.Create(domain.NonceActionToggle, user.ID)

		cfg, err := d.Projector.ClientConfig(r.Context(), user, printer(r), token, q.Get("screen"), current)
		if err != nil {
			writeError(w, r, d, err)
			return
		}

		respond.JSON(w, http.StatusOK, cfg)
	}
}
