package handlers

import (
	"net/http"
	"strconv"

	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/mw"
	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/respond"
	"github.com/MrSnakeDoc/adminmarks/internal/menu"
)

type navResponse struct {
	Nodes []menu.Node `json:"nodes"`
}

// Menu returns the primary navigation projection. ?current= marks the open
// item.
func Menu(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := mw.UserFrom(r.Context())
		current, _ := strconv.ParseInt(r.URL.Query().Get("current"), 10, 64)

		nodes, err := d.Projector.PrimaryNav(r.Context(), user, printer(r), current)
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		if nodes == nil {
			nodes = []menu.Node{}
		}

		respond.JSON(w, http.StatusOK, navResponse{Nodes: nodes})
	}
}

// Bar returns the admin bar nodes.
func Bar(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := mw.UserFrom(r.Context())

		nodes, err := d.Projector.AdminBar(r.Context(), user, printer(r))
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		if nodes == nil {
			nodes = []menu.Node{}
		}

		respond.JSON(w, http.StatusOK, navResponse{Nodes: nodes})
	}
}
