package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/respond"
)

type readyzResponse struct {
	Ready  bool   `json:"ready"`
	Reason string `json:"reason,omitempty"`
}

// Readyz reports ready once a catalog is loaded and Redis answers. Bookmark
// sets live in Redis only, so there is nothing to serve without it.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.MemoryIndex.GetLastReload().IsZero() {
			respond.JSON(w, http.StatusServiceUnavailable, readyzResponse{Reason: "catalog not loaded"})
			return
		}
		if status := checkRedis(r.Context(), d); !status.OK {
			respond.JSON(w, http.StatusServiceUnavailable, readyzResponse{Reason: "redis " + status.Error})
			return
		}

		respond.JSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}
