package mw

import (
	"net/http"

	"github.com/MrSnakeDoc/adminmarks/internal/bookmarks"
)

// RequestCache gives every request its own group cache, so the groups of a
// user are computed at most once per request.
func RequestCache() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := bookmarks.WithCache(r.Context(), bookmarks.NewRequestCache())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
