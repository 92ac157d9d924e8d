package handlers

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/mw"
	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/respond"
	"github.com/MrSnakeDoc/adminmarks/internal/logger"
)

// Dashboard renders the "My Bookmarks" widget as HTML, or JSON when the
// client accepts application/json.
func Dashboard(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := mw.UserFrom(r.Context())

		widget, err := d.Projector.Dashboard(r.Context(), user, printer(r))
		if err != nil {
			writeError(w, r, d, err)
			return
		}

		if strings.Contains(r.Header.Get("Accept"), "application/json") {
			respond.JSON(w, http.StatusOK, widget)
			return
		}

		var buf bytes.Buffer
		if err := widget.Render(&buf); err != nil {
			writeError(w, r, d, err)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(buf.Bytes()); err != nil {
			d.Logger.Debug("failed to write response", logger.Error(err))
		}
	}
}
