package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/mw"
)

func init() { Register(registerAdmin) }

// admin returns r restricted to resolved actors, with a fresh group cache
// per request.
func admin(r chi.Router, d deps.Deps) chi.Router {
	return r.With(
		mw.EnforceHost(d.AllowedHosts, d.Logger),
		mw.Actor(d.UserHeader, d.Bookmarks, d.Logger),
		mw.RequestCache(),
	)
}

func registerAdmin(r chi.Router, d deps.Deps) {
	a := admin(r, d)
	a.Get(d.AdminBase+"/bootstrap", handlers.Bootstrap(d))
	a.Get(d.AdminBase+"/menu", handlers.Menu(d))
	a.Get(d.AdminBase+"/bar", handlers.Bar(d))
	a.Get(d.AdminBase+"/dashboard", handlers.Dashboard(d))
	a.Get(d.AdminBase+"/content/{type}", handlers.Listing(d))
	a.Post(d.AdminBase+"/content/item/{id}/bookmark-title", handlers.Title(d))
}
