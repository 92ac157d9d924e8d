package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/mw"
	"github.com/MrSnakeDoc/adminmarks/internal/logger"
)

func init() { Register(registerToggle) }

func registerToggle(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:        d.ToggleBurst,
		RefillPerMin: d.TogglePerMinute,
		MaxEntries:   10000,
		TrustProxy:   d.TrustProxy,
		Key: func(r *http.Request) string {
			if u := mw.UserFrom(r.Context()); u != nil {
				return "user:" + u.ID
			}
			return "ip:" + r.RemoteAddr
		},
		OnReject: func(key string) {
			d.Metrics.RecordToggleRejected("rate_limit")
			d.Logger.Warn("toggle rate limit exceeded", logger.String("key", key))
		},
	})

	admin(r, d).With(limit).Post(d.AdminBase+"/ajax", handlers.Toggle(d))
}
