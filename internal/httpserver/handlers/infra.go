package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/respond"
)

type componentStatus struct {
	OK             bool     `json:"ok"`
	ItemsLoaded    *int     `json:"items_loaded,omitempty"`
	UsersLoaded    *int     `json:"users_loaded,omitempty"`
	LastReload     string   `json:"last_reload,omitempty"`
	SupportedTypes []string `json:"supported_types,omitempty"`
	Mode           string   `json:"mode,omitempty"`
	Impact         string   `json:"impact,omitempty"`
	Error          string   `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemsCount := d.MemoryIndex.Count()
		usersCount := len(d.MemoryIndex.GetAllUsers())
		lastReload := d.MemoryIndex.GetLastReload()
		lastReloadStr := "never"
		if !lastReload.IsZero() {
			lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
		}

		types := d.Bookmarks.SupportedTypes()
		supported := make([]string, 0, len(types))
		for _, t := range types {
			supported = append(supported, t.Name)
		}

		components := map[string]componentStatus{
			"catalog": {
				OK:          itemsCount > 0,
				ItemsLoaded: &itemsCount,
				UsersLoaded: &usersCount,
				LastReload:  lastReloadStr,
			},
			"redis": checkRedis(r.Context(), d),
			"bookmarks": {
				OK:             len(supported) > 0,
				SupportedTypes: supported,
			},
		}

		respond.JSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	// Bookmark sets live in Redis: without it nothing can be toggled
	if redis, exists := components["redis"]; exists && !redis.OK {
		return "critical"
	}

	// No catalog means every bookmark is unresolvable
	if catalog, exists := components["catalog"]; exists && !catalog.OK {
		return "degraded"
	}

	return "operational"
}

func checkRedis(parent context.Context, d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     false,
			Mode:   "unavailable",
			Impact: "bookmarks-disabled",
			Error:  "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(parent, 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "unavailable",
			Impact: "bookmarks-disabled",
			Error:  "unreachable",
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "bookmarks-enabled",
	}
}
