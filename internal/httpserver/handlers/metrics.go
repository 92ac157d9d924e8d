package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/adminmarks/internal/metrics"
)

// Metrics exposes the Prometheus registry.
func Metrics(d deps.Deps) http.Handler {
	return metrics.Handler(d.Gatherer)
}
