package deps

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/adminmarks/internal/bookmarks"
	"github.com/MrSnakeDoc/adminmarks/internal/index"
	"github.com/MrSnakeDoc/adminmarks/internal/logger"
	"github.com/MrSnakeDoc/adminmarks/internal/menu"
	"github.com/MrSnakeDoc/adminmarks/internal/metrics"
	"github.com/MrSnakeDoc/adminmarks/internal/nonce"
)

type Deps struct {
	Logger          logger.Logger
	StartTime       time.Time
	Version         string
	Commit          string
	BuildDate       string
	GoVersion       string
	TimeNow         func() time.Time      // for testing, defaults to time.Now
	AllowedHosts    []string              // Host headers allowed to access the server
	AllowedCIDRS    []string              // IPs allowed to access healthz/readyz/metrics/reload
	TrustProxy      bool                  // true if running behind a trusted reverse proxy (e.g., cloudflared)
	CatalogFile     string                // Path to the catalog file
	RedisClient     redis.UniversalClient // Redis client connection (nil in tests without redis)
	MemoryIndex     *index.MemoryIndex    // In-memory content catalog
	Bookmarks       *bookmarks.Service    // Bookmark store + grouper
	Projector       *menu.Projector       // Navigation projections
	Nonces          *nonce.Issuer         // Anti-forgery tokens
	Metrics         metrics.Recorder      // Metric sink, metrics.Nop when disabled
	Gatherer        prometheus.Gatherer   // Registry scraped by /metrics (nil disables the route)
	AdminBase       string                // Mount point of the admin routes (ex: "/admin")
	UserHeader      string                // Trusted header carrying the actor id
	ToggleBurst     int                   // Per-actor toggle burst
	TogglePerMinute int                   // Per-actor sustained toggles per minute
	ReloadTrigger   chan struct{}         // Channel to trigger manual catalog reload
}
