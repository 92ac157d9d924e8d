package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request timeout (ex: 10s)

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	CatalogFile    string        // path to the catalog.yaml exported by the host platform
	ReloadInterval time.Duration // interval to reload the catalog (default: 1h)
	GCInterval     time.Duration // interval to run garbage collection (default: 24h)
	GCThreshold    time.Duration // disabled items older than this are collected (default: 7d)

	// Bookmarks
	SupportedTypes  []string      // allow-list of content types (empty = every registered type)
	AdminBase       string        // mount point of the admin routes (ex: "/admin")
	UserHeader      string        // trusted header carrying the authenticated user id
	UntitledPattern string        // label of untitled items, %s is replaced by the id
	NonceSecret     string        // HMAC key of anti-forgery tokens
	NonceGenerated  bool          // true when NonceSecret was generated at startup
	NonceLifetime   time.Duration // token lifetime (default: 24h)
	ToggleBurst     int           // per-user toggle burst
	TogglePerMinute int           // per-user sustained toggles per minute
	CORSOrigins     []string      // allowed origins for browser clients (empty = CORS disabled)

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to specific IP (e.g. "1.2.3.4, 5.6.7.8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("ADMINMARKS_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("ADMINMARKS_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("ADMINMARKS_REQUEST_TIMEOUT", 10*time.Second),

		// Logging
		LogLevel:  getenv("ADMINMARKS_LOG_LEVEL", "info"),
		PrettyLog: mustBool("ADMINMARKS_PRETTY_LOG", true),

		// Catalog
		CatalogFile:    getenv("ADMINMARKS_CATALOG_FILE", "/app/catalog.yaml"),
		ReloadInterval: mustDuration("ADMINMARKS_RELOAD_INTERVAL", time.Hour),
		GCInterval:     mustDuration("ADMINMARKS_GC_INTERVAL", 24*time.Hour),
		GCThreshold:    mustDuration("ADMINMARKS_GC_THRESHOLD", 7*24*time.Hour),

		// Bookmarks
		SupportedTypes:  splitAndTrim(getenv("ADMINMARKS_SUPPORTED_TYPES", "")),
		AdminBase:       getenv("ADMINMARKS_ADMIN_BASE", "/admin"),
		UserHeader:      getenv("ADMINMARKS_USER_HEADER", "X-Remote-User"),
		UntitledPattern: getenv("ADMINMARKS_UNTITLED_PATTERN", "ID: %s"),
		NonceSecret:     getenv("ADMINMARKS_NONCE_SECRET", ""),
		NonceLifetime:   mustDuration("ADMINMARKS_NONCE_LIFETIME", 24*time.Hour),
		ToggleBurst:     getenvInt("ADMINMARKS_TOGGLE_BURST", 10),
		TogglePerMinute: getenvInt("ADMINMARKS_TOGGLE_PER_MINUTE", 60),
		CORSOrigins:     splitAndTrim(getenv("ADMINMARKS_CORS_ORIGINS", "")),

		// Redis settings
		RedisAddr:             requireEnv("ADMINMARKS_REDIS_ADDR"),
		RedisUser:             getenv("ADMINMARKS_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("ADMINMARKS_REDIS_PASSWORD_REQUIRED", true),
		RedisPassword:         getenv("ADMINMARKS_REDIS_PASSWORD", ""),
		RedisDB:               requireEnvInt("ADMINMARKS_REDIS_DB"),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: requireEnvSlice("ADMINMARKS_ALLOWED_HOSTS"),
		AllowedCIDRS: parseAllowedIPs(getenv("ADMINMARKS_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("ADMINMARKS_TRUST_PROXY", true),
	}

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: ADMINMARKS_REDIS_PASSWORD is required when ADMINMARKS_REDIS_PASSWORD_REQUIRED=true")
	}

	if strings.TrimSpace(cfg.UserHeader) == "" {
		panic("❌ FATAL: ADMINMARKS_USER_HEADER must not be empty")
	}

	// Tokens issued with a generated secret do not survive a restart
	if cfg.NonceSecret == "" {
		cfg.NonceSecret = uuid.NewString()
		cfg.NonceGenerated = true
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	cfgCopy := *c
	cfgCopy.RedisPassword = "***REDACTED***"
	cfgCopy.NonceSecret = "***REDACTED***"
	if c.RedisUser != "" {
		cfgCopy.RedisUser = "***REDACTED***"
	}
	return cfgCopy
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func requireEnvInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
}

func requireEnvSlice(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return splitAndTrim(v)
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
