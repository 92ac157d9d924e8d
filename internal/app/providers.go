package app

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/samber/do/v2"

	"github.com/MrSnakeDoc/adminmarks/internal/bookmarks"
	"github.com/MrSnakeDoc/adminmarks/internal/config"
	"github.com/MrSnakeDoc/adminmarks/internal/domain"
	"github.com/MrSnakeDoc/adminmarks/internal/httpserver"
	"github.com/MrSnakeDoc/adminmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/adminmarks/internal/index"
	"github.com/MrSnakeDoc/adminmarks/internal/logger"
	"github.com/MrSnakeDoc/adminmarks/internal/menu"
	"github.com/MrSnakeDoc/adminmarks/internal/metrics"
	"github.com/MrSnakeDoc/adminmarks/internal/nonce"
	"github.com/MrSnakeDoc/adminmarks/internal/redis"
	"github.com/MrSnakeDoc/adminmarks/internal/scheduler"
	redisstore "github.com/MrSnakeDoc/adminmarks/internal/store/redis"
	"github.com/MrSnakeDoc/adminmarks/internal/version"
)

// ReloadTrigger carries manual catalog reload requests from /reload to the
// catalog reloader.
type ReloadTrigger chan struct{}

// newContainer registers one provider per component.
func newContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, provideConfig)
	do.Provide(injector, provideLogger)
	do.Provide(injector, provideRegistry)
	do.Provide(injector, provideMetrics)

	// Storage layer
	do.Provide(injector, provideRedis)
	do.Provide(injector, provideStore)
	do.Provide(injector, provideIndex)

	// Business services
	do.Provide(injector, provideBookmarks)
	do.Provide(injector, provideProjector)
	do.Provide(injector, provideNonces)

	// Workers
	do.Provide(injector, provideReloadTrigger)
	do.Provide(injector, provideCatalogReloader)
	do.Provide(injector, provideGarbageCollector)

	// Server
	do.Provide(injector, provideServer)

	return injector
}

func provideConfig(i do.Injector) (*config.Config, error) {
	return config.Load(), nil
}

func provideLogger(i do.Injector) (logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return logger.New(cfg.LogLevel, cfg.PrettyLog), nil
}

func provideRegistry(i do.Injector) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg, nil
}

func provideMetrics(i do.Injector) (metrics.Recorder, error) {
	return metrics.NewCollector(do.MustInvoke[*prometheus.Registry](i)), nil
}

// provideRedis connects with retries; the service cannot run without Redis.
func provideRedis(i do.Injector) (*goredis.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[logger.Logger](i)

	log.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	client, err := redis.New(context.Background(), redis.OptionsFromConfig(cfg), log)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	log.Info("Redis initialized successfully")
	return client, nil
}

func provideStore(i do.Injector) (*redisstore.Store, error) {
	return redisstore.NewStore(do.MustInvoke[*goredis.Client](i)), nil
}

// provideIndex seeds the memory index from the Redis mirror so menus resolve
// before the catalog file is parsed.
func provideIndex(i do.Injector) (*index.MemoryIndex, error) {
	log := do.MustInvoke[logger.Logger](i)
	store := do.MustInvoke[*redisstore.Store](i)

	idx := index.NewMemoryIndex()
	if err := scheduler.NewRedisSyncer(store, idx, log).Sync(context.Background()); err != nil {
		log.Warn("failed to sync from redis on startup, will load from catalog file",
			logger.Error(err))
	}
	return idx, nil
}

func provideBookmarks(i do.Injector) (*bookmarks.Service, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return bookmarks.NewService(
		do.MustInvoke[*redisstore.Store](i),
		do.MustInvoke[*index.MemoryIndex](i),
		bookmarks.Options{
			SupportedTypes:  cfg.SupportedTypes,
			UntitledPattern: cfg.UntitledPattern,
			Routes:          domain.NewRoutes(cfg.AdminBase),
		},
		do.MustInvoke[metrics.Recorder](i),
		do.MustInvoke[logger.Logger](i),
	), nil
}

func provideProjector(i do.Injector) (*menu.Projector, error) {
	return menu.NewProjector(do.MustInvoke[*bookmarks.Service](i)), nil
}

func provideNonces(i do.Injector) (*nonce.Issuer, error) {
	cfg := do.MustInvoke[*config.Config](i)
	if cfg.NonceGenerated {
		do.MustInvoke[logger.Logger](i).Warn("ADMINMARKS_NONCE_SECRET not set, generated a random secret; tokens will not survive a restart")
	}
	return nonce.NewIssuer(cfg.NonceSecret, cfg.NonceLifetime), nil
}

func provideReloadTrigger(i do.Injector) (ReloadTrigger, error) {
	return make(ReloadTrigger, 1), nil
}

func provideCatalogReloader(i do.Injector) (*scheduler.CatalogReloader, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return scheduler.NewCatalogReloader(
		cfg.CatalogFile,
		do.MustInvoke[*redisstore.Store](i),
		do.MustInvoke[*index.MemoryIndex](i),
		do.MustInvoke[metrics.Recorder](i),
		do.MustInvoke[logger.Logger](i),
		cfg.ReloadInterval,
		do.MustInvoke[ReloadTrigger](i),
	), nil
}

func provideGarbageCollector(i do.Injector) (*scheduler.GarbageCollector, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return scheduler.NewGarbageCollector(
		do.MustInvoke[*redisstore.Store](i),
		do.MustInvoke[*index.MemoryIndex](i),
		do.MustInvoke[metrics.Recorder](i),
		do.MustInvoke[logger.Logger](i),
		cfg.GCInterval,
		cfg.GCThreshold,
	), nil
}

func provideServer(i do.Injector) (*httpserver.Server, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[logger.Logger](i)

	d := deps.Deps{
		Logger:          log,
		StartTime:       time.Now(),
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		TimeNow:         time.Now,
		AllowedHosts:    cfg.AllowedHosts,
		AllowedCIDRS:    cfg.AllowedCIDRS,
		TrustProxy:      cfg.TrustProxy,
		CatalogFile:     cfg.CatalogFile,
		RedisClient:     do.MustInvoke[*goredis.Client](i),
		MemoryIndex:     do.MustInvoke[*index.MemoryIndex](i),
		Bookmarks:       do.MustInvoke[*bookmarks.Service](i),
		Projector:       do.MustInvoke[*menu.Projector](i),
		Nonces:          do.MustInvoke[*nonce.Issuer](i),
		Metrics:         do.MustInvoke[metrics.Recorder](i),
		Gatherer:        do.MustInvoke[*prometheus.Registry](i),
		AdminBase:       domain.NewRoutes(cfg.AdminBase).Base,
		UserHeader:      cfg.UserHeader,
		ToggleBurst:     cfg.ToggleBurst,
		TogglePerMinute: cfg.TogglePerMinute,
		ReloadTrigger:   do.MustInvoke[ReloadTrigger](i),
	}

	return httpserver.New(cfg, log, d), nil
}
