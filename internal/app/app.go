package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"github.com/samber/do/v2"
	"golang.org/x/sync/errgroup"

	"github.com/MrSnakeDoc/adminmarks/internal/config"
	"github.com/MrSnakeDoc/adminmarks/internal/httpserver"
	"github.com/MrSnakeDoc/adminmarks/internal/logger"
	"github.com/MrSnakeDoc/adminmarks/internal/scheduler"
	"github.com/MrSnakeDoc/adminmarks/internal/utils"
	"github.com/MrSnakeDoc/adminmarks/internal/version"
)

type App struct {
	injector *do.RootScope
	cfg      *config.Config
	logger   logger.Logger
	server   *httpserver.Server
	reloader *scheduler.CatalogReloader
	gc       *scheduler.GarbageCollector
}

// New wires every component. Startup failures (Redis unreachable, invalid
// configuration) are returned.
func New() (*App, error) {
	injector := newContainer()

	a := &App{injector: injector}
	var err error
	if a.cfg, err = do.Invoke[*config.Config](injector); err != nil {
		return nil, err
	}
	if a.logger, err = do.Invoke[logger.Logger](injector); err != nil {
		return nil, err
	}
	if a.reloader, err = do.Invoke[*scheduler.CatalogReloader](injector); err != nil {
		return nil, err
	}
	if a.gc, err = do.Invoke[*scheduler.GarbageCollector](injector); err != nil {
		return nil, err
	}
	if a.server, err = do.Invoke[*httpserver.Server](injector); err != nil {
		return nil, err
	}

	a.logger.Debugf("configuration: %+v", a.cfg.Redacted())
	return a, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting adminmarks v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("adminmarks %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initial catalog load; a missing file leaves the Redis mirror in place
	if err := a.reloader.Reload(ctx); err != nil {
		a.logger.Error("initial catalog load failed", logger.Error(err))
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("catalog reloader started",
			logger.Duration("interval", a.cfg.ReloadInterval))
		return a.reloader.Run(gctx)
	})

	g.Go(func() error {
		a.logger.Info("garbage collector started",
			logger.Duration("interval", a.cfg.GCInterval))
		return a.gc.Run(gctx)
	})

	g.Go(func() error {
		if err := a.server.Start(); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("⏳ Shutting down gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := a.server.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop server: %w", err)
		}
		return nil
	})

	err := g.Wait()

	a.closeRedis()
	_ = a.logger.Sync()

	if err != nil {
		return err
	}
	a.logger.Info("✅ adminmarks stopped cleanly")
	return nil
}

// closeRedis runs last, after every goroutine using the client returned.
func (a *App) closeRedis() {
	client, err := do.Invoke[*goredis.Client](a.injector)
	if err != nil {
		return
	}
	if utils.MustClose(client, "redis", a.logger) {
		a.logger.Info("✅ Redis closed cleanly")
	}
}
