package scheduler

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/MrSnakeDoc/adminmarks/internal/domain"
	"github.com/MrSnakeDoc/adminmarks/internal/index"
	"github.com/MrSnakeDoc/adminmarks/internal/logger"
	"github.com/MrSnakeDoc/adminmarks/internal/metrics"
	"github.com/MrSnakeDoc/adminmarks/internal/sources/catalog"
	redisstore "github.com/MrSnakeDoc/adminmarks/internal/store/redis"
)

// CatalogReloader handles periodic reloading of the content catalog
type CatalogReloader struct {
	loader        *catalog.Loader
	mapper        *catalog.Mapper
	store         *redisstore.Store
	index         *index.MemoryIndex
	metrics       metrics.Recorder
	logger        logger.Logger
	interval      time.Duration
	now           func() time.Time
	stopCh        chan struct{}
	manualTrigger <-chan struct{}
}

// NewCatalogReloader creates a new catalog reloader. store may be nil.
func NewCatalogReloader(
	catalogFile string,
	store *redisstore.Store,
	idx *index.MemoryIndex,
	rec metrics.Recorder,
	log logger.Logger,
	interval time.Duration,
	manualTrigger <-chan struct{},
) *CatalogReloader {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &CatalogReloader{
		loader:        catalog.NewLoader(catalogFile),
		mapper:        catalog.NewMapper(),
		store:         store,
		index:         idx,
		metrics:       rec,
		logger:        log,
		interval:      interval,
		now:           time.Now,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Run reloads on every tick or manual trigger until ctx is done or Stop is
// called. It does not perform an initial reload.
func (cr *CatalogReloader) Run(ctx context.Context) error {
	ticker := time.NewTicker(cr.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := cr.Reload(ctx); err != nil {
				cr.logger.Error("failed to reload catalog",
					logger.Error(err))
			}
		case <-cr.manualTrigger:
			cr.logger.Info("manual catalog reload triggered")
			if err := cr.Reload(ctx); err != nil {
				cr.logger.Error("failed to reload catalog",
					logger.Error(err))
			}
		case <-cr.stopCh:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

// Stop stops the reloader
func (cr *CatalogReloader) Stop() {
	close(cr.stopCh)
}

// Reload loads the catalog file and updates index + store.
//
// Items that disappeared from the file are kept as disabled so bookmarks on
// them stop resolving; the garbage collector removes them later.
func (cr *CatalogReloader) Reload(ctx context.Context) error {
	cr.logger.Info("reloading catalog",
		logger.String("file", cr.loader.Path()))

	cat, err := cr.load()
	if err != nil {
		cr.metrics.RecordCatalogReload(false)
		return err
	}

	for _, msg := range cat.Skipped {
		cr.logger.Warn("skipped catalog entry",
			logger.String("reason", msg))
	}

	cr.logger.Info("loaded catalog",
		logger.Int("types", len(cat.Types)),
		logger.Int("items", len(cat.Items)),
		logger.Int("users", len(cat.Users)),
		logger.Int("skipped", len(cat.Skipped)))

	disabled := cr.disabledItems(cat.Items)
	if len(disabled) > 0 {
		cr.logger.Info("marking removed items as disabled",
			logger.Int("count", len(disabled)))
	}

	active := len(cat.Items)
	items := append(cat.Items, disabled...)

	// Update memory index
	cr.index.UpdateCatalog(cat.Types, items, cat.Users)
	cr.metrics.SetCatalogItems(active)
	cr.metrics.RecordCatalogReload(true)

	// Update Redis store (best effort)
	if cr.store != nil {
		if err := cr.mirror(ctx, cat, items); err != nil {
			cr.logger.Warn("failed to save catalog to redis",
				logger.Error(err))
			// Don't fail - memory index is the primary source
		} else {
			cr.logger.Debug("catalog saved to redis")
		}
	}

	return nil
}

func (cr *CatalogReloader) load() (*catalog.Catalog, error) {
	config, err := cr.loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	cat, err := cr.mapper.Map(config)
	if err != nil {
		return nil, fmt.Errorf("failed to map catalog: %w", err)
	}
	return cat, nil
}

// disabledItems returns copies of indexed catalog items missing from fresh,
// flagged disabled. Items already disabled keep their UpdatedAt so the GC
// threshold counts from the first disappearance.
func (cr *CatalogReloader) disabledItems(fresh []*domain.ContentItem) []*domain.ContentItem {
	present := make(map[int64]bool, len(fresh))
	for _, item := range fresh {
		present[item.ID] = true
	}

	now := cr.now()
	var out []*domain.ContentItem
	for _, existing := range cr.index.GetAllItems() {
		if present[existing.ID] || !slices.Contains(existing.Sources, catalog.SourceCatalog) {
			continue
		}
		cp := *existing
		if !cp.Disabled {
			cp.Disabled = true
			cp.UpdatedAt = now
		}
		out = append(out, &cp)
	}
	return out
}

func (cr *CatalogReloader) mirror(ctx context.Context, cat *catalog.Catalog, items []*domain.ContentItem) error {
	if err := cr.store.SaveTypes(ctx, cat.Types); err != nil {
		return err
	}
	if err := cr.store.SaveUsers(ctx, cat.Users); err != nil {
		return err
	}
	return cr.store.SaveItemsMany(ctx, items)
}
