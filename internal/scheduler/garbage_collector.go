package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/adminmarks/internal/index"
	"github.com/MrSnakeDoc/adminmarks/internal/logger"
	"github.com/MrSnakeDoc/adminmarks/internal/metrics"
	redisstore "github.com/MrSnakeDoc/adminmarks/internal/store/redis"
)

const (
	// DefaultGCThreshold is the duration after which disabled items are deleted
	DefaultGCThreshold = 7 * 24 * time.Hour // 7 days
)

// GarbageCollector handles cleanup of content items removed from the catalog
type GarbageCollector struct {
	store     *redisstore.Store
	index     *index.MemoryIndex
	metrics   metrics.Recorder
	logger    logger.Logger
	interval  time.Duration
	threshold time.Duration
	now       func() time.Time
	stopCh    chan struct{}
}

// NewGarbageCollector creates a new garbage collector. store may be nil.
func NewGarbageCollector(
	store *redisstore.Store,
	idx *index.MemoryIndex,
	rec metrics.Recorder,
	log logger.Logger,
	interval time.Duration,
	threshold time.Duration,
) *GarbageCollector {
	if threshold == 0 {
		threshold = DefaultGCThreshold
	}
	if rec == nil {
		rec = metrics.Nop{}
	}

	return &GarbageCollector{
		store:     store,
		index:     idx,
		metrics:   rec,
		logger:    log,
		interval:  interval,
		threshold: threshold,
		now:       time.Now,
		stopCh:    make(chan struct{}),
	}
}

// Run collects once, then on every tick until ctx is done or Stop is called
func (gc *GarbageCollector) Run(ctx context.Context) error {
	// Run immediately on start
	if err := gc.Collect(ctx); err != nil {
		gc.logger.Warn("initial garbage collection failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(gc.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := gc.Collect(ctx); err != nil {
				gc.logger.Error("garbage collection failed",
					logger.Error(err))
			}
		case <-gc.stopCh:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

// Stop stops the garbage collector
func (gc *GarbageCollector) Stop() {
	close(gc.stopCh)
}

// Collect removes items that have been disabled for longer than the
// threshold, together with their custom titles. Bookmark sets are left
// alone: ids that no longer resolve are skipped when grouping.
func (gc *GarbageCollector) Collect(ctx context.Context) error {
	gc.logger.Debug("running garbage collection for disabled items")

	now := gc.now()
	deleted := 0

	for _, item := range gc.index.GetAllItems() {
		// Only collect disabled items
		if !item.Disabled || item.UpdatedAt.IsZero() {
			continue
		}

		disabledFor := now.Sub(item.UpdatedAt)
		if disabledFor < gc.threshold {
			continue
		}

		// Delete from memory index
		gc.index.DeleteItem(item.ID)

		// Delete from Redis store (best effort)
		if gc.store != nil {
			if err := gc.store.DeleteItem(ctx, item.ID); err != nil {
				gc.logger.Warn("failed to delete item from redis",
					logger.Int64("item_id", item.ID),
					logger.Error(err))
			}
			if err := gc.store.DeleteTitles(ctx, item.ID); err != nil {
				gc.logger.Warn("failed to delete bookmark title from redis",
					logger.Int64("item_id", item.ID),
					logger.Error(err))
			}
		}

		gc.logger.Info("garbage collected disabled item",
			logger.Int64("item_id", item.ID),
			logger.String("type", item.Type),
			logger.Duration("disabled_for", disabledFor))

		deleted++
	}

	if deleted > 0 {
		gc.metrics.RecordItemsCollected(deleted)
		gc.metrics.SetCatalogItems(gc.activeCount())
		gc.logger.Info("garbage collection completed",
			logger.Int("items_deleted", deleted))
	} else {
		gc.logger.Debug("no items to garbage collect")
	}

	return nil
}

func (gc *GarbageCollector) activeCount() int {
	n := 0
	for _, item := range gc.index.GetAllItems() {
		if !item.Disabled {
			n++
		}
	}
	return n
}
