package scheduler

import (
	"context"

	"github.com/MrSnakeDoc/adminmarks/internal/index"
	"github.com/MrSnakeDoc/adminmarks/internal/logger"
	redisstore "github.com/MrSnakeDoc/adminmarks/internal/store/redis"
)

// RedisSyncer loads the mirrored catalog from Redis into the memory index on
// startup, so projections work before the catalog file is parsed.
type RedisSyncer struct {
	store  *redisstore.Store
	index  *index.MemoryIndex
	logger logger.Logger
}

// NewRedisSyncer creates a new Redis syncer
func NewRedisSyncer(
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
) *RedisSyncer {
	return &RedisSyncer{
		store:  store,
		index:  idx,
		logger: log,
	}
}

// Sync loads types, users and items from Redis and updates the memory index
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	rs.logger.Info("syncing catalog from redis to memory")

	types, err := rs.store.GetTypes(ctx)
	if err != nil {
		return err
	}
	users, err := rs.store.GetUsers(ctx)
	if err != nil {
		return err
	}
	items, err := rs.store.GetAllItems(ctx)
	if err != nil {
		return err
	}

	if len(types) == 0 && len(items) == 0 {
		rs.logger.Info("no catalog found in redis")
		return nil
	}

	rs.index.UpdateCatalog(types, items, users)

	rs.logger.Info("synced catalog from redis",
		logger.Int("types", len(types)),
		logger.Int("items", len(items)),
		logger.Int("users", len(users)))

	return nil
}
