package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/MrSnakeDoc/adminmarks/internal/domain"
	"github.com/redis/go-redis/v9"
)

// SaveItem stores a content item in Redis
func (s *Store) SaveItem(ctx context.Context, item *domain.ContentItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, ItemKey(item.ID), data, 0)
	pipe.SAdd(ctx, KeyAllItems, item.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save item: %w", err)
	}

	return nil
}

// GetItem retrieves a content item from Redis by ID
func (s *Store) GetItem(ctx context.Context, id int64) (*domain.ContentItem, error) {
	data, err := s.client.Get(ctx, ItemKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("item %d: %w", id, domain.ErrItemNotFound)
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	var item domain.ContentItem
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}

	return &item, nil
}

// GetAllItems retrieves every mirrored content item
func (s *Store) GetAllItems(ctx context.Context) ([]*domain.ContentItem, error) {
	ids, err := s.client.SMembers(ctx, KeyAllItems).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get item IDs: %w", err)
	}

	if len(ids) == 0 {
		return []*domain.ContentItem{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		keys = append(keys, ItemKey(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}

	items := make([]*domain.ContentItem, 0, len(values))
	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			// Expired or deleted between SMEMBERS and MGET
			continue
		}
		var item domain.ContentItem
		if err := json.Unmarshal([]byte(str), &item); err != nil {
			continue
		}
		items = append(items, &item)
	}

	return items, nil
}

// DeleteItem removes a content item from Redis
func (s *Store) DeleteItem(ctx context.Context, id int64) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, ItemKey(id))
	pipe.SRem(ctx, KeyAllItems, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

// SaveItemsMany stores multiple content items in Redis (bulk operation)
func (s *Store) SaveItemsMany(ctx context.Context, items []*domain.ContentItem) error {
	if len(items) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()

	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to marshal item %d: %w", item.ID, err)
		}

		pipe.Set(ctx, ItemKey(item.ID), data, 0)
		pipe.SAdd(ctx, KeyAllItems, item.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save items: %w", err)
	}

	return nil
}

// SaveTypes replaces the mirrored content types
func (s *Store) SaveTypes(ctx context.Context, types []domain.ContentType) error {
	fields := make(map[string]any, len(types))
	for _, t := range types {
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("failed to marshal type %s: %w", t.Name, err)
		}
		fields[t.Name] = data
	}
	return s.replaceHash(ctx, KeyTypes, fields)
}

// GetTypes returns the mirrored content types
func (s *Store) GetTypes(ctx context.Context) ([]domain.ContentType, error) {
	raw, err := s.client.HGetAll(ctx, KeyTypes).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get types: %w", err)
	}

	types := make([]domain.ContentType, 0, len(raw))
	for _, v := range raw {
		var t domain.ContentType
		if err := json.Unmarshal([]byte(v), &t); err != nil {
			continue
		}
		types = append(types, t)
	}
	return types, nil
}

// SaveUsers replaces the mirrored users
func (s *Store) SaveUsers(ctx context.Context, users []*domain.User) error {
	fields := make(map[string]any, len(users))
	for _, u := range users {
		data, err := json.Marshal(u)
		if err != nil {
			return fmt.Errorf("failed to marshal user %s: %w", u.ID, err)
		}
		fields[u.ID] = data
	}
	return s.replaceHash(ctx, KeyUsers, fields)
}

// GetUsers returns the mirrored users
func (s *Store) GetUsers(ctx context.Context) ([]*domain.User, error) {
	raw, err := s.client.HGetAll(ctx, KeyUsers).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	users := make([]*domain.User, 0, len(raw))
	for _, v := range raw {
		var u domain.User
		if err := json.Unmarshal([]byte(v), &u); err != nil {
			continue
		}
		users = append(users, &u)
	}
	return users, nil
}

func (s *Store) replaceHash(ctx context.Context, key string, fields map[string]any) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(fields) > 0 {
		pipe.HSet(ctx, key, fields)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}
