package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// GetTitle returns the custom bookmark title of an item, "" when unset.
func (s *Store) GetTitle(ctx context.Context, itemID int64) (string, error) {
	title, err := s.client.HGet(ctx, KeyTitles, member(itemID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get title: %w", err)
	}
	return title, nil
}

// GetTitles returns the custom titles of ids. Items without one are absent
// from the map.
func (s *Store) GetTitles(ctx context.Context, ids []int64) (map[int64]string, error) {
	titles := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return titles, nil
	}

	fields := make([]string, len(ids))
	for i, id := range ids {
		fields[i] = member(id)
	}

	values, err := s.client.HMGet(ctx, KeyTitles, fields...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get titles: %w", err)
	}

	for i, v := range values {
		if str, ok := v.(string); ok && str != "" {
			titles[ids[i]] = str
		}
	}
	return titles, nil
}

// SetTitle stores the custom title of an item. An empty title deletes it.
func (s *Store) SetTitle(ctx context.Context, itemID int64, title string) error {
	if title == "" {
		return s.DeleteTitles(ctx, itemID)
	}
	if err := s.client.HSet(ctx, KeyTitles, member(itemID), title).Err(); err != nil {
		return fmt.Errorf("failed to set title: %w", err)
	}
	return nil
}

// DeleteTitles removes the custom titles of the given items.
func (s *Store) DeleteTitles(ctx context.Context, itemIDs ...int64) error {
	if len(itemIDs) == 0 {
		return nil
	}
	fields := make([]string, len(itemIDs))
	for i, id := range itemIDs {
		fields[i] = strconv.FormatInt(id, 10)
	}
	if err := s.client.HDel(ctx, KeyTitles, fields...).Err(); err != nil {
		return fmt.Errorf("failed to delete titles: %w", err)
	}
	return nil
}
