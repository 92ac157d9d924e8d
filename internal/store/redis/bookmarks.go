package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// addScript inserts ARGV[1] into the set at KEYS[1] unless present, scoring
// it with the next value of the counter at KEYS[2]. Returns 1 when inserted.
var addScript = redis.NewScript(`
if redis.call('ZSCORE', KEYS[1], ARGV[1]) then
	return 0
end
local seq = redis.call('INCR', KEYS[2])
redis.call('ZADD', KEYS[1], seq, ARGV[1])
return 1
`)

// toggleScript flips membership of ARGV[1] in the set at KEYS[1].
// Returns the membership after the flip (1 = bookmarked).
var toggleScript = redis.NewScript(`
if redis.call('ZSCORE', KEYS[1], ARGV[1]) then
	redis.call('ZREM', KEYS[1], ARGV[1])
	return 0
end
local seq = redis.call('INCR', KEYS[2])
redis.call('ZADD', KEYS[1], seq, ARGV[1])
return 1
`)

// IsBookmarked reports whether itemID is in the user's set.
// A missing set is treated as empty.
func (s *Store) IsBookmarked(ctx context.Context, userID string, itemID int64) (bool, error) {
	err := s.client.ZScore(ctx, BookmarksKey(userID), member(itemID)).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check bookmark: %w", err)
	}
	return true, nil
}

// AddBookmark inserts itemID into the user's set. Idempotent.
func (s *Store) AddBookmark(ctx context.Context, userID string, itemID int64) error {
	keys := []string{BookmarksKey(userID), SequenceKey(userID)}
	if err := addScript.Run(ctx, s.client, keys, member(itemID)).Err(); err != nil {
		return fmt.Errorf("failed to add bookmark: %w", err)
	}
	return nil
}

// RemoveBookmark deletes itemID from the user's set. Idempotent.
func (s *Store) RemoveBookmark(ctx context.Context, userID string, itemID int64) error {
	if err := s.client.ZRem(ctx, BookmarksKey(userID), member(itemID)).Err(); err != nil {
		return fmt.Errorf("failed to remove bookmark: %w", err)
	}
	return nil
}

// ToggleBookmark flips membership atomically and returns the new state.
func (s *Store) ToggleBookmark(ctx context.Context, userID string, itemID int64) (bool, error) {
	keys := []string{BookmarksKey(userID), SequenceKey(userID)}
	n, err := toggleScript.Run(ctx, s.client, keys, member(itemID)).Int64()
	if err != nil {
		return false, fmt.Errorf("failed to toggle bookmark: %w", err)
	}
	return n == 1, nil
}

// ListBookmarks returns the user's item IDs in insertion order.
func (s *Store) ListBookmarks(ctx context.Context, userID string) ([]int64, error) {
	members, err := s.client.ZRange(ctx, BookmarksKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			// Foreign member, not written by this store
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func member(itemID int64) string {
	return strconv.FormatInt(itemID, 10)
}
