package bookmarks

import (
	"context"
	"sync"

	"github.com/MrSnakeDoc/adminmarks/internal/domain"
)

type cacheKey struct{}

// RequestCache memoises computed groups for the lifetime of one request.
// It is safe for concurrent use by handlers that fan out.
type RequestCache struct {
	mu     sync.Mutex
	groups map[string]domain.Groups
}

// NewRequestCache creates an empty cache.
func NewRequestCache() *RequestCache {
	return &RequestCache{groups: make(map[string]domain.Groups)}
}

// WithCache attaches c to ctx.
func WithCache(ctx context.Context, c *RequestCache) context.Context {
	return context.WithValue(ctx, cacheKey{}, c)
}

// CacheFrom returns the cache attached to ctx, or nil.
func CacheFrom(ctx context.Context) *RequestCache {
	c, _ := ctx.Value(cacheKey{}).(*RequestCache)
	return c
}

func (c *RequestCache) get(userID string) (domain.Groups, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	g, ok := c.groups[userID]
	return g, ok
}

func (c *RequestCache) put(userID string, g domain.Groups) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.groups[userID] = g
}

// Invalidate drops the memoised groups of userID.
func (c *RequestCache) Invalidate(userID string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.groups, userID)
}
