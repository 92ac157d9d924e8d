package index

import (
	"sort"
	"sync"
	"time"

	"github.com/MrSnakeDoc/adminmarks/internal/domain"
)

// MemoryIndex holds the content catalog (types, items, users) in memory.
// It is the read path of every projection; Redis only mirrors it so a
// restart can serve before the catalog file is parsed again.
type MemoryIndex struct {
	mu         sync.RWMutex
	types      map[string]domain.ContentType // name -> type
	items      map[int64]*domain.ContentItem // ID -> item
	users      map[string]*domain.User       // ID -> user
	lastReload time.Time                     // Timestamp of last catalog reload
}

// NewMemoryIndex creates a new memory index
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		types: make(map[string]domain.ContentType),
		items: make(map[int64]*domain.ContentItem),
		users: make(map[string]*domain.User),
	}
}

// UpdateCatalog replaces types, items and users in one step
func (idx *MemoryIndex) UpdateCatalog(types []domain.ContentType, items []*domain.ContentItem, users []*domain.User) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.types = make(map[string]domain.ContentType, len(types))
	for _, t := range types {
		idx.types[t.Name] = t
	}

	idx.items = make(map[int64]*domain.ContentItem, len(items))
	for _, item := range items {
		idx.items[item.ID] = item
	}

	idx.users = make(map[string]*domain.User, len(users))
	for _, u := range users {
		idx.users[u.ID] = u
	}

	idx.lastReload = time.Now()
}

// ─────────────────────────────────────────────────────────────────
// Items
// ─────────────────────────────────────────────────────────────────

// GetItem retrieves an item by ID
func (idx *MemoryIndex) GetItem(id int64) (*domain.ContentItem, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	item, ok := idx.items[id]
	return item, ok
}

// GetAllItems returns all items, disabled ones included
func (idx *MemoryIndex) GetAllItems() []*domain.ContentItem {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	items := make([]*domain.ContentItem, 0, len(idx.items))
	for _, item := range idx.items {
		items = append(items, item)
	}
	return items
}

// ItemsOfType returns the enabled items of a content type, unordered
func (idx *MemoryIndex) ItemsOfType(contentType string) []*domain.ContentItem {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var items []*domain.ContentItem
	for _, item := range idx.items {
		if item.Type == contentType && !item.Disabled {
			items = append(items, item)
		}
	}
	return items
}

// AddItem adds or updates a single item
func (idx *MemoryIndex) AddItem(item *domain.ContentItem) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.items[item.ID] = item
}

// DeleteItem removes an item from the index
func (idx *MemoryIndex) DeleteItem(id int64) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	delete(idx.items, id)
}

// Count returns the number of items in the index
func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.items)
}

// ─────────────────────────────────────────────────────────────────
// Types & users
// ─────────────────────────────────────────────────────────────────

// GetType retrieves a registered content type
func (idx *MemoryIndex) GetType(name string) (domain.ContentType, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	t, ok := idx.types[name]
	return t, ok
}

// Types returns the registered content types sorted by name
func (idx *MemoryIndex) Types() []domain.ContentType {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	types := make([]domain.ContentType, 0, len(idx.types))
	for _, t := range idx.types {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Name < types[j].Name })
	return types
}

// GetUser retrieves a user by ID
func (idx *MemoryIndex) GetUser(id string) (*domain.User, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	u, ok := idx.users[id]
	return u, ok
}

// GetAllUsers returns all users
func (idx *MemoryIndex) GetAllUsers() []*domain.User {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	users := make([]*domain.User, 0, len(idx.users))
	for _, u := range idx.users {
		users = append(users, u)
	}
	return users
}

// GetLastReload returns the timestamp of the last catalog reload
func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
