// Package bookmarks owns the per-user bookmark sets and everything derived
// from them: groups, custom titles and filtered listings.
package bookmarks

import (
	"context"
	"fmt"
	"slices"

	"github.com/microcosm-cc/bluemonday"

	"github.com/MrSnakeDoc/adminmarks/internal/domain"
	"github.com/MrSnakeDoc/adminmarks/internal/logger"
	"github.com/MrSnakeDoc/adminmarks/internal/metrics"
)

// Store is the persistence the service needs. Implemented by the Redis store.
type Store interface {
	IsBookmarked(ctx context.Context, userID string, itemID int64) (bool, error)
	AddBookmark(ctx context.Context, userID string, itemID int64) error
	RemoveBookmark(ctx context.Context, userID string, itemID int64) error
	ToggleBookmark(ctx context.Context, userID string, itemID int64) (bool, error)
	ListBookmarks(ctx context.Context, userID string) ([]int64, error)

	GetTitle(ctx context.Context, itemID int64) (string, error)
	GetTitles(ctx context.Context, ids []int64) (map[int64]string, error)
	SetTitle(ctx context.Context, itemID int64, title string) error
}

// Directory resolves users, content items and content types. Implemented by
// the memory index.
type Directory interface {
	GetUser(id string) (*domain.User, bool)
	GetItem(id int64) (*domain.ContentItem, bool)
	GetType(name string) (domain.ContentType, bool)
	Types() []domain.ContentType
	ItemsOfType(contentType string) []*domain.ContentItem
}

// Options configures a Service.
type Options struct {
	// SupportedTypes is the allow-list of content types. Empty means every
	// registered type.
	SupportedTypes []string

	// UntitledPattern labels items without a title. Defaults to "ID: %s".
	UntitledPattern string

	Routes domain.Routes
}

// Service implements the bookmark store operations and the grouper.
type Service struct {
	store     Store
	dir       Directory
	opts      Options
	metrics   metrics.Recorder
	logger    logger.Logger
	sanitizer *bluemonday.Policy
}

// NewService creates a bookmark service
func NewService(store Store, dir Directory, opts Options, rec metrics.Recorder, log logger.Logger) *Service {
	if opts.UntitledPattern == "" {
		opts.UntitledPattern = domain.DefaultUntitledPattern
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Service{
		store:     store,
		dir:       dir,
		opts:      opts,
		metrics:   rec,
		logger:    log,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Routes returns the URL builder shared with projections.
func (s *Service) Routes() domain.Routes { return s.opts.Routes }

// UntitledPattern returns the label pattern for untitled items.
func (s *Service) UntitledPattern() string { return s.opts.UntitledPattern }

// ResolveUser returns the actor for id or ErrUserNotFound.
func (s *Service) ResolveUser(id string) (*domain.User, error) {
	if id == "" {
		return nil, domain.ErrUserNotFound
	}
	u, ok := s.dir.GetUser(id)
	if !ok {
		return nil, fmt.Errorf("user %q: %w", id, domain.ErrUserNotFound)
	}
	return u, nil
}

// ─────────────────────────────────────────────────────────────────
// Store operations
// ─────────────────────────────────────────────────────────────────

// IsBookmarked reports whether userID bookmarked itemID.
func (s *Service) IsBookmarked(ctx context.Context, userID string, itemID int64) (bool, error) {
	if _, err := s.ResolveUser(userID); err != nil {
		return false, err
	}
	return s.store.IsBookmarked(ctx, userID, itemID)
}

// Add bookmarks itemID for userID. No-op when already present.
func (s *Service) Add(ctx context.Context, userID string, itemID int64) error {
	if _, err := s.ResolveUser(userID); err != nil {
		return err
	}
	return s.store.AddBookmark(ctx, userID, itemID)
}

// Remove drops itemID from userID's bookmarks. No-op when absent.
func (s *Service) Remove(ctx context.Context, userID string, itemID int64) error {
	if _, err := s.ResolveUser(userID); err != nil {
		return err
	}
	return s.store.RemoveBookmark(ctx, userID, itemID)
}

// Toggle flips itemID's membership and returns the new state. The id is used
// literally, unknown ids included.
func (s *Service) Toggle(ctx context.Context, userID string, itemID int64) (bool, error) {
	if _, err := s.ResolveUser(userID); err != nil {
		return false, err
	}
	on, err := s.store.ToggleBookmark(ctx, userID, itemID)
	if err != nil {
		return false, err
	}
	s.metrics.RecordToggle(on)
	s.logger.Debug("bookmark toggled",
		logger.String("user", userID),
		logger.Int64("item", itemID),
		logger.Bool("bookmarked", on))
	return on, nil
}

// List returns userID's bookmarked ids in insertion order.
func (s *Service) List(ctx context.Context, userID string) ([]int64, error) {
	if _, err := s.ResolveUser(userID); err != nil {
		return nil, err
	}
	return s.store.ListBookmarks(ctx, userID)
}

// ─────────────────────────────────────────────────────────────────
// Content types
// ─────────────────────────────────────────────────────────────────

// SupportedTypes returns the content types bookmarks apply to, sorted.
func (s *Service) SupportedTypes() []domain.ContentType {
	registered := s.dir.Types()
	if len(s.opts.SupportedTypes) == 0 {
		return registered
	}
	out := make([]domain.ContentType, 0, len(registered))
	for _, t := range registered {
		if slices.Contains(s.opts.SupportedTypes, t.Name) {
			out = append(out, t)
		}
	}
	return out
}

// IsSupported reports whether contentType is registered and allow-listed.
func (s *Service) IsSupported(contentType string) bool {
	if _, ok := s.dir.GetType(contentType); !ok {
		return false
	}
	return len(s.opts.SupportedTypes) == 0 || slices.Contains(s.opts.SupportedTypes, contentType)
}

// TypeLabel returns the display label of contentType.
func (s *Service) TypeLabel(contentType string) string {
	if t, ok := s.dir.GetType(contentType); ok {
		return t.DisplayLabel()
	}
	return domain.HumanizeTypeName(contentType)
}

// Item resolves an enabled content item.
func (s *Service) Item(id int64) (*domain.ContentItem, bool) {
	item, ok := s.dir.GetItem(id)
	if !ok || item.Disabled {
		return nil, false
	}
	return item, true
}
