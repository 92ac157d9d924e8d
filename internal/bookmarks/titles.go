package bookmarks

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/MrSnakeDoc/adminmarks/internal/domain"
	"github.com/MrSnakeDoc/adminmarks/internal/logger"
)

// Title returns the custom bookmark title of itemID, "" when unset.
func (s *Service) Title(ctx context.Context, itemID int64) (string, error) {
	return s.store.GetTitle(ctx, itemID)
}

// SetTitle stores the custom bookmark title of itemID on behalf of user.
// Markup is stripped and whitespace trimmed; an empty result deletes the
// title. Returns the stored value.
func (s *Service) SetTitle(ctx context.Context, user *domain.User, itemID int64, raw string) (string, error) {
	item, ok := s.Item(itemID)
	if !ok {
		return "", fmt.Errorf("item %d: %w", itemID, domain.ErrItemNotFound)
	}
	if !s.IsSupported(item.Type) {
		return "", fmt.Errorf("type %q: %w", item.Type, domain.ErrUnsupportedType)
	}
	if !domain.CanEdit(user, item) {
		return "", fmt.Errorf("item %d: %w", itemID, domain.ErrForbidden)
	}

	title := s.sanitizeTitle(raw)
	if err := s.store.SetTitle(ctx, itemID, title); err != nil {
		return "", err
	}

	s.metrics.RecordTitleUpdate(title == "")
	s.logger.Debug("bookmark title updated",
		logger.String("user", user.ID),
		logger.Int64("item", itemID),
		logger.Bool("deleted", title == ""))

	return title, nil
}

// sanitizeTitle keeps plain text only. The strict policy escapes entities,
// the stored value is unescaped text.
func (s *Service) sanitizeTitle(raw string) string {
	clean := s.sanitizer.Sanitize(raw)
	clean = html.UnescapeString(clean)
	return strings.Join(strings.Fields(clean), " ")
}
