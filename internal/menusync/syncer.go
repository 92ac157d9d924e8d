package menusync

import (
	"context"

	"github.com/MrSnakeDoc/adminmarks/internal/domain"
	"github.com/MrSnakeDoc/adminmarks/internal/logger"
)

// Toggler sends toggle requests. Implemented by client.Client.
type Toggler interface {
	Toggle(ctx context.Context, nonce string, itemID int64) (domain.ToggleResult, error)
}

// Syncer toggles bookmarks and applies the results to a Mirror.
type Syncer struct {
	api    Toggler
	nonce  string
	mirror *Mirror
	logger logger.Logger
}

// NewSyncer creates a syncer for the session described by cfg.
func NewSyncer(api Toggler, cfg *domain.ClientConfig, mirror *Mirror, log logger.Logger) *Syncer {
	return &Syncer{
		api:    api,
		nonce:  cfg.Nonce,
		mirror: mirror,
		logger: log,
	}
}

// Toggle flips itemID. On failure the error is logged and returned, the
// mirror is left untouched and nothing is retried.
func (s *Syncer) Toggle(ctx context.Context, itemID int64) (domain.ToggleResult, error) {
	res, err := s.api.Toggle(ctx, s.nonce, itemID)
	if err != nil {
		s.logger.Warn("toggle request failed",
			logger.Int64("item_id", itemID),
			logger.Error(err))
		return domain.ToggleResult{}, err
	}

	if err := s.mirror.Apply(ctx, res); err != nil {
		return res, err
	}
	return res, nil
}
