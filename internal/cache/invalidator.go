package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"stockledger/internal/domain"
	"stockledger/internal/infrastructure/events"
)

// Invalidator discards local views after a write and tells other sessions of
// the same owner to do the same.
type Invalidator struct {
	views     *Views
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewInvalidator(views *Views, publisher events.Publisher, logger *zap.Logger) *Invalidator {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Invalidator{
		views:     views,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Invalidate never fails: the write it follows has already succeeded, so a
// broker error is only logged.
func (i *Invalidator) Invalidate(ctx context.Context, owner domain.Owner, views ...View) {
	i.views.Invalidate(owner.UserID, views...)

	names := make([]string, len(views))
	for idx, v := range views {
		names[idx] = string(v)
	}

	change := events.ViewChange{OwnerID: owner.UserID, Views: names, At: i.now().UTC()}
	if err := i.publisher.Publish(ctx, change); err != nil {
		i.logger.Warn("failed to publish view invalidation", zap.String("ownerId", owner.UserID), zap.Strings("views", names), zap.Error(err))
		return
	}

	i.logger.Debug("views invalidated", zap.String("ownerId", owner.UserID), zap.Strings("views", names))
}
