package analytics

import (
	"context"

	"github.com/thdgm/urlshortener/internal/messaging"
	"github.com/thdgm/urlshortener/internal/shorturl"
	"go.uber.org/zap"
)

// NewClickHandler returns a handler that persists click events so the info
// endpoint can report click counts.
func NewClickHandler(clicks shorturl.ClickStore) messaging.Handler[ClickEvent] {
	return func(ctx context.Context, event *ClickEvent) error {
		return clicks.SaveClick(ctx, &shorturl.Click{
			ID:        shorturl.ID(event.ID),
			ClientIP:  event.ClientIP,
			ClickedAt: event.ClickedAt,
		})
	}
}

// NewLinkCreatedHandler returns a handler that records created links in the
// log. Creation events have no storage of their own yet.
func NewLinkCreatedHandler(logger *zap.Logger) messaging.Handler[LinkCreatedEvent] {
	return func(_ context.Context, event *LinkCreatedEvent) error {
		logger.Info("link created",
			zap.String("id", event.ID),
			zap.String("target", event.Target),
			zap.String("sponsor", event.Sponsor),
			zap.Bool("safe", event.Safe),
			zap.Time("createdAt", event.CreatedAt),
		)

		return nil
	}
}
