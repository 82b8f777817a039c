package inbox

import (
	"context"
	"log/slog"

	"github.com/williambechay/portfolio/internal/backend"
	"github.com/williambechay/portfolio/internal/inbox/events"
)

// Notifying publishes a ContactCreated event after every successful insert.
// Publish failures are logged and never fail the insert.
type Notifying struct {
	Store
	publisher events.Publisher
	logger    *slog.Logger
}

// WithEvents wraps store so inserts are announced through publisher.
func WithEvents(store Store, publisher events.Publisher, logger *slog.Logger) *Notifying {
	if publisher == nil {
		publisher = events.Noop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifying{Store: store, publisher: publisher, logger: logger}
}

// Insert stores msg, then publishes it.
func (n *Notifying) Insert(ctx context.Context, msg backend.NewMessage) (backend.StoredMessage, error) {
	stored, err := n.Store.Insert(ctx, msg)
	if err != nil {
		return stored, err
	}
	if perr := n.publisher.PublishCreated(ctx, stored); perr != nil {
		n.logger.WarnContext(ctx, "publish contact event failed", "id", stored.ID, "error", perr)
	}
	return stored, nil
}
