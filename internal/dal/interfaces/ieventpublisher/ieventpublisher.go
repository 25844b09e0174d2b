package ieventpublisher

import (
	"context"

	"github.com/corray333/backend-labs/restaurant/internal/service/models/event"
)

// IEventPublisher delivers order events to subscribers.
type IEventPublisher interface {
	Publish(ctx context.Context, events ...event.Event) error
}
