package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/corray333/backend-labs/restaurant/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/backend-labs/restaurant/internal/dal/rabbitmq"
	"github.com/corray333/backend-labs/restaurant/internal/service/models/event"
	"github.com/corray333/backend-labs/restaurant/internal/service/models/outbox"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

const (
	contentType    = "application/json"
	publishTimeout = 30 * time.Second
)

// publisher is the part of the RabbitMQ client the repository needs.
type publisher interface {
	Publish(exchange, routingKey, contentType string, body []byte) error
}

// EventRabbitMQRepository publishes order events to a topic exchange and
// parks the ones that fail in the outbox.
type EventRabbitMQRepository struct {
	client     publisher
	outboxRepo ioutboxrepo.IOutboxRepository
	exchange   string
	maxRetries int
}

// MustNewEventRabbitMQRepository declares the events exchange and creates the repository.
// outboxRepo may be nil, in which case failed events are returned as errors only.
func MustNewEventRabbitMQRepository(
	client *rabbitmq.Client,
	outboxRepo ioutboxrepo.IOutboxRepository,
) *EventRabbitMQRepository {
	exchange := viper.GetString("rabbitmq.exchange")
	if err := client.DeclareTopicExchange(exchange); err != nil {
		panic(err)
	}

	return NewEventRepository(client, outboxRepo, exchange, viper.GetInt("rabbitmq.outbox.max_retries"))
}

// NewEventRepository creates the repository over any publisher.
func NewEventRepository(
	client publisher,
	outboxRepo ioutboxrepo.IOutboxRepository,
	exchange string,
	maxRetries int,
) *EventRabbitMQRepository {
	return &EventRabbitMQRepository{
		client:     client,
		outboxRepo: outboxRepo,
		exchange:   exchange,
		maxRetries: maxRetries,
	}
}

// Publish sends events with the event type as routing key.
// It ignores cancellation of ctx and is bounded by publishTimeout instead.
func (r *EventRabbitMQRepository) Publish(ctx context.Context, events ...event.Event) error {
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	g, gctx := errgroup.WithContext(publishCtx)
	g.SetLimit(3)

	for _, evt := range events {
		g.Go(func() error {
			body, err := json.Marshal(evt)
			if err != nil {
				return fmt.Errorf("failed to encode event %s: %w", evt.ID, err)
			}

			pubErr := r.client.Publish(r.exchange, evt.Type.String(), contentType, body)
			if pubErr == nil {
				return nil
			}

			slog.WarnContext(gctx, "Failed to publish event, parking it in outbox",
				"event_id", evt.ID,
				"event_type", evt.Type,
				"error", pubErr,
			)

			return r.park(gctx, evt, body, pubErr)
		})
	}

	return g.Wait()
}

func (r *EventRabbitMQRepository) park(ctx context.Context, evt event.Event, body []byte, pubErr error) error {
	if r.outboxRepo == nil {
		return fmt.Errorf("failed to publish event %s: %w", evt.ID, pubErr)
	}

	msg := outbox.NewMessage(r.exchange, evt.Type.String(), body, r.maxRetries, pubErr)
	if err := r.outboxRepo.Insert(ctx, msg); err != nil {
		return errors.Join(
			fmt.Errorf("failed to publish event %s: %w", evt.ID, pubErr),
			err,
		)
	}

	return nil
}
