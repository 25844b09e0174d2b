package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/corray333/backend-labs/restaurant/internal/service/models/event"
	"github.com/corray333/backend-labs/restaurant/internal/service/models/outbox"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type published struct {
	exchange   string
	routingKey string
	body       []byte
}

type fakeClient struct {
	mu       sync.Mutex
	messages []published
	err      error
}

func (c *fakeClient) Publish(exchange, routingKey, _ string, body []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.err != nil {
		return c.err
	}
	c.messages = append(c.messages, published{exchange: exchange, routingKey: routingKey, body: body})

	return nil
}

type fakeOutbox struct {
	mu       sync.Mutex
	messages []outbox.OutboxMessage
	err      error
}

func (o *fakeOutbox) Insert(_ context.Context, msg outbox.OutboxMessage) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.err != nil {
		return o.err
	}
	o.messages = append(o.messages, msg)

	return nil
}

func (o *fakeOutbox) GetPendingMessages(context.Context, int) ([]outbox.OutboxMessage, error) {
	return nil, nil
}

func (o *fakeOutbox) Delete(context.Context, int64) error {
	return nil
}

func (o *fakeOutbox) UpdateRetry(context.Context, int64, int, string, time.Time) error {
	return nil
}

func newEvent(t event.Type) event.Event {
	return event.New(t, 4, []uuid.UUID{uuid.New()}, "open", decimal.NewFromInt(12000))
}

func TestPublish_RoutesByEventType(t *testing.T) {
	client := &fakeClient{}
	repo := NewEventRepository(client, &fakeOutbox{}, "restaurant.events", 5)

	err := repo.Publish(context.Background(), newEvent(event.TypeOrderCreated), newEvent(event.TypeBillPaid))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(client.messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(client.messages))
	}

	keys := map[string]bool{}
	for _, msg := range client.messages {
		if msg.exchange != "restaurant.events" {
			t.Errorf("unexpected exchange %q", msg.exchange)
		}
		keys[msg.routingKey] = true

		var decoded event.Event
		if err := json.Unmarshal(msg.body, &decoded); err != nil {
			t.Fatalf("body is not an event: %v", err)
		}
		if !decoded.Total.Equal(decimal.NewFromInt(12000)) || decoded.Table != 4 {
			t.Errorf("unexpected event body: %s", msg.body)
		}
	}
	if !keys["order.created"] || !keys["bill.paid"] {
		t.Errorf("unexpected routing keys: %v", keys)
	}
}

func TestPublish_ParksFailedEventsInOutbox(t *testing.T) {
	client := &fakeClient{err: errors.New("channel closed")}
	box := &fakeOutbox{}
	repo := NewEventRepository(client, box, "restaurant.events", 3)

	if err := repo.Publish(context.Background(), newEvent(event.TypeOrderStatusChanged)); err != nil {
		t.Fatalf("expected failure to be absorbed by the outbox, got: %v", err)
	}

	if len(box.messages) != 1 {
		t.Fatalf("expected 1 outbox message, got %d", len(box.messages))
	}
	msg := box.messages[0]
	if msg.RoutingKey != "order.status_changed" || msg.MaxRetries != 3 || msg.LastError != "channel closed" {
		t.Errorf("unexpected outbox message: %+v", msg)
	}
}

func TestPublish_ReturnsErrorWhenOutboxFails(t *testing.T) {
	client := &fakeClient{err: errors.New("channel closed")}
	box := &fakeOutbox{err: errors.New("db down")}
	repo := NewEventRepository(client, box, "restaurant.events", 3)

	if err := repo.Publish(context.Background(), newEvent(event.TypeOrderCreated)); err == nil {
		t.Fatal("expected error")
	}
}

func TestPublish_WithoutOutbox(t *testing.T) {
	client := &fakeClient{err: errors.New("channel closed")}
	repo := NewEventRepository(client, nil, "restaurant.events", 3)

	if err := repo.Publish(context.Background(), newEvent(event.TypeOrderCreated)); err == nil {
		t.Fatal("expected error")
	}
}

func TestPublish_IgnoresCallerCancellation(t *testing.T) {
	client := &fakeClient{}
	repo := NewEventRepository(client, nil, "restaurant.events", 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := repo.Publish(ctx, newEvent(event.TypeOrderCreated)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(client.messages) != 1 {
		t.Errorf("expected the event to be published, got %d messages", len(client.messages))
	}
}
