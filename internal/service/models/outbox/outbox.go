package outbox

import (
	"time"
)

// OutboxMessage is an event that could not be published to RabbitMQ
// and waits for the outbox worker.
type OutboxMessage struct {
	ID           int64
	ExchangeName string
	RoutingKey   string
	Payload      []byte
	ContentType  string
	RetryCount   int
	MaxRetries   int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	NextRetryAt  time.Time
}

// NewMessage creates a message due for its first retry right away.
func NewMessage(exchange, routingKey string, payload []byte, maxRetries int, lastErr error) OutboxMessage {
	now := time.Now()
	msg := OutboxMessage{
		ExchangeName: exchange,
		RoutingKey:   routingKey,
		Payload:      payload,
		ContentType:  "application/json",
		MaxRetries:   maxRetries,
		CreatedAt:    now,
		UpdatedAt:    now,
		NextRetryAt:  now,
	}
	if lastErr != nil {
		msg.LastError = lastErr.Error()
	}

	return msg
}

// NextRetry returns when a message that failed retryCount times is due again.
// The delay is 2^retryCount * 30s.
func NextRetry(from time.Time, retryCount int) time.Time {
	return from.Add(time.Duration(1<<retryCount) * 30 * time.Second)
}
