package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type is both the event name and its routing key.
type Type string

const (
	TypeOrderCreated       Type = "order.created"
	TypeOrderItemsAdded    Type = "order.items_added"
	TypeOrderStatusChanged Type = "order.status_changed"
	TypeBillPaid           Type = "bill.paid"
)

func (t Type) String() string {
	return string(t)
}

// Event describes a committed change to a table's orders.
type Event struct {
	ID         uuid.UUID       `json:"id"`
	Type       Type            `json:"type"`
	Table      int             `json:"table"`
	OrderIDs   []uuid.UUID     `json:"orderIds"`
	Status     string          `json:"status,omitempty"`
	Total      decimal.Decimal `json:"total"`
	OccurredAt time.Time       `json:"occurredAt"`
}

// New creates an event stamped with a fresh id and the current time.
func New(t Type, table int, orderIDs []uuid.UUID, status string, total decimal.Decimal) Event {
	return Event{
		ID:         uuid.New(),
		Type:       t,
		Table:      table,
		OrderIDs:   orderIDs,
		Status:     status,
		Total:      total,
		OccurredAt: time.Now().UTC(),
	}
}
