package billing

import (
	"time"

	"github.com/corray333/backend-labs/restaurant/internal/service/models/currency"
	"github.com/corray333/backend-labs/restaurant/internal/service/models/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MessageNothingToPay = "No unpaid orders for this table"
	MessagePaid         = "All unpaid orders are now paid"
)

// Bill aggregates the unpaid orders of a table at LastUpdated.
type Bill struct {
	Table            int                   `json:"table"`
	UnpaidOrderCount int                   `json:"unpaidOrderCount"`
	Currency         currency.Currency     `json:"currency"`
	Total            decimal.Decimal       `json:"total"`
	Orders           []order.DetailedOrder `json:"orders"`
	LastUpdated      time.Time             `json:"lastUpdated"`
}

// Payment is the result of settling a table's bill.
// PaidAt is nil when there was nothing to pay.
type Payment struct {
	Table     int               `json:"table"`
	PaidCount int               `json:"paidCount"`
	Currency  currency.Currency `json:"currency"`
	Total     decimal.Decimal   `json:"total"`
	OrderIDs  []uuid.UUID       `json:"orderIds"`
	Message   string            `json:"message"`
	PaidAt    *time.Time        `json:"paidAt,omitempty"`
}
