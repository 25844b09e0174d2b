package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("order not found")

// Item is a line of an order. It has no identity of its own.
type Item struct {
	FoodID   uuid.UUID `json:"food"`
	Quantity int       `json:"quantity"`
	Note     string    `json:"note"`
}

// Order is one ticket of items ordered for a table.
type Order struct {
	ID        uuid.UUID       `json:"id"`
	Table     int             `json:"table"`
	Items     []Item          `json:"items"`
	Status    Status          `json:"status"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Patch is a partial update of an Order. Nil fields are left untouched.
type Patch struct {
	Items     []Item
	Subtotal  *decimal.Decimal
	Status    *Status
	UpdatedAt time.Time
}

// Apply writes the set fields of p into o.
func (p Patch) Apply(o *Order) {
	if p.Items != nil {
		o.Items = append([]Item(nil), p.Items...)
	}
	if p.Subtotal != nil {
		o.Subtotal = *p.Subtotal
	}
	if p.Status != nil {
		o.Status = *p.Status
	}
	if !p.UpdatedAt.IsZero() {
		o.UpdatedAt = p.UpdatedAt
	}
}

// FoodIDs returns the distinct food ids referenced by items, in first-seen order.
func FoodIDs(items []Item) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.FoodID]; ok {
			continue
		}
		seen[it.FoodID] = struct{}{}
		ids = append(ids, it.FoodID)
	}

	return ids
}

// TotalSubtotal sums the subtotals of orders.
func TotalSubtotal(orders []Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Subtotal)
	}

	return total
}
