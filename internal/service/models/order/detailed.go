package order

import (
	"time"

	"github.com/corray333/backend-labs/restaurant/internal/service/models/food"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DetailedItem is an Item with its food reference resolved for display.
// Food is nil when the food no longer exists in the menu.
type DetailedItem struct {
	Food     *food.Food `json:"food"`
	Quantity int        `json:"quantity"`
	Note     string     `json:"note"`
}

// DetailedOrder is an Order whose items carry food details.
type DetailedOrder struct {
	ID        uuid.UUID       `json:"id"`
	Table     int             `json:"table"`
	Items     []DetailedItem  `json:"items"`
	Status    Status          `json:"status"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Resolve attaches food details from foods to every item of orders.
func Resolve(orders []Order, foods map[uuid.UUID]food.Food) []DetailedOrder {
	result := make([]DetailedOrder, 0, len(orders))
	for _, o := range orders {
		items := make([]DetailedItem, 0, len(o.Items))
		for _, it := range o.Items {
			item := DetailedItem{Quantity: it.Quantity, Note: it.Note}
			if f, ok := foods[it.FoodID]; ok {
				item.Food = &f
			}
			items = append(items, item)
		}
		result = append(result, DetailedOrder{
			ID:        o.ID,
			Table:     o.Table,
			Items:     items,
			Status:    o.Status,
			Subtotal:  o.Subtotal,
			CreatedAt: o.CreatedAt,
			UpdatedAt: o.UpdatedAt,
		})
	}

	return result
}

// FoodIDsOf returns the distinct food ids referenced across orders.
func FoodIDsOf(orders []Order) []uuid.UUID {
	var items []Item
	for _, o := range orders {
		items = append(items, o.Items...)
	}

	return FoodIDs(items)
}
