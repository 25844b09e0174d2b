package converters

import (
	"strconv"

	"github.com/corray333/backend-labs/restaurant/internal/service/errs"
	"github.com/corray333/backend-labs/restaurant/internal/service/models/order"
	"github.com/corray333/backend-labs/restaurant/internal/service/services/billingsvc"
	"github.com/corray333/backend-labs/restaurant/internal/service/services/ordersvc"
	"github.com/corray333/backend-labs/restaurant/internal/transport/http/response"
	"github.com/google/uuid"
)

// ItemRequest is an order item as sent by clients.
type ItemRequest struct {
	Food     string `json:"food"`
	Quantity int    `json:"quantity"`
	Note     string `json:"note"`
}

// ItemsFromRequest converts request items to order items.
// A malformed food id fails the whole conversion.
func ItemsFromRequest(req []ItemRequest) ([]order.Item, error) {
	items := make([]order.Item, len(req))
	for i, it := range req {
		foodID, err := uuid.Parse(it.Food)
		if err != nil || foodID == uuid.Nil {
			return nil, errs.Validation(ordersvc.MsgInvalidFoodIDInItems)
		}
		items[i] = order.Item{
			FoodID:   foodID,
			Quantity: it.Quantity,
			Note:     it.Note,
		}
	}

	return items, nil
}

// ParseID parses a path id.
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.Validation(response.MsgInvalidID)
	}

	return id, nil
}

// ParseTable parses a path table number. It must be a positive integer.
func ParseTable(raw string) (int, error) {
	table, err := strconv.Atoi(raw)
	if err != nil || table <= 0 {
		return 0, errs.Validation(billingsvc.MsgInvalidTable)
	}

	return table, nil
}
