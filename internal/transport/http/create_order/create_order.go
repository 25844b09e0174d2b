package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/restaurant/internal/service/errs"
	"github.com/corray333/backend-labs/restaurant/internal/service/models/order"
	"github.com/corray333/backend-labs/restaurant/internal/service/services/ordersvc"
	"github.com/corray333/backend-labs/restaurant/internal/transport/http/converters"
	"github.com/corray333/backend-labs/restaurant/internal/transport/http/response"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// service is an interface for the service layer.
type service interface {
	Create(ctx context.Context, table int, items []order.Item) (order.Order, error)
}

// createOrderRequest represents a create order request.
type createOrderRequest struct {
	Table int                      `json:"table" validate:"gt=0"`
	Items []converters.ItemRequest `json:"items" validate:"required,min=1"`
}

// Validate validates the create order request.
func (r *createOrderRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return errs.Validation(ordersvc.MsgTableAndItemsRequired)
	}

	return nil
}

// CreateOrder handles the create order request.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	req := createOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Message(w, http.StatusBadRequest, response.MsgInvalidJSON)
		slog.Error("Error decoding request body for create order", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		response.Error(w, err)

		return
	}

	items, err := converters.ItemsFromRequest(req.Items)
	if err != nil {
		response.Error(w, err)

		return
	}

	created, err := service.Create(r.Context(), req.Table, items)
	if err != nil {
		response.Error(w, err)
		slog.ErrorContext(r.Context(), "Error creating order", "error", err)

		return
	}

	response.JSON(w, http.StatusCreated, created)
}
