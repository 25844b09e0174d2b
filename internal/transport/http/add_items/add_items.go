package additems

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
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

type service interface {
	AddItems(ctx context.Context, id uuid.UUID, items []order.Item) (order.Order, error)
}

type addItemsRequest struct {
	Items []converters.ItemRequest `json:"items" validate:"required,min=1"`
}

func (r *addItemsRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return errs.Validation(ordersvc.MsgItemsRequired)
	}

	return nil
}

// AddItems handles PATCH /orders/{id}/add-items.
func AddItems(w http.ResponseWriter, r *http.Request, service service) {
	id, err := converters.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)

		return
	}

	req := addItemsRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Message(w, http.StatusBadRequest, response.MsgInvalidJSON)
		slog.Error("Error decoding request body for add items", "error", err)

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

	updated, err := service.AddItems(r.Context(), id, items)
	if err != nil {
		response.Error(w, err)
		slog.ErrorContext(r.Context(), "Error adding items to order", "order_id", id, "error", err)

		return
	}

	response.JSON(w, http.StatusOK, updated)
}
