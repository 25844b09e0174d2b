package setstatus

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/restaurant/internal/service/models/order"
	"github.com/corray333/backend-labs/restaurant/internal/transport/http/converters"
	"github.com/corray333/backend-labs/restaurant/internal/transport/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type service interface {
	SetStatus(ctx context.Context, id uuid.UUID, status string) (order.Order, error)
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// SetStatus handles PATCH /orders/{id}/status.
func SetStatus(w http.ResponseWriter, r *http.Request, service service) {
	id, err := converters.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)

		return
	}

	req := setStatusRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Message(w, http.StatusBadRequest, response.MsgInvalidJSON)
		slog.Error("Error decoding request body for set status", "error", err)

		return
	}

	updated, err := service.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		response.Error(w, err)
		slog.ErrorContext(r.Context(), "Error setting order status", "order_id", id, "error", err)

		return
	}

	response.JSON(w, http.StatusOK, updated)
}
