package getorder

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/restaurant/internal/service/models/order"
	"github.com/corray333/backend-labs/restaurant/internal/transport/http/converters"
	"github.com/corray333/backend-labs/restaurant/internal/transport/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type service interface {
	Get(ctx context.Context, id uuid.UUID) (order.DetailedOrder, error)
}

func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := converters.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)

		return
	}

	o, err := service.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		slog.ErrorContext(r.Context(), "Error getting order", "order_id", id, "error", err)

		return
	}

	response.JSON(w, http.StatusOK, o)
}
