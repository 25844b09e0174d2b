package getbill

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/restaurant/internal/service/models/billing"
	"github.com/corray333/backend-labs/restaurant/internal/transport/http/converters"
	"github.com/corray333/backend-labs/restaurant/internal/transport/http/response"
	"github.com/go-chi/chi/v5"
)

type service interface {
	GetUnpaidBillForTable(ctx context.Context, table int) (billing.Bill, error)
}

// GetBill handles GET /billing/table/{table}.
func GetBill(w http.ResponseWriter, r *http.Request, service service) {
	table, err := converters.ParseTable(chi.URLParam(r, "table"))
	if err != nil {
		response.Error(w, err)

		return
	}

	bill, err := service.GetUnpaidBillForTable(r.Context(), table)
	if err != nil {
		response.Error(w, err)
		slog.ErrorContext(r.Context(), "Error getting bill", "table", table, "error", err)

		return
	}

	response.JSON(w, http.StatusOK, bill)
}
