package paybill

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
	PayBillForTable(ctx context.Context, table int) (billing.Payment, error)
}

// PayBill handles POST /billing/table/{table}/pay.
func PayBill(w http.ResponseWriter, r *http.Request, service service) {
	table, err := converters.ParseTable(chi.URLParam(r, "table"))
	if err != nil {
		response.Error(w, err)

		return
	}

	payment, err := service.PayBillForTable(r.Context(), table)
	if err != nil {
		response.Error(w, err)
		slog.ErrorContext(r.Context(), "Error paying bill", "table", table, "error", err)

		return
	}

	response.JSON(w, http.StatusOK, payment)
}
