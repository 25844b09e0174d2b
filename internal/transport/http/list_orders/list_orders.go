package listorders

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/restaurant/internal/service/errs"
	"github.com/corray333/backend-labs/restaurant/internal/service/models/order"
	"github.com/corray333/backend-labs/restaurant/internal/service/services/billingsvc"
	"github.com/corray333/backend-labs/restaurant/internal/service/services/ordersvc"
	"github.com/corray333/backend-labs/restaurant/internal/transport/http/response"
	"github.com/gorilla/schema"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type service interface {
	List(ctx context.Context, filter order.QueryOrdersModel) ([]order.DetailedOrder, error)
}

type queryOrdersRequest struct {
	Tables   []int    `schema:"table,omitempty"`
	Statuses []string `schema:"status,omitempty"`
}

func (q *queryOrdersRequest) ToModel() (order.QueryOrdersModel, error) {
	model := order.QueryOrdersModel{}
	for _, table := range q.Tables {
		if table <= 0 {
			return order.QueryOrdersModel{}, errs.Validation(billingsvc.MsgInvalidTable)
		}
		model.Tables = append(model.Tables, table)
	}
	for _, raw := range q.Statuses {
		status, err := order.ParseStatus(raw)
		if err != nil {
			return order.QueryOrdersModel{}, errs.Validation(ordersvc.MsgInvalidStatus)
		}
		model.Statuses = append(model.Statuses, status)
	}

	return model, nil
}

// ListOrders handles GET /orders. Without filters every order is returned.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	query := &queryOrdersRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		response.Message(w, http.StatusBadRequest, billingsvc.MsgInvalidTable)
		slog.Error("Error decoding request", "error", err)

		return
	}

	filter, err := query.ToModel()
	if err != nil {
		response.Error(w, err)

		return
	}

	orders, err := service.List(r.Context(), filter)
	if err != nil {
		response.Error(w, err)
		slog.ErrorContext(r.Context(), "Error getting orders", "error", err)

		return
	}

	response.JSON(w, http.StatusOK, orders)
}
