package iorderrepo

import (
	"context"

	"github.com/corray333/backend-labs/restaurant/internal/service/models/order"
	"github.com/google/uuid"
)

// IOrderRepository is the persistence boundary for orders.
// FindByID and UpdateByID return order.ErrNotFound when the order is absent.
type IOrderRepository interface {
	Insert(ctx context.Context, o order.Order) (order.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (order.Order, error)
	FindByTableAndStatuses(ctx context.Context, table int, statuses []order.Status) ([]order.Order, error)
	UpdateByID(ctx context.Context, id uuid.UUID, patch order.Patch) (order.Order, error)
	UpdateManyByIDs(ctx context.Context, ids []uuid.UUID, patch order.Patch) (int64, error)
	// ListAll returns the orders matching filter, newest first.
	ListAll(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error)
}
