package ordersvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/corray333/backend-labs/restaurant/internal/dal/interfaces/ieventpublisher"
	"github.com/corray333/backend-labs/restaurant/internal/dal/interfaces/ifoodrepo"
	"github.com/corray333/backend-labs/restaurant/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/restaurant/internal/dal/interfaces/iuow"
	"github.com/corray333/backend-labs/restaurant/internal/service/errs"
	"github.com/corray333/backend-labs/restaurant/internal/service/models/event"
	"github.com/corray333/backend-labs/restaurant/internal/service/models/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
)

// Client-facing validation and lookup messages.
const (
	MsgTableAndItemsRequired = "table and non-empty items[] are required"
	MsgItemsRequired         = "items[] required"
	MsgInvalidFoodIDInItems  = "Invalid food id in items"
	MsgInvalidQuantity       = "Invalid quantity in items"
	MsgUnknownFood           = "Invalid food id"
	MsgOrderNotFound         = "Order not found"
	MsgClosedOrder           = "Cannot add items to a closed order"
	MsgInvalidStatus         = "Invalid status"
)

// OrderService owns the order lifecycle: creation, item additions and status changes.
type OrderService struct {
	orderRepo iorderrepo.IOrderRepository
	catalog   ifoodrepo.ICatalog
	newUOW    iuow.Factory
	publisher ieventpublisher.IEventPublisher
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
// It panics when the order repository, catalog or unit of work factory is missing.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.orderRepo == nil || s.catalog == nil || s.newUOW == nil {
		panic("ordersvc: order repository, catalog and unit of work are required")
	}

	return s
}

// WithOrderRepository sets the order repository for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(repo iorderrepo.IOrderRepository) option {
	return func(s *OrderService) {
		s.orderRepo = repo
	}
}

// WithCatalog sets the menu catalog used for prices and food details.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCatalog(catalog ifoodrepo.ICatalog) option {
	return func(s *OrderService) {
		s.catalog = catalog
	}
}

// WithUnitOfWork sets the unit of work factory for read-modify-write operations.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWork(factory iuow.Factory) option {
	return func(s *OrderService) {
		s.newUOW = factory
	}
}

// WithEventPublisher sets the publisher notified after every committed change.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithEventPublisher(publisher ieventpublisher.IEventPublisher) option {
	return func(s *OrderService) {
		s.publisher = publisher
	}
}

// Create opens a new order for table with the given items.
func (s *OrderService) Create(ctx context.Context, table int, items []order.Item) (order.Order, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.Create")
	defer span.End()

	if table <= 0 || len(items) == 0 {
		return order.Order{}, errs.Validation(MsgTableAndItemsRequired)
	}
	if err := validateItems(items); err != nil {
		return order.Order{}, err
	}

	subtotal, err := s.subtotal(ctx, items)
	if err != nil {
		return order.Order{}, err
	}

	now := time.Now().UTC()
	created, err := s.orderRepo.Insert(ctx, order.Order{
		ID:        uuid.New(),
		Table:     table,
		Items:     slices.Clone(items),
		Status:    order.StatusOpen,
		Subtotal:  subtotal,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	slog.InfoContext(ctx, "Order created",
		"order_id", created.ID,
		"table", created.Table,
		"items", len(created.Items),
		"subtotal", created.Subtotal)

	s.publish(ctx, event.New(
		event.TypeOrderCreated,
		created.Table,
		[]uuid.UUID{created.ID},
		created.Status.String(),
		created.Subtotal,
	))

	return created, nil
}

// AddItems appends items to an unpaid order and recomputes its subtotal.
// Items for a food already on the order are appended as separate lines.
func (s *OrderService) AddItems(ctx context.Context, id uuid.UUID, items []order.Item) (order.Order, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.AddItems")
	defer span.End()

	if len(items) == 0 {
		return order.Order{}, errs.Validation(MsgItemsRequired)
	}
	if err := validateItems(items); err != nil {
		return order.Order{}, err
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return order.Order{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := work.Rollback(ctx); err != nil {
			slog.ErrorContext(ctx, "Failed to rollback transaction", "error", err)
		}
	}()

	current, err := work.OrderRepository().FindByID(ctx, id)
	if errors.Is(err, order.ErrNotFound) {
		return order.Order{}, errs.NotFound(MsgOrderNotFound)
	}
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to find order: %w", err)
	}

	if !current.Status.IsUnpaid() {
		return order.Order{}, errs.Validation(MsgClosedOrder)
	}

	combined := append(slices.Clone(current.Items), items...)
	subtotal, err := s.subtotal(ctx, combined)
	if err != nil {
		return order.Order{}, err
	}

	updated, err := work.OrderRepository().UpdateByID(ctx, id, order.Patch{
		Items:     combined,
		Subtotal:  &subtotal,
		UpdatedAt: time.Now().UTC(),
	})
	if errors.Is(err, order.ErrNotFound) {
		return order.Order{}, errs.NotFound(MsgOrderNotFound)
	}
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to update order: %w", err)
	}

	if err := work.Commit(ctx); err != nil {
		return order.Order{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.InfoContext(ctx, "Items added to order",
		"order_id", updated.ID,
		"added", len(items),
		"subtotal", updated.Subtotal)

	s.publish(ctx, event.New(
		event.TypeOrderItemsAdded,
		updated.Table,
		[]uuid.UUID{updated.ID},
		updated.Status.String(),
		updated.Subtotal,
	))

	return updated, nil
}

// SetStatus sets the status of an order. Every transition is allowed.
func (s *OrderService) SetStatus(ctx context.Context, id uuid.UUID, status string) (order.Order, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.SetStatus")
	defer span.End()

	newStatus, err := order.ParseStatus(status)
	if err != nil {
		return order.Order{}, errs.Validation(MsgInvalidStatus)
	}

	updated, err := s.orderRepo.UpdateByID(ctx, id, order.Patch{
		Status:    &newStatus,
		UpdatedAt: time.Now().UTC(),
	})
	if errors.Is(err, order.ErrNotFound) {
		return order.Order{}, errs.NotFound(MsgOrderNotFound)
	}
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to update order status: %w", err)
	}

	slog.InfoContext(ctx, "Order status set", "order_id", updated.ID, "status", updated.Status)

	s.publish(ctx, event.New(
		event.TypeOrderStatusChanged,
		updated.Table,
		[]uuid.UUID{updated.ID},
		updated.Status.String(),
		updated.Subtotal,
	))

	return updated, nil
}

// Get returns one order with its items resolved to food details.
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (order.DetailedOrder, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.Get")
	defer span.End()

	o, err := s.orderRepo.FindByID(ctx, id)
	if errors.Is(err, order.ErrNotFound) {
		return order.DetailedOrder{}, errs.NotFound(MsgOrderNotFound)
	}
	if err != nil {
		return order.DetailedOrder{}, fmt.Errorf("failed to find order: %w", err)
	}

	detailed, err := resolveItems(ctx, s.catalog, []order.Order{o})
	if err != nil {
		return order.DetailedOrder{}, err
	}

	return detailed[0], nil
}

// List returns the orders matching filter, newest first, with items resolved.
func (s *OrderService) List(ctx context.Context, filter order.QueryOrdersModel) ([]order.DetailedOrder, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.List")
	defer span.End()

	orders, err := s.orderRepo.ListAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return resolveItems(ctx, s.catalog, orders)
}

// resolveItems loads the foods referenced by orders in one catalog call
// and attaches them to the items.
func resolveItems(ctx context.Context, catalog ifoodrepo.ICatalog, orders []order.Order) ([]order.DetailedOrder, error) {
	foods, err := catalog.FindByIDs(ctx, order.FoodIDsOf(orders))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve foods: %w", err)
	}

	return order.Resolve(orders, foods), nil
}

// subtotal prices items with a single catalog lookup. One unknown food
// fails the whole computation.
func (s *OrderService) subtotal(ctx context.Context, items []order.Item) (decimal.Decimal, error) {
	prices, err := s.catalog.FindPricesByIDs(ctx, order.FoodIDs(items))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to resolve food prices: %w", err)
	}

	total := decimal.Zero
	for _, it := range items {
		price, ok := prices[it.FoodID]
		if !ok {
			return decimal.Zero, errs.Validation(MsgUnknownFood)
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	return total, nil
}

func (s *OrderService) publish(ctx context.Context, evt event.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		slog.ErrorContext(ctx, "Failed to publish order event",
			"event_type", evt.Type,
			"table", evt.Table,
			"error", err)
	}
}

func validateItems(items []order.Item) error {
	for _, it := range items {
		if it.FoodID == uuid.Nil {
			return errs.Validation(MsgInvalidFoodIDInItems)
		}
	}
	for _, it := range items {
		if it.Quantity < 1 {
			return errs.Validation(MsgInvalidQuantity)
		}
	}

	return nil
}
