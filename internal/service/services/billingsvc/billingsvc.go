package billingsvc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/corray333/backend-labs/restaurant/internal/dal/interfaces/ieventpublisher"
	"github.com/corray333/backend-labs/restaurant/internal/dal/interfaces/ifoodrepo"
	"github.com/corray333/backend-labs/restaurant/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/restaurant/internal/dal/interfaces/iuow"
	"github.com/corray333/backend-labs/restaurant/internal/service/errs"
	"github.com/corray333/backend-labs/restaurant/internal/service/models/billing"
	"github.com/corray333/backend-labs/restaurant/internal/service/models/currency"
	"github.com/corray333/backend-labs/restaurant/internal/service/models/event"
	"github.com/corray333/backend-labs/restaurant/internal/service/models/order"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
)

const MsgInvalidTable = "Invalid table number"

// BillingService aggregates and settles the unpaid orders of a table.
type BillingService struct {
	orderRepo iorderrepo.IOrderRepository
	catalog   ifoodrepo.ICatalog
	newUOW    iuow.Factory
	publisher ieventpublisher.IEventPublisher
	currency  currency.Currency
}

// option is a function that configures the BillingService.
type option func(*BillingService)

// MustNewBillingService creates a new BillingService.
// The currency defaults to VND.
func MustNewBillingService(opts ...option) *BillingService {
	s := &BillingService{currency: currency.CurrencyVND}
	for _, opt := range opts {
		opt(s)
	}

	if s.orderRepo == nil || s.catalog == nil || s.newUOW == nil {
		panic("billingsvc: order repository, catalog and unit of work are required")
	}

	return s
}

// WithOrderRepository sets the order repository for the BillingService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(repo iorderrepo.IOrderRepository) option {
	return func(s *BillingService) {
		s.orderRepo = repo
	}
}

// WithCatalog sets the catalog used to resolve bill items.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCatalog(catalog ifoodrepo.ICatalog) option {
	return func(s *BillingService) {
		s.catalog = catalog
	}
}

// WithUnitOfWork sets the unit of work factory used by PayBillForTable.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWork(factory iuow.Factory) option {
	return func(s *BillingService) {
		s.newUOW = factory
	}
}

// WithEventPublisher sets the publisher notified when a bill is paid.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithEventPublisher(publisher ieventpublisher.IEventPublisher) option {
	return func(s *BillingService) {
		s.publisher = publisher
	}
}

// WithCurrency sets the currency label of bills and payments.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCurrency(c currency.Currency) option {
	return func(s *BillingService) {
		s.currency = c
	}
}

// GetUnpaidBillForTable returns the open, preparing and served orders of table
// with their subtotals summed. It does not modify anything.
func (s *BillingService) GetUnpaidBillForTable(ctx context.Context, table int) (billing.Bill, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "BillingService.GetUnpaidBillForTable")
	defer span.End()

	if table <= 0 {
		return billing.Bill{}, errs.Validation(MsgInvalidTable)
	}

	orders, err := s.orderRepo.FindByTableAndStatuses(ctx, table, order.UnpaidStatuses())
	if err != nil {
		return billing.Bill{}, fmt.Errorf("failed to find unpaid orders: %w", err)
	}

	foods, err := s.catalog.FindByIDs(ctx, order.FoodIDsOf(orders))
	if err != nil {
		return billing.Bill{}, fmt.Errorf("failed to resolve foods: %w", err)
	}

	return billing.Bill{
		Table:            table,
		UnpaidOrderCount: len(orders),
		Currency:         s.currency,
		Total:            order.TotalSubtotal(orders),
		Orders:           order.Resolve(orders, foods),
		LastUpdated:      time.Now().UTC(),
	}, nil
}

// PayBillForTable marks every unpaid order of table as paid with one batch update.
//
// The unpaid set is a snapshot taken when the unit of work starts reading.
// An order created for the table after that snapshot is left unpaid and
// shows up on the next bill. Paying a table with nothing unpaid is not an
// error and returns a zero payment.
func (s *BillingService) PayBillForTable(ctx context.Context, table int) (billing.Payment, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "BillingService.PayBillForTable")
	defer span.End()

	if table <= 0 {
		return billing.Payment{}, errs.Validation(MsgInvalidTable)
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return billing.Payment{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := work.Rollback(ctx); err != nil {
			slog.ErrorContext(ctx, "Failed to rollback transaction", "error", err)
		}
	}()

	repo := work.OrderRepository()
	orders, err := repo.FindByTableAndStatuses(ctx, table, order.UnpaidStatuses())
	if err != nil {
		return billing.Payment{}, fmt.Errorf("failed to find unpaid orders: %w", err)
	}

	if len(orders) == 0 {
		return billing.Payment{
			Table:    table,
			Currency: s.currency,
			Total:    order.TotalSubtotal(nil),
			OrderIDs: []uuid.UUID{},
			Message:  billing.MessageNothingToPay,
		}, nil
	}

	ids := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	total := order.TotalSubtotal(orders)

	paid := order.StatusPaid
	paidAt := time.Now().UTC()
	count, err := repo.UpdateManyByIDs(ctx, ids, order.Patch{
		Status:    &paid,
		UpdatedAt: paidAt,
	})
	if err != nil {
		return billing.Payment{}, fmt.Errorf("failed to mark orders as paid: %w", err)
	}

	if err := work.Commit(ctx); err != nil {
		return billing.Payment{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.InfoContext(ctx, "Table bill paid",
		"table", table,
		"paid_count", count,
		"total", total)

	if s.publisher != nil {
		evt := event.New(event.TypeBillPaid, table, ids, paid.String(), total)
		if err := s.publisher.Publish(ctx, evt); err != nil {
			slog.ErrorContext(ctx, "Failed to publish bill event", "table", table, "error", err)
		}
	}

	return billing.Payment{
		Table:     table,
		PaidCount: int(count),
		Currency:  s.currency,
		Total:     total,
		OrderIDs:  ids,
		Message:   billing.MessagePaid,
		PaidAt:    &paidAt,
	}, nil
}
