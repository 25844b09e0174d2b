package billingsvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/corray333/backend-labs/restaurant/internal/dal/interfaces/iuow"
	foodmemory "github.com/corray333/backend-labs/restaurant/internal/dal/repositories/food/memory"
	ordermemory "github.com/corray333/backend-labs/restaurant/internal/dal/repositories/order/memory"
	"github.com/corray333/backend-labs/restaurant/internal/dal/uow"
	"github.com/corray333/backend-labs/restaurant/internal/service/errs"
	"github.com/corray333/backend-labs/restaurant/internal/service/models/billing"
	"github.com/corray333/backend-labs/restaurant/internal/service/models/currency"
	"github.com/corray333/backend-labs/restaurant/internal/service/models/event"
	"github.com/corray333/backend-labs/restaurant/internal/service/models/food"
	"github.com/corray333/backend-labs/restaurant/internal/service/models/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type fakePublisher struct {
	events []event.Event
}

func (p *fakePublisher) Publish(_ context.Context, events ...event.Event) error {
	p.events = append(p.events, events...)

	return nil
}

var pho = food.Food{ID: uuid.New(), Name: "Pho", Price: decimal.NewFromInt(20000)}

func newService(t *testing.T) (*BillingService, *ordermemory.OrderRepository, *fakePublisher) {
	t.Helper()

	orders := ordermemory.NewOrderRepository()
	publisher := &fakePublisher{}
	svc := MustNewBillingService(
		WithOrderRepository(orders),
		WithCatalog(foodmemory.NewFoodRepository(pho)),
		WithUnitOfWork(func() iuow.IUnitOfWork { return uow.NewMemoryUnitOfWork(orders) }),
		WithEventPublisher(publisher),
	)

	return svc, orders, publisher
}

func seed(t *testing.T, repo *ordermemory.OrderRepository, table int, status order.Status, subtotal int64) order.Order {
	t.Helper()

	now := time.Now().UTC()
	o, err := repo.Insert(context.Background(), order.Order{
		ID:        uuid.New(),
		Table:     table,
		Items:     []order.Item{{FoodID: pho.ID, Quantity: 1}},
		Status:    status,
		Subtotal:  decimal.NewFromInt(subtotal),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	return o
}

func TestGetUnpaidBillForTable_SumsOnlyUnpaidOrdersOfTable(t *testing.T) {
	svc, orders, _ := newService(t)

	seed(t, orders, 5, order.StatusOpen, 60000)
	seed(t, orders, 5, order.StatusPreparing, 40000)
	seed(t, orders, 5, order.StatusServed, 10000)
	seed(t, orders, 5, order.StatusPaid, 99000)
	seed(t, orders, 5, order.StatusCancelled, 77000)
	seed(t, orders, 6, order.StatusOpen, 50000)

	bill, err := svc.GetUnpaidBillForTable(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bill.UnpaidOrderCount != 3 || len(bill.Orders) != 3 {
		t.Errorf("expected 3 unpaid orders, got %d (%d listed)", bill.UnpaidOrderCount, len(bill.Orders))
	}
	if !bill.Total.Equal(decimal.NewFromInt(110000)) {
		t.Errorf("expected total 110000, got %s", bill.Total)
	}
	if bill.Currency != currency.CurrencyVND {
		t.Errorf("expected VND, got %s", bill.Currency)
	}
	if bill.Orders[0].Items[0].Food == nil || bill.Orders[0].Items[0].Food.ID != pho.ID {
		t.Errorf("expected items resolved to food details")
	}
	if bill.LastUpdated.IsZero() {
		t.Error("expected lastUpdated to be set")
	}

	// Reading the bill must not change anything.
	unpaid, _ := orders.FindByTableAndStatuses(context.Background(), 5, order.UnpaidStatuses())
	if len(unpaid) != 3 {
		t.Errorf("bill read modified orders, %d unpaid left", len(unpaid))
	}
}

func TestGetUnpaidBillForTable_Empty(t *testing.T) {
	svc, _, _ := newService(t)

	bill, err := svc.GetUnpaidBillForTable(context.Background(), 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bill.UnpaidOrderCount != 0 || !bill.Total.IsZero() {
		t.Errorf("expected empty bill, got %+v", bill)
	}
	if bill.Orders == nil || len(bill.Orders) != 0 {
		t.Errorf("expected empty non-nil orders, got %#v", bill.Orders)
	}
}

func TestInvalidTable(t *testing.T) {
	svc, _, _ := newService(t)

	for _, table := range []int{0, -1} {
		_, err := svc.GetUnpaidBillForTable(context.Background(), table)
		if !errors.Is(err, errs.ErrValidation) || err.Error() != MsgInvalidTable {
			t.Errorf("bill for table %d: expected %q, got %v", table, MsgInvalidTable, err)
		}

		_, err = svc.PayBillForTable(context.Background(), table)
		if !errors.Is(err, errs.ErrValidation) || err.Error() != MsgInvalidTable {
			t.Errorf("pay for table %d: expected %q, got %v", table, MsgInvalidTable, err)
		}
	}
}

func TestPayBillForTable(t *testing.T) {
	svc, orders, publisher := newService(t)
	ctx := context.Background()

	a := seed(t, orders, 5, order.StatusOpen, 60000)
	b := seed(t, orders, 5, order.StatusServed, 40000)
	other := seed(t, orders, 7, order.StatusOpen, 5000)

	payment, err := svc.PayBillForTable(ctx, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if payment.PaidCount != 2 || len(payment.OrderIDs) != 2 {
		t.Errorf("expected 2 paid orders, got %+v", payment)
	}
	if !payment.Total.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("expected total 100000, got %s", payment.Total)
	}
	if payment.Message != billing.MessagePaid || payment.PaidAt == nil {
		t.Errorf("unexpected payment: %+v", payment)
	}

	for _, id := range []uuid.UUID{a.ID, b.ID} {
		o, _ := orders.FindByID(ctx, id)
		if o.Status != order.StatusPaid {
			t.Errorf("order %s: expected paid, got %s", id, o.Status)
		}
	}
	if o, _ := orders.FindByID(ctx, other.ID); o.Status != order.StatusOpen {
		t.Errorf("order of another table was paid")
	}

	if len(publisher.events) != 1 || publisher.events[0].Type != event.TypeBillPaid {
		t.Errorf("expected one bill.paid event, got %+v", publisher.events)
	}
}

func TestPayBillForTable_Idempotent(t *testing.T) {
	svc, orders, publisher := newService(t)
	ctx := context.Background()

	seed(t, orders, 3, order.StatusOpen, 10000)

	if _, err := svc.PayBillForTable(ctx, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := svc.PayBillForTable(ctx, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if second.PaidCount != 0 || !second.Total.IsZero() || len(second.OrderIDs) != 0 {
		t.Errorf("expected zero result, got %+v", second)
	}
	if second.OrderIDs == nil {
		t.Error("expected empty non-nil order ids")
	}
	if second.Message != billing.MessageNothingToPay || second.PaidAt != nil {
		t.Errorf("unexpected zero result: %+v", second)
	}
	if len(publisher.events) != 1 {
		t.Errorf("expected no event for an empty payment, got %d events", len(publisher.events))
	}

	bill, _ := svc.GetUnpaidBillForTable(ctx, 3)
	if bill.UnpaidOrderCount != 0 {
		t.Errorf("expected nothing unpaid after payment, got %d", bill.UnpaidOrderCount)
	}
}
