package menusvc

import (
	"context"
	"errors"
	"testing"

	foodmemory "github.com/corray333/backend-labs/restaurant/internal/dal/repositories/food/memory"
	"github.com/corray333/backend-labs/restaurant/internal/service/errs"
	"github.com/corray333/backend-labs/restaurant/internal/service/models/food"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func ptr[T any](v T) *T {
	return &v
}

func newService() *MenuService {
	return MustNewMenuService(WithFoodRepository(foodmemory.NewFoodRepository()))
}

func TestCreate_Defaults(t *testing.T) {
	svc := newService()

	created, err := svc.Create(context.Background(), food.Patch{
		Name:  ptr("Banh mi"),
		Price: ptr(decimal.NewFromInt(25000)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.ID == uuid.Nil {
		t.Error("expected an id")
	}
	if created.Category != food.DefaultCategory || !created.IsAvailable {
		t.Errorf("expected defaults, got %+v", created)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps")
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := newService()

	tests := []struct {
		name  string
		input food.Patch
		msg   string
	}{
		{"missing name", food.Patch{Price: ptr(decimal.NewFromInt(1))}, MsgNameAndPriceRequired},
		{"blank name", food.Patch{Name: ptr("  "), Price: ptr(decimal.NewFromInt(1))}, MsgNameAndPriceRequired},
		{"missing price", food.Patch{Name: ptr("Com tam")}, MsgNameAndPriceRequired},
		{"negative price", food.Patch{Name: ptr("Com tam"), Price: ptr(decimal.NewFromInt(-1))}, MsgNegativePrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.input)
			if !errors.Is(err, errs.ErrValidation) || err.Error() != tt.msg {
				t.Errorf("expected %q, got %v", tt.msg, err)
			}
		})
	}
}

func TestUpdateAndDelete(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, food.Patch{Name: ptr("Pho"), Price: ptr(decimal.NewFromInt(30000))})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, food.Patch{Price: ptr(decimal.NewFromInt(35000)), IsAvailable: ptr(false)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "Pho" || !updated.Price.Equal(decimal.NewFromInt(35000)) || updated.IsAvailable {
		t.Errorf("unexpected update result: %+v", updated)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Get(ctx, created.ID)
	if !errors.Is(err, errs.ErrNotFound) || err.Error() != MsgFoodNotFound {
		t.Errorf("expected %q, got %v", MsgFoodNotFound, err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected not found on second delete, got %v", err)
	}
	if _, err := svc.Update(ctx, created.ID, food.Patch{Name: ptr("x")}); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected not found on update, got %v", err)
	}
}

func TestList_NewestFirst(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	first, _ := svc.Create(ctx, food.Patch{Name: ptr("A"), Price: ptr(decimal.NewFromInt(1))})
	second, _ := svc.Create(ctx, food.Patch{Name: ptr("B"), Price: ptr(decimal.NewFromInt(2))})

	foods, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(foods) != 2 || foods[0].ID != second.ID || foods[1].ID != first.ID {
		t.Errorf("expected newest first, got %+v", foods)
	}
}
