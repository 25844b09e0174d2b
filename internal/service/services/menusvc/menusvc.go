package menusvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/corray333/backend-labs/restaurant/internal/dal/interfaces/ifoodrepo"
	"github.com/corray333/backend-labs/restaurant/internal/service/errs"
	"github.com/corray333/backend-labs/restaurant/internal/service/models/food"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
)

const (
	MsgNameAndPriceRequired = "name and price are required"
	MsgNegativePrice        = "price must not be negative"
	MsgEmptyName            = "name must not be empty"
	MsgFoodNotFound         = "Food not found"
)

// MenuService manages the foods orders can reference.
type MenuService struct {
	foodRepo ifoodrepo.IFoodRepository
}

// option is a function that configures the MenuService.
type option func(*MenuService)

// MustNewMenuService creates a new MenuService.
func MustNewMenuService(opts ...option) *MenuService {
	s := &MenuService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.foodRepo == nil {
		panic("menusvc: food repository is required")
	}

	return s
}

// WithFoodRepository sets the food repository for the MenuService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithFoodRepository(repo ifoodrepo.IFoodRepository) option {
	return func(s *MenuService) {
		s.foodRepo = repo
	}
}

// List returns all foods, newest first.
func (s *MenuService) List(ctx context.Context) ([]food.Food, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "MenuService.List")
	defer span.End()

	foods, err := s.foodRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}

	return foods, nil
}

func (s *MenuService) Get(ctx context.Context, id uuid.UUID) (food.Food, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "MenuService.Get")
	defer span.End()

	f, err := s.foodRepo.FindByID(ctx, id)
	if errors.Is(err, food.ErrNotFound) {
		return food.Food{}, errs.NotFound(MsgFoodNotFound)
	}
	if err != nil {
		return food.Food{}, fmt.Errorf("failed to find food: %w", err)
	}

	return f, nil
}

// Create adds a food built from the set fields of input.
// Name and Price are required; the food is available unless IsAvailable says otherwise.
func (s *MenuService) Create(ctx context.Context, input food.Patch) (food.Food, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "MenuService.Create")
	defer span.End()

	if input.Name == nil || strings.TrimSpace(*input.Name) == "" || input.Price == nil {
		return food.Food{}, errs.Validation(MsgNameAndPriceRequired)
	}
	if input.Price.IsNegative() {
		return food.Food{}, errs.Validation(MsgNegativePrice)
	}

	now := time.Now().UTC()
	f := food.Food{
		ID:          uuid.New(),
		Category:    food.DefaultCategory,
		IsAvailable: true,
		CreatedAt:   now,
	}
	input.UpdatedAt = now
	input.Apply(&f)
	if strings.TrimSpace(f.Category) == "" {
		f.Category = food.DefaultCategory
	}

	created, err := s.foodRepo.Insert(ctx, f)
	if err != nil {
		return food.Food{}, fmt.Errorf("failed to insert food: %w", err)
	}

	slog.InfoContext(ctx, "Food created", "food_id", created.ID, "name", created.Name)

	return created, nil
}

// Update applies patch to the food with id.
func (s *MenuService) Update(ctx context.Context, id uuid.UUID, patch food.Patch) (food.Food, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "MenuService.Update")
	defer span.End()

	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return food.Food{}, errs.Validation(MsgEmptyName)
	}
	if patch.Price != nil && patch.Price.IsNegative() {
		return food.Food{}, errs.Validation(MsgNegativePrice)
	}

	patch.UpdatedAt = time.Now().UTC()
	updated, err := s.foodRepo.Update(ctx, id, patch)
	if errors.Is(err, food.ErrNotFound) {
		return food.Food{}, errs.NotFound(MsgFoodNotFound)
	}
	if err != nil {
		return food.Food{}, fmt.Errorf("failed to update food: %w", err)
	}

	return updated, nil
}

// Delete removes the food with id. Orders that reference it keep their
// items and later resolve them with no food details.
func (s *MenuService) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := otel.Tracer("service").Start(ctx, "MenuService.Delete")
	defer span.End()

	err := s.foodRepo.Delete(ctx, id)
	if errors.Is(err, food.ErrNotFound) {
		return errs.NotFound(MsgFoodNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to delete food: %w", err)
	}

	slog.InfoContext(ctx, "Food deleted", "food_id", id)

	return nil
}
