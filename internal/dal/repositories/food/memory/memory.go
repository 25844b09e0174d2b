package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/corray333/backend-labs/restaurant/internal/service/models/food"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FoodRepository keeps the menu in process memory.
type FoodRepository struct {
	mu    sync.RWMutex
	seq   int64
	foods map[uuid.UUID]food.Food
	order map[uuid.UUID]int64
}

// NewFoodRepository creates an in-memory menu holding foods.
func NewFoodRepository(foods ...food.Food) *FoodRepository {
	r := &FoodRepository{
		foods: make(map[uuid.UUID]food.Food),
		order: make(map[uuid.UUID]int64),
	}
	for _, f := range foods {
		_, _ = r.Insert(context.Background(), f)
	}

	return r
}

// FindPricesByIDs resolves the prices of ids; unknown ids are omitted.
func (r *FoodRepository) FindPricesByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	prices := make(map[uuid.UUID]decimal.Decimal, len(ids))
	for _, id := range ids {
		if f, ok := r.foods[id]; ok {
			prices[id] = f.Price
		}
	}

	return prices, nil
}

// FindByIDs returns the foods with the given ids.
func (r *FoodRepository) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]food.Food, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[uuid.UUID]food.Food, len(ids))
	for _, id := range ids {
		if f, ok := r.foods[id]; ok {
			result[id] = f
		}
	}

	return result, nil
}

// List returns the whole menu, newest first.
func (r *FoodRepository) List(_ context.Context) ([]food.Food, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]food.Food, 0, len(r.foods))
	for _, f := range r.foods {
		result = append(result, f)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}

		return r.order[result[i].ID] > r.order[result[j].ID]
	})

	return result, nil
}

// FindByID returns one food or food.ErrNotFound.
func (r *FoodRepository) FindByID(_ context.Context, id uuid.UUID) (food.Food, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.foods[id]
	if !ok {
		return food.Food{}, food.ErrNotFound
	}

	return f, nil
}

// Insert stores f, assigning an id when it has none.
func (r *FoodRepository) Insert(_ context.Context, f food.Food) (food.Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	r.seq++
	r.foods[f.ID] = f
	r.order[f.ID] = r.seq

	return f, nil
}

// Update applies patch to one food.
func (r *FoodRepository) Update(_ context.Context, id uuid.UUID, patch food.Patch) (food.Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.foods[id]
	if !ok {
		return food.Food{}, food.ErrNotFound
	}
	patch.Apply(&f)
	r.foods[id] = f

	return f, nil
}

// Delete removes one food.
func (r *FoodRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.foods[id]; !ok {
		return food.ErrNotFound
	}
	delete(r.foods, id)
	delete(r.order, id)

	return nil
}
