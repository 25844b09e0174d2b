package memory

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/corray333/backend-labs/restaurant/internal/service/models/order"
	"github.com/google/uuid"
)

type record struct {
	seq   int64
	order order.Order
}

// OrderRepository keeps orders in process memory.
type OrderRepository struct {
	mu      sync.RWMutex
	seq     int64
	records map[uuid.UUID]*record
}

// NewOrderRepository creates an empty in-memory order repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		records: make(map[uuid.UUID]*record),
	}
}

func clone(o order.Order) order.Order {
	o.Items = slices.Clone(o.Items)

	return o
}

// Insert stores a copy of o.
func (r *OrderRepository) Insert(_ context.Context, o order.Order) (order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.seq++
	r.records[o.ID] = &record{seq: r.seq, order: clone(o)}

	return clone(o), nil
}

// FindByID returns the order with the given id.
func (r *OrderRepository) FindByID(_ context.Context, id uuid.UUID) (order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return order.Order{}, order.ErrNotFound
	}

	return clone(rec.order), nil
}

// FindByTableAndStatuses returns the orders of table whose status is in statuses.
func (r *OrderRepository) FindByTableAndStatuses(
	ctx context.Context,
	table int,
	statuses []order.Status,
) ([]order.Order, error) {
	return r.ListAll(ctx, order.QueryOrdersModel{
		Tables:   []int{table},
		Statuses: statuses,
	})
}

// UpdateByID applies patch to the order with the given id.
func (r *OrderRepository) UpdateByID(_ context.Context, id uuid.UUID, patch order.Patch) (order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return order.Order{}, order.ErrNotFound
	}
	patch.Apply(&rec.order)

	return clone(rec.order), nil
}

// UpdateManyByIDs applies patch to every existing order in ids.
func (r *OrderRepository) UpdateManyByIDs(_ context.Context, ids []uuid.UUID, patch order.Patch) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var updated int64
	for _, id := range ids {
		rec, ok := r.records[id]
		if !ok {
			continue
		}
		patch.Apply(&rec.order)
		updated++
	}

	return updated, nil
}

// ListAll returns the orders matching filter, newest first.
func (r *OrderRepository) ListAll(_ context.Context, filter order.QueryOrdersModel) ([]order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*record, 0, len(r.records))
	for _, rec := range r.records {
		if len(filter.Tables) > 0 && !slices.Contains(filter.Tables, rec.order.Table) {
			continue
		}
		if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, rec.order.Status) {
			continue
		}
		matched = append(matched, rec)
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.order.CreatedAt.Equal(b.order.CreatedAt) {
			return a.order.CreatedAt.After(b.order.CreatedAt)
		}

		return a.seq > b.seq
	})

	result := make([]order.Order, 0, len(matched))
	for _, rec := range matched {
		result = append(result, clone(rec.order))
	}

	return result, nil
}
