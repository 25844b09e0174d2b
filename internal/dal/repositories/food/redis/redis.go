package redisrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/corray333/backend-labs/restaurant/internal/dal/interfaces/ifoodrepo"
	"github.com/corray333/backend-labs/restaurant/internal/service/models/food"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const keyPrefix = "restaurant:food:"

// CachedFoodRepository is a read-through Redis cache of food details in
// front of another food repository. Prices for subtotals always come from
// the wrapped repository; only FindByIDs is served from the cache.
type CachedFoodRepository struct {
	next ifoodrepo.IFoodRepository
	rdb  *redis.Client
	ttl  time.Duration
}

// NewCachedFoodRepository wraps next with a cache whose entries live ttl.
func NewCachedFoodRepository(
	next ifoodrepo.IFoodRepository,
	rdb *redis.Client,
	ttl time.Duration,
) *CachedFoodRepository {
	return &CachedFoodRepository{
		next: next,
		rdb:  rdb,
		ttl:  ttl,
	}
}

// Key returns the cache key of a food.
func Key(id uuid.UUID) string {
	return keyPrefix + id.String()
}

// FindPricesByIDs bypasses the cache.
func (r *CachedFoodRepository) FindPricesByIDs(
	ctx context.Context,
	ids []uuid.UUID,
) (map[uuid.UUID]decimal.Decimal, error) {
	return r.next.FindPricesByIDs(ctx, ids)
}

// FindByIDs serves cached foods and loads the rest from the wrapped repository.
// Cache failures degrade to a plain lookup.
func (r *CachedFoodRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]food.Food, error) {
	result := make(map[uuid.UUID]food.Food, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = Key(id)
	}

	missing := ids
	cached, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		slog.WarnContext(ctx, "Food cache read failed", "error", err)
	} else {
		missing = make([]uuid.UUID, 0, len(ids))
		for i, v := range cached {
			raw, ok := v.(string)
			if !ok {
				missing = append(missing, ids[i])

				continue
			}
			var f food.Food
			if err := json.Unmarshal([]byte(raw), &f); err != nil {
				missing = append(missing, ids[i])

				continue
			}
			result[ids[i]] = f
		}
	}

	if len(missing) == 0 {
		return result, nil
	}

	loaded, err := r.next.FindByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}

	pipe := r.rdb.Pipeline()
	for id, f := range loaded {
		result[id] = f
		raw, err := json.Marshal(f)
		if err != nil {
			return nil, fmt.Errorf("failed to encode food: %w", err)
		}
		pipe.Set(ctx, Key(id), raw, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		slog.WarnContext(ctx, "Food cache write failed", "error", err)
	}

	return result, nil
}

// List bypasses the cache.
func (r *CachedFoodRepository) List(ctx context.Context) ([]food.Food, error) {
	return r.next.List(ctx)
}

// FindByID bypasses the cache.
func (r *CachedFoodRepository) FindByID(ctx context.Context, id uuid.UUID) (food.Food, error) {
	return r.next.FindByID(ctx, id)
}

// Insert bypasses the cache.
func (r *CachedFoodRepository) Insert(ctx context.Context, f food.Food) (food.Food, error) {
	return r.next.Insert(ctx, f)
}

// Update writes through and evicts the cached entry.
func (r *CachedFoodRepository) Update(ctx context.Context, id uuid.UUID, patch food.Patch) (food.Food, error) {
	f, err := r.next.Update(ctx, id, patch)
	if err != nil {
		return food.Food{}, err
	}
	r.evict(ctx, id)

	return f, nil
}

// Delete deletes through and evicts the cached entry.
func (r *CachedFoodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.evict(ctx, id)

	return nil
}

func (r *CachedFoodRepository) evict(ctx context.Context, id uuid.UUID) {
	if err := r.rdb.Del(ctx, Key(id)).Err(); err != nil {
		slog.WarnContext(ctx, "Food cache eviction failed", "food_id", id, "error", err)
	}
}
