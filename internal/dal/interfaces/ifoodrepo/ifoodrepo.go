package ifoodrepo

import (
	"context"

	"github.com/corray333/backend-labs/restaurant/internal/service/models/food"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ICatalog is the read side of the menu used by orders and billing.
// Unknown ids are omitted from the returned maps.
type ICatalog interface {
	FindPricesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]food.Food, error)
}

// IFoodRepository is the full menu storage.
// FindByID, Update and Delete return food.ErrNotFound when the food is absent.
type IFoodRepository interface {
	ICatalog

	List(ctx context.Context) ([]food.Food, error)
	FindByID(ctx context.Context, id uuid.UUID) (food.Food, error)
	Insert(ctx context.Context, f food.Food) (food.Food, error)
	Update(ctx context.Context, id uuid.UUID, patch food.Patch) (food.Food, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
