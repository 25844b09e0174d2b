package food

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCategory is assigned to foods created without a category.
const DefaultCategory = "General"

var ErrNotFound = errors.New("food not found")

func init() {
	// Prices and totals travel as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Food is a menu entry.
type Food struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	IsAvailable bool            `json:"isAvailable"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Patch is a partial update of a Food. Nil fields are left untouched.
type Patch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Image       *string
	Category    *string
	IsAvailable *bool
	UpdatedAt   time.Time
}

// Apply writes the non-nil fields of p into f.
func (p Patch) Apply(f *Food) {
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
	if p.Price != nil {
		f.Price = *p.Price
	}
	if p.Image != nil {
		f.Image = *p.Image
	}
	if p.Category != nil {
		f.Category = *p.Category
	}
	if p.IsAvailable != nil {
		f.IsAvailable = *p.IsAvailable
	}
	if !p.UpdatedAt.IsZero() {
		f.UpdatedAt = p.UpdatedAt
	}
}
