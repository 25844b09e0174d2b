package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/restaurant/internal/dal/postgres"
	"github.com/corray333/backend-labs/restaurant/internal/service/models/food"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const returning = "RETURNING id, name, description, price::text, image, category, is_available, created_at, updated_at"

var foodColumns = []string{
	"id",
	"name",
	"description",
	"price::text",
	"image",
	"category",
	"is_available",
	"created_at",
	"updated_at",
}

// FoodDal represents food data access layer model.
type FoodDal struct {
	Id          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Price       string    `db:"price"`
	Image       string    `db:"image"`
	Category    string    `db:"category"`
	IsAvailable bool      `db:"is_available"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// ToModel converts FoodDal to service layer Food model.
func (f *FoodDal) ToModel() (food.Food, error) {
	price, err := decimal.NewFromString(f.Price)
	if err != nil {
		return food.Food{}, fmt.Errorf("failed to parse price: %w", err)
	}

	return food.Food{
		ID:          f.Id,
		Name:        f.Name,
		Description: f.Description,
		Price:       price,
		Image:       f.Image,
		Category:    f.Category,
		IsAvailable: f.IsAvailable,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}, nil
}

// PostgresFoodRepository stores the menu in the foods table.
type PostgresFoodRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresFoodRepository creates a new Postgres food repository.
func NewPostgresFoodRepository(conn postgres.GenericConn) *PostgresFoodRepository {
	return &PostgresFoodRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// FindPricesByIDs resolves the prices of ids in one query.
func (r *PostgresFoodRepository) FindPricesByIDs(
	ctx context.Context,
	ids []uuid.UUID,
) (map[uuid.UUID]decimal.Decimal, error) {
	prices := make(map[uuid.UUID]decimal.Decimal, len(ids))
	if len(ids) == 0 {
		return prices, nil
	}

	sql, args, err := r.sb.
		Select("id", "price::text").
		From("foods").
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query food prices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id  uuid.UUID
			raw string
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan food price: %w", err)
		}
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse price: %w", err)
		}
		prices[id] = price
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return prices, nil
}

// FindByIDs returns the foods with the given ids.
func (r *PostgresFoodRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]food.Food, error) {
	result := make(map[uuid.UUID]food.Food, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	foods, err := r.query(ctx, r.sb.Select(foodColumns...).From("foods").Where(sq.Eq{"id": ids}))
	if err != nil {
		return nil, err
	}
	for _, f := range foods {
		result[f.ID] = f
	}

	return result, nil
}

// List returns the whole menu, newest first.
func (r *PostgresFoodRepository) List(ctx context.Context) ([]food.Food, error) {
	return r.query(ctx, r.sb.Select(foodColumns...).From("foods").OrderBy("created_at DESC", "id DESC"))
}

// FindByID returns one food or food.ErrNotFound.
func (r *PostgresFoodRepository) FindByID(ctx context.Context, id uuid.UUID) (food.Food, error) {
	sql, args, err := r.sb.
		Select(foodColumns...).
		From("foods").
		Where(sq.Expr("id = ?", id)).
		ToSql()
	if err != nil {
		return food.Food{}, fmt.Errorf("failed to build query: %w", err)
	}

	return r.scanRow(r.conn.QueryRow(ctx, sql, args...))
}

// Insert stores f and returns the stored row.
func (r *PostgresFoodRepository) Insert(ctx context.Context, f food.Food) (food.Food, error) {
	sql, args, err := r.sb.
		Insert("foods").
		Columns("id", "name", "description", "price", "image", "category", "is_available", "created_at", "updated_at").
		Values(
			f.ID,
			f.Name,
			f.Description,
			sq.Expr("?::numeric", f.Price.String()),
			f.Image,
			f.Category,
			f.IsAvailable,
			f.CreatedAt,
			f.UpdatedAt,
		).
		Suffix(returning).
		ToSql()
	if err != nil {
		return food.Food{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	result, err := r.scanRow(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		return food.Food{}, fmt.Errorf("failed to insert food: %w", err)
	}

	return result, nil
}

// Update applies patch to one food and returns the updated row.
func (r *PostgresFoodRepository) Update(ctx context.Context, id uuid.UUID, patch food.Patch) (food.Food, error) {
	updatedAt := patch.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	query := r.sb.Update("foods").Set("updated_at", updatedAt)
	if patch.Name != nil {
		query = query.Set("name", *patch.Name)
	}
	if patch.Description != nil {
		query = query.Set("description", *patch.Description)
	}
	if patch.Price != nil {
		query = query.Set("price", sq.Expr("?::numeric", patch.Price.String()))
	}
	if patch.Image != nil {
		query = query.Set("image", *patch.Image)
	}
	if patch.Category != nil {
		query = query.Set("category", *patch.Category)
	}
	if patch.IsAvailable != nil {
		query = query.Set("is_available", *patch.IsAvailable)
	}

	sql, args, err := query.Where(sq.Expr("id = ?", id)).Suffix(returning).ToSql()
	if err != nil {
		return food.Food{}, fmt.Errorf("failed to build update query: %w", err)
	}

	return r.scanRow(r.conn.QueryRow(ctx, sql, args...))
}

// Delete removes one food.
func (r *PostgresFoodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("foods").Where(sq.Expr("id = ?", id)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to delete food: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return food.ErrNotFound
	}

	return nil
}

func (r *PostgresFoodRepository) query(ctx context.Context, query sq.SelectBuilder) ([]food.Food, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query foods: %w", err)
	}
	defer rows.Close()

	result := []food.Food{}
	for rows.Next() {
		model, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

func (r *PostgresFoodRepository) scanRow(row pgx.Row) (food.Food, error) {
	var dal FoodDal
	err := row.Scan(
		&dal.Id,
		&dal.Name,
		&dal.Description,
		&dal.Price,
		&dal.Image,
		&dal.Category,
		&dal.IsAvailable,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return food.Food{}, food.ErrNotFound
	}
	if err != nil {
		return food.Food{}, fmt.Errorf("failed to scan food: %w", err)
	}

	return dal.ToModel()
}
