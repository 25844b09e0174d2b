package postgresrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/restaurant/internal/dal/postgres"
	"github.com/corray333/backend-labs/restaurant/internal/service/models/order"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var orderColumns = []string{
	"id",
	"table_number",
	"items",
	"status",
	"subtotal::text",
	"created_at",
	"updated_at",
}

// OrderDal represents order data access layer model.
type OrderDal struct {
	Id          uuid.UUID `db:"id"`
	TableNumber int       `db:"table_number"`
	Items       []byte    `db:"items"`
	Status      string    `db:"status"`
	Subtotal    string    `db:"subtotal"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// ToModel converts OrderDal to service layer Order model.
func (o *OrderDal) ToModel() (order.Order, error) {
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return order.Order{}, err
	}

	subtotal, err := decimal.NewFromString(o.Subtotal)
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to parse subtotal: %w", err)
	}

	items := []order.Item{}
	if len(o.Items) > 0 {
		if err := json.Unmarshal(o.Items, &items); err != nil {
			return order.Order{}, fmt.Errorf("failed to decode items: %w", err)
		}
	}

	return order.Order{
		ID:        o.Id,
		Table:     o.TableNumber,
		Items:     items,
		Status:    status,
		Subtotal:  subtotal,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}, nil
}

// OrderDalFromModel converts service layer Order model to OrderDal.
func OrderDalFromModel(o order.Order) (*OrderDal, error) {
	items := o.Items
	if items == nil {
		items = []order.Item{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode items: %w", err)
	}

	return &OrderDal{
		Id:          o.ID,
		TableNumber: o.Table,
		Items:       raw,
		Status:      o.Status.String(),
		Subtotal:    o.Subtotal.String(),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}, nil
}

// PostgresOrderRepository stores orders in the orders table.
type PostgresOrderRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn postgres.GenericConn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert inserts o and returns the stored row.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	dal, err := OrderDalFromModel(o)
	if err != nil {
		return order.Order{}, err
	}

	sql, args, err := r.sb.
		Insert("orders").
		Columns("id", "table_number", "items", "status", "subtotal", "created_at", "updated_at").
		Values(
			dal.Id,
			dal.TableNumber,
			dal.Items,
			dal.Status,
			sq.Expr("?::numeric", dal.Subtotal),
			dal.CreatedAt,
			dal.UpdatedAt,
		).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	result, err := scanOne(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	return result, nil
}

// FindByID returns the order with the given id or order.ErrNotFound.
func (r *PostgresOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (order.Order, error) {
	sql, args, err := r.sb.
		Select(orderColumns...).
		From("orders").
		Where(sq.Expr("id = ?", id)).
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build select query: %w", err)
	}

	result, err := scanOne(r.conn.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return order.Order{}, order.ErrNotFound
	}
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to find order: %w", err)
	}

	return result, nil
}

// FindByTableAndStatuses returns the orders of table whose status is in statuses.
func (r *PostgresOrderRepository) FindByTableAndStatuses(
	ctx context.Context,
	table int,
	statuses []order.Status,
) ([]order.Order, error) {
	return r.ListAll(ctx, order.QueryOrdersModel{
		Tables:   []int{table},
		Statuses: statuses,
	})
}

// UpdateByID applies patch to one order and returns the updated row.
func (r *PostgresOrderRepository) UpdateByID(
	ctx context.Context,
	id uuid.UUID,
	patch order.Patch,
) (order.Order, error) {
	query, err := r.updateQuery(patch)
	if err != nil {
		return order.Order{}, err
	}

	sql, args, err := query.
		Where(sq.Expr("id = ?", id)).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build update query: %w", err)
	}

	result, err := scanOne(r.conn.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return order.Order{}, order.ErrNotFound
	}
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to update order: %w", err)
	}

	return result, nil
}

// UpdateManyByIDs applies patch to all orders in ids with a single statement.
func (r *PostgresOrderRepository) UpdateManyByIDs(
	ctx context.Context,
	ids []uuid.UUID,
	patch order.Patch,
) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, err := r.updateQuery(patch)
	if err != nil {
		return 0, err
	}

	sql, args, err := query.Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update orders: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ListAll returns the orders matching filter, newest first.
func (r *PostgresOrderRepository) ListAll(
	ctx context.Context,
	filter order.QueryOrdersModel,
) ([]order.Order, error) {
	query := r.sb.
		Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC", "id DESC")

	if len(filter.Tables) > 0 {
		query = query.Where(sq.Eq{"table_number": filter.Tables})
	}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = s.String()
		}
		query = query.Where(sq.Eq{"status": statuses})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	result := []order.Order{}
	for rows.Next() {
		model, err := scanOne(rows)
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

func (r *PostgresOrderRepository) updateQuery(patch order.Patch) (sq.UpdateBuilder, error) {
	updatedAt := patch.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	query := r.sb.Update("orders").Set("updated_at", updatedAt)

	if patch.Items != nil {
		raw, err := json.Marshal(patch.Items)
		if err != nil {
			return query, fmt.Errorf("failed to encode items: %w", err)
		}
		query = query.Set("items", raw)
	}

	if patch.Subtotal != nil {
		query = query.Set("subtotal", sq.Expr("?::numeric", patch.Subtotal.String()))
	}

	if patch.Status != nil {
		query = query.Set("status", patch.Status.String())
	}

	return query, nil
}

func joinColumns() string {
	return strings.Join(orderColumns, ", ")
}

func scanOne(row pgx.Row) (order.Order, error) {
	var dal OrderDal
	err := row.Scan(
		&dal.Id,
		&dal.TableNumber,
		&dal.Items,
		&dal.Status,
		&dal.Subtotal,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return order.Order{}, err
	}

	model, err := dal.ToModel()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to convert order dal to model: %w", err)
	}

	return model, nil
}
