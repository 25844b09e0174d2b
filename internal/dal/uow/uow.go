package uow

import (
	"context"
	"errors"

	"github.com/corray333/backend-labs/restaurant/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/restaurant/internal/dal/postgres"
	orderrepo "github.com/corray333/backend-labs/restaurant/internal/dal/repositories/order/postgres"
	"github.com/jackc/pgx/v5"
)

type unitOfWork struct {
	client    *postgres.Client
	tx        pgx.Tx
	orderRepo iorderrepo.IOrderRepository
}

// NewUnitOfWork creates a unit of work over the pool. Until Begin is called
// its repositories run outside any transaction.
func NewUnitOfWork(client *postgres.Client) *unitOfWork {
	return &unitOfWork{
		client:    client,
		orderRepo: orderrepo.NewPostgresOrderRepository(client.Pool()),
	}
}

func (u *unitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.client.Pool().Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.orderRepo = orderrepo.NewPostgresOrderRepository(tx)

	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Commit(ctx)
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	err := u.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}

	return err
}
