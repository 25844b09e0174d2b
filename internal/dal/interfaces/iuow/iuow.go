package iuow

import (
	"context"

	"github.com/corray333/backend-labs/restaurant/internal/dal/interfaces/iorderrepo"
)

// IUnitOfWork groups order repository calls into one transaction.
// Rollback after Commit is a no-op.
type IUnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
}

// Factory creates a fresh unit of work per operation.
type Factory func() IUnitOfWork
