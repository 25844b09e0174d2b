package uow

import (
	"context"

	"github.com/corray333/backend-labs/restaurant/internal/dal/interfaces/iorderrepo"
)

// memoryUnitOfWork runs directly against an in-memory repository.
// Each repository call is atomic on its own; there is no multi-call isolation.
type memoryUnitOfWork struct {
	orderRepo iorderrepo.IOrderRepository
}

// NewMemoryUnitOfWork creates a unit of work over repo.
func NewMemoryUnitOfWork(repo iorderrepo.IOrderRepository) *memoryUnitOfWork {
	return &memoryUnitOfWork{orderRepo: repo}
}

func (u *memoryUnitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *memoryUnitOfWork) Begin(context.Context) error {
	return nil
}

func (u *memoryUnitOfWork) Commit(context.Context) error {
	return nil
}

func (u *memoryUnitOfWork) Rollback(context.Context) error {
	return nil
}
