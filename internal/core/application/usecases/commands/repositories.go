// Package commands contains business operations that modify order state.
// Every handler follows the same pattern: validate the command, open a unit of
// work, load the aggregate with a row lock, apply domain methods, persist and
// commit. Failures roll back through a deferred Rollback.
package commands

import (
	"context"

	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OutboxRepoFactory provides access to the outbox within a transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW manages transactions for order operations. Domain events of the
	// saved orders reach the outbox on Commit.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, id)
	//   // ... mutate and Update
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OutboxUoW is used by the relay that drains the outbox.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	// OutboxUoWFactory creates new outbox unit of work instances.
	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)

// persistenceError passes domain errors through unchanged and wraps anything
// else, i.e. driver and transport failures, into a PersistenceError.
func persistenceError(operation string, err error) error {
	if err == nil || errs.IsDomain(err) {
		return err
	}
	return errs.NewPersistenceError(operation, err)
}
