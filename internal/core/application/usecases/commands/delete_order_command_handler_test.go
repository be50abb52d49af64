package commands_test

import (
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteOrderCommandHandler_Handle_SoftDeletesOrderAndItems(t *testing.T) {
	ctx := t.Context()
	o := newStoredOrder(t)
	cmd, err := commands.NewDeleteOrderCommand(o.ID())
	require.NoError(t, err)

	factory, uow, repo := expectLockedOrder(ctx, o)
	repo.On("Update", ctx, o).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()

	h := commands.NewDeleteOrderCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.True(t, o.IsDeleted())
	for _, item := range o.Items() {
		assert.True(t, item.IsDeleted())
	}
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDeleteOrderCommandHandler_Handle_AlreadyDeletedOrderIsNotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewDeleteOrderCommand(id)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("GetForUpdate", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestDeleteOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	o := newStoredOrder(t)
	cmd, err := commands.NewDeleteOrderCommand(o.ID())
	require.NoError(t, err)

	factory, uow, repo := expectLockedOrder(ctx, o)
	repo.On("Update", ctx, o).Return(nil).Once()
	uow.On("Commit", ctx).Return(assert.AnError).Once()

	h := commands.NewDeleteOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, assert.AnError)
	assert.True(t, errs.IsPersistence(err))
}
