package commands_test

import (
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelOrderItemCommandHandler_Handle_CancelsAndRecomputesTotal(t *testing.T) {
	ctx := t.Context()
	o := newStoredOrder(t)
	pen := o.Items()[1]
	cmd, err := commands.NewCancelOrderItemCommand(o.ID(), pen.ID())
	require.NoError(t, err)

	factory, uow, repo := expectLockedOrder(ctx, o)
	repo.On("Update", ctx, o).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()

	h := commands.NewCancelOrderItemCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.ItemCanceled, pen.Status())
	assert.True(t, pen.IsDeleted())
	assert.Equal(t, "10.00", o.TotalPrice().String())
	uow.AssertExpectations(t)
}

func TestCancelOrderItemCommandHandler_Handle_AlreadyCanceledIsNoop(t *testing.T) {
	ctx := t.Context()
	o := newStoredOrder(t)
	pen := o.Items()[1]
	require.NoError(t, o.CancelItem(pen.ID(), time.Now()))
	o.ClearDomainEvents()

	cmd, err := commands.NewCancelOrderItemCommand(o.ID(), pen.ID())
	require.NoError(t, err)

	factory, uow, repo := expectLockedOrder(ctx, o)

	h := commands.NewCancelOrderItemCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, "10.00", o.TotalPrice().String())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCancelOrderItemCommandHandler_Handle_ItemOfAnotherOrder(t *testing.T) {
	ctx := t.Context()
	o := newStoredOrder(t)
	cmd, err := commands.NewCancelOrderItemCommand(o.ID(), kernel.NewUUID())
	require.NoError(t, err)

	factory, _, repo := expectLockedOrder(ctx, o)

	h := commands.NewCancelOrderItemCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
