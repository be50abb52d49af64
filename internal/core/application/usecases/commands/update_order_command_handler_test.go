package commands_test

import (
	"errors"
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateOrderCommandHandler_Handle_ReplacesItemsAndRecomputesTotal(t *testing.T) {
	ctx := t.Context()
	o := newStoredOrder(t)
	kept := o.Items()[0]
	dropped := o.Items()[1]

	payment := "transfer"
	phone := "777"
	cmd, err := commands.NewUpdateOrderCommand(o.ID(), &payment, order.InformationPatch{Phone: &phone},
		[]order.ItemQuantity{{ItemID: kept.ID(), Quantity: 3}})
	require.NoError(t, err)

	factory, uow, repo := expectLockedOrder(ctx, o)
	repo.On("Update", ctx, o).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()

	h := commands.NewUpdateOrderCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, "transfer", updated.Payment())
	assert.Equal(t, "777", updated.Receiver().Phone())
	assert.Equal(t, "Ann", updated.Receiver().Name())
	assert.Equal(t, 3, kept.Quantity())
	assert.True(t, dropped.IsCanceled())
	assert.True(t, dropped.IsDeleted())
	assert.Equal(t, "30.00", updated.TotalPrice().String())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_WithoutItemsKeepsItems(t *testing.T) {
	ctx := t.Context()
	o := newStoredOrder(t)
	payment := "cash"
	cmd, err := commands.NewUpdateOrderCommand(o.ID(), &payment, order.InformationPatch{}, nil)
	require.NoError(t, err)

	factory, uow, repo := expectLockedOrder(ctx, o)
	repo.On("Update", ctx, o).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()

	h := commands.NewUpdateOrderCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Len(t, updated.ActiveItems(), 2)
	assert.Equal(t, "20.00", updated.TotalPrice().String())
}

func TestUpdateOrderCommandHandler_Handle_ForeignItemLeavesOrderUntouched(t *testing.T) {
	ctx := t.Context()
	o := newStoredOrder(t)
	cmd, err := commands.NewUpdateOrderCommand(o.ID(), nil, order.InformationPatch{},
		[]order.ItemQuantity{{ItemID: kernel.NewUUID(), Quantity: 1}})
	require.NoError(t, err)

	factory, uow, repo := expectLockedOrder(ctx, o)

	h := commands.NewUpdateOrderCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	assert.Len(t, o.ActiveItems(), 2)
	assert.Equal(t, "20.00", o.TotalPrice().String())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_ZeroQuantityIsValidationError(t *testing.T) {
	ctx := t.Context()
	o := newStoredOrder(t)
	cmd, err := commands.NewUpdateOrderCommand(o.ID(), nil, order.InformationPatch{},
		[]order.ItemQuantity{{ItemID: o.Items()[0].ID(), Quantity: 0}})
	require.NoError(t, err)

	factory, _, repo := expectLockedOrder(ctx, o)

	h := commands.NewUpdateOrderCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateOrderCommandHandler_Handle_UnknownOrder(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewUpdateOrderCommand(id, nil, order.InformationPatch{}, nil)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
	assert.False(t, errs.IsPersistence(err))
}

func TestUpdateOrderCommandHandler_Handle_UpdateErrorIsPersistenceError(t *testing.T) {
	ctx := t.Context()
	o := newStoredOrder(t)
	payment := "cash"
	cmd, err := commands.NewUpdateOrderCommand(o.ID(), &payment, order.InformationPatch{}, nil)
	require.NoError(t, err)

	dbErr := errors.New("deadlock detected")
	factory, uow, repo := expectLockedOrder(ctx, o)
	repo.On("Update", ctx, o).Return(dbErr).Once()

	h := commands.NewUpdateOrderCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, dbErr)
	assert.True(t, errs.IsPersistence(err))
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
