package order_test

import (
	"testing"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var placedAt = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func newItem(t *testing.T, sku, price string, quantity int) *order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), "Product "+sku, kernel.MustMoney(price), "", sku, quantity)
	require.NoError(t, err)
	return item
}

func newInformation(t *testing.T, infoType order.InformationType) order.Information {
	t.Helper()
	info, err := order.NewInformation(infoType, "Jane Roe", "1 Harbour Rd", "+1 555 0100", "jane@example.com")
	require.NoError(t, err)
	return info
}

func newOrder(t *testing.T, items ...*order.Item) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		"SN-0001",
		"credit_card",
		items,
		newInformation(t, order.ReceiverInformation),
		newInformation(t, order.BuyerInformation),
		nil,
		placedAt,
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("single line order", func(t *testing.T) {
		item := newItem(t, "B-1", "20", 1)
		o := newOrder(t, item)

		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, order.ShippingPending, o.ShippingStatus())
		assert.Equal(t, "20.00", o.TotalPrice().String())
		require.Len(t, o.Items(), 1)
		assert.Equal(t, order.ItemNormal, o.Items()[0].Status())
		assert.Equal(t, order.DefaultSpec, o.Items()[0].Spec())
		assert.Equal(t, order.ReceiverInformation, o.Receiver().Type())
		assert.Equal(t, order.BuyerInformation, o.Buyer().Type())
		assert.Nil(t, o.UserID())
		assert.False(t, o.IsDeleted())

		events := o.DomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, order.EventOrderCreated, events[0].Name)
		assert.True(t, events[0].AggregateID.IsEqual(o.ID()))
	})

	t.Run("total sums line subtotals", func(t *testing.T) {
		o := newOrder(t, newItem(t, "A", "9.99", 3), newItem(t, "B", "0.02", 5))
		assert.Equal(t, "30.07", o.TotalPrice().String())
	})

	t.Run("stamps user when present", func(t *testing.T) {
		user := "user-17"
		o, err := order.NewOrder(kernel.NewUUID(), "SN-2", "cash", []*order.Item{newItem(t, "A", "1", 1)},
			newInformation(t, order.ReceiverInformation), newInformation(t, order.BuyerInformation), &user, placedAt)
		require.NoError(t, err)
		require.NotNil(t, o.UserID())
		assert.Equal(t, "user-17", *o.UserID())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		receiver := newInformation(t, order.ReceiverInformation)
		buyer := newInformation(t, order.BuyerInformation)
		items := []*order.Item{newItem(t, "A", "1", 1)}

		_, err := order.NewOrder(kernel.NewUUID(), "SN", "cash", nil, receiver, buyer, nil, placedAt)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = order.NewOrder(kernel.NewUUID(), "", "cash", items, receiver, buyer, nil, placedAt)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = order.NewOrder(kernel.NewUUID(), "SN", "cash", items, buyer, receiver, nil, placedAt)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = order.NewOrder(kernel.UUID{}, "SN", "cash", items, receiver, buyer, nil, placedAt)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestOrder_ReplaceItems(t *testing.T) {
	t.Run("keeps listed items and cancels the rest", func(t *testing.T) {
		item1 := newItem(t, "A", "10", 1)
		item2 := newItem(t, "B", "7.50", 2)
		o := newOrder(t, item1, item2)
		at := placedAt.Add(time.Hour)

		err := o.ReplaceItems([]order.ItemQuantity{{ItemID: item1.ID(), Quantity: 2}}, at)
		require.NoError(t, err)

		assert.Equal(t, 2, item1.Quantity())
		assert.True(t, item1.IsActive())
		assert.Equal(t, order.ItemCanceled, item2.Status())
		require.NotNil(t, item2.DeletedAt())
		assert.Equal(t, at, *item2.DeletedAt())
		assert.Equal(t, "20.00", o.TotalPrice().String())
		assert.Len(t, o.ActiveItems(), 1)
	})

	t.Run("foreign item is not found and nothing changes", func(t *testing.T) {
		item1 := newItem(t, "A", "10", 1)
		item2 := newItem(t, "B", "5", 1)
		o := newOrder(t, item1, item2)

		err := o.ReplaceItems([]order.ItemQuantity{
			{ItemID: item1.ID(), Quantity: 4},
			{ItemID: kernel.NewUUID(), Quantity: 1},
		}, placedAt)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Equal(t, 1, item1.Quantity())
		assert.True(t, item2.IsActive())
		assert.Equal(t, "15.00", o.TotalPrice().String())
	})

	t.Run("quantity below one is invalid", func(t *testing.T) {
		item := newItem(t, "A", "10", 1)
		o := newOrder(t, item)

		err := o.ReplaceItems([]order.ItemQuantity{{ItemID: item.ID(), Quantity: 0}}, placedAt)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, 1, item.Quantity())
	})

	t.Run("canceled item cannot be revived", func(t *testing.T) {
		item1 := newItem(t, "A", "10", 1)
		item2 := newItem(t, "B", "10", 1)
		o := newOrder(t, item1, item2)
		require.NoError(t, o.CancelItem(item2.ID(), placedAt))

		err := o.ReplaceItems([]order.ItemQuantity{{ItemID: item2.ID(), Quantity: 1}}, placedAt)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("empty and duplicate lists are invalid", func(t *testing.T) {
		item := newItem(t, "A", "10", 1)
		o := newOrder(t, item)

		require.ErrorIs(t, o.ReplaceItems(nil, placedAt), errs.ErrValueIsRequired)
		err := o.ReplaceItems([]order.ItemQuantity{
			{ItemID: item.ID(), Quantity: 1},
			{ItemID: item.ID(), Quantity: 2},
		}, placedAt)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_CancelItem(t *testing.T) {
	t.Run("only item brings total to zero", func(t *testing.T) {
		item := newItem(t, "A", "12.34", 2)
		o := newOrder(t, item)

		require.NoError(t, o.CancelItem(item.ID(), placedAt))

		assert.True(t, o.TotalPrice().IsZero())
		assert.Equal(t, order.ItemCanceled, item.Status())
		assert.True(t, item.IsDeleted())
	})

	t.Run("is idempotent", func(t *testing.T) {
		item1 := newItem(t, "A", "3", 1)
		item2 := newItem(t, "B", "4", 1)
		o := newOrder(t, item1, item2)
		o.ClearDomainEvents()

		require.NoError(t, o.CancelItem(item1.ID(), placedAt))
		firstDeletedAt := *item1.DeletedAt()
		total := o.TotalPrice()

		require.NoError(t, o.CancelItem(item1.ID(), placedAt.Add(time.Minute)))

		assert.Equal(t, firstDeletedAt, *item1.DeletedAt())
		assert.True(t, total.IsEqual(o.TotalPrice()))
		assert.Len(t, o.DomainEvents(), 1)
	})

	t.Run("unknown item", func(t *testing.T) {
		o := newOrder(t, newItem(t, "A", "1", 1))
		require.ErrorIs(t, o.CancelItem(kernel.NewUUID(), placedAt), errs.ErrObjectNotFound)
	})
}

func TestOrder_StatusChanges(t *testing.T) {
	o := newOrder(t, newItem(t, "A", "1", 1))

	require.NoError(t, o.Complete(placedAt))
	assert.Equal(t, order.Completed, o.Status())

	err := o.Cancel(placedAt)
	require.ErrorIs(t, err, errs.ErrStatusTransitionIsInvalid)
	assert.Equal(t, order.Completed, o.Status())

	// shipping status is independent of the lifecycle
	require.NoError(t, o.ChangeShippingStatus(order.ShippingCancel, placedAt))
	assert.Equal(t, order.ShippingCancel, o.ShippingStatus())
	require.ErrorIs(t, o.ChangeShippingStatus(order.ShippingStatus(9), placedAt), errs.ErrValueIsInvalid)
}

func TestOrder_AddPaymentHistory(t *testing.T) {
	o := newOrder(t, newItem(t, "A", "50", 1))
	total := o.TotalPrice()

	entry, err := o.AddPaymentHistory(kernel.NewUUID(), kernel.MustMoney("50"), "paypal", "captured", placedAt)
	require.NoError(t, err)

	assert.True(t, entry.OrderID().IsEqual(o.ID()))
	assert.Equal(t, "captured", entry.Comment())
	assert.Len(t, o.PaymentHistories(), 1)
	assert.Equal(t, order.Pending, o.Status())
	assert.True(t, total.IsEqual(o.TotalPrice()))

	_, err = o.AddPaymentHistory(kernel.NewUUID(), kernel.MustMoney("1"), " ", "", placedAt)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestOrder_UpdateReceiverInformation(t *testing.T) {
	o := newOrder(t, newItem(t, "A", "1", 1))
	phone := "+1 555 0199"

	require.NoError(t, o.UpdateReceiverInformation(order.InformationPatch{Phone: &phone}, placedAt))

	assert.Equal(t, "+1 555 0199", o.Receiver().Phone())
	assert.Equal(t, "Jane Roe", o.Receiver().Name())
	assert.Equal(t, "1 Harbour Rd", o.Receiver().Address())
	assert.Equal(t, "+1 555 0100", o.Buyer().Phone())
}

func TestOrder_DeleteAndRestore(t *testing.T) {
	kept := newItem(t, "A", "10", 1)
	canceled := newItem(t, "B", "5", 1)
	o := newOrder(t, kept, canceled)
	require.NoError(t, o.CancelItem(canceled.ID(), placedAt))
	canceledAt := *canceled.DeletedAt()

	deletedAt := placedAt.Add(24 * time.Hour)
	require.NoError(t, o.Delete(deletedAt))

	assert.True(t, o.IsDeleted())
	assert.True(t, kept.IsDeleted())
	assert.Equal(t, order.ItemNormal, kept.Status())
	assert.Equal(t, canceledAt, *canceled.DeletedAt())
	assert.Equal(t, "10.00", o.TotalPrice().String())

	require.ErrorIs(t, o.Delete(deletedAt), errs.ErrObjectNotFound)
	require.ErrorIs(t, o.ChangePayment("cash", deletedAt), errs.ErrObjectNotFound)

	require.NoError(t, o.Restore(deletedAt.Add(time.Hour)))
	assert.False(t, o.IsDeleted())
	assert.True(t, kept.IsActive())
	assert.True(t, canceled.IsDeleted())
	require.ErrorIs(t, o.Restore(deletedAt), errs.ErrValueIsInvalid)
}

func TestRestoreOrder(t *testing.T) {
	deletedAt := placedAt.Add(time.Hour)
	active, err := order.RestoreItem(kernel.NewUUID(), "Lamp", kernel.MustMoney("30"), "blue", "L-1", 2, order.ItemNormal, nil)
	require.NoError(t, err)
	gone, err := order.RestoreItem(kernel.NewUUID(), "Cable", kernel.MustMoney("4"), "", "C-1", 1, order.ItemCanceled, &deletedAt)
	require.NoError(t, err)

	o, err := order.RestoreOrder(order.State{
		ID:             kernel.NewUUID(),
		SerialNumber:   "SN-9",
		Payment:        "card",
		Status:         order.Completed,
		ShippingStatus: order.ShippingComplete,
		Items:          []*order.Item{active, gone},
		Receiver:       newInformation(t, order.ReceiverInformation),
		Buyer:          newInformation(t, order.BuyerInformation),
		CreatedAt:      placedAt,
		UpdatedAt:      deletedAt,
	})
	require.NoError(t, err)

	assert.Equal(t, "60.00", o.TotalPrice().String())
	assert.Equal(t, order.Completed, o.Status())
	assert.Empty(t, o.DomainEvents())

	_, err = order.RestoreOrder(order.State{ID: kernel.NewUUID(), SerialNumber: "SN", Payment: "card"})
	require.Error(t, err)
}

func TestOrder_ZeroValueIsNotConstructed(t *testing.T) {
	var o order.Order
	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)

	var item order.Item
	require.ErrorIs(t, item.Validate(), order.ErrItemIsNotConstructed)
}
