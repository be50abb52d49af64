package order

// Event names written to the outbox.
const (
	EventOrderCreated               = "order.created"
	EventOrderUpdated               = "order.updated"
	EventOrderItemCanceled          = "order.item_canceled"
	EventOrderDeleted               = "order.deleted"
	EventOrderRestored              = "order.restored"
	EventOrderStatusChanged         = "order.status_changed"
	EventOrderShippingStatusChanged = "order.shipping_status_changed"
	EventPaymentHistoryAdded        = "order.payment_history_added"
)
