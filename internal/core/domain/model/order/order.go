package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order is the aggregate root of the ordering domain. It owns its items,
// the receiver and buyer contact records and the payment history.
//
// Invariants:
//   - total price equals the sum of price × quantity over items that are not CANCELED
//   - a new order has at least one item and starts PENDING with shipping PENDING
//   - no status transition leaves COMPLETED or CANCELED
//   - a soft-deleted order rejects every mutation except Restore
//
// Each mutation takes the time it happens at and records a domain event that
// the unit of work persists to the outbox.
type Order struct {
	id               kernel.UUID
	serialNumber     string
	payment          string
	status           Status
	shippingStatus   ShippingStatus
	totalPrice       kernel.Money
	userID           *string
	items            []*Item
	receiver         Information
	buyer            Information
	paymentHistories []*PaymentHistory
	createdAt        time.Time
	updatedAt        time.Time
	deletedAt        *time.Time

	events []kernel.DomainEvent

	isConstructed bool
}

// ItemQuantity is one entry of an item replacement request.
type ItemQuantity struct {
	ItemID   kernel.UUID
	Quantity int
}

// NewOrder places a PENDING order. The serial number comes from the caller's
// resolver; userID is stamped only when an identity is present.
//
// Example:
//
//	item, _ := order.NewItem(kernel.NewUUID(), "Book", kernel.MustMoney("20"), "", "B-1", 1)
//	receiver, _ := order.NewInformation(order.ReceiverInformation, "Ann", "Main St 1", "555", "ann@example.com")
//	buyer, _ := order.NewInformation(order.BuyerInformation, "Bob", "", "556", "bob@example.com")
//	o, err := order.NewOrder(kernel.NewUUID(), "20250101120000AB12CD34", "card",
//	    []*order.Item{item}, receiver, buyer, nil, time.Now())
func NewOrder(
	id kernel.UUID,
	serialNumber string,
	payment string,
	items []*Item,
	receiver Information,
	buyer Information,
	userID *string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:         Pending,
		shippingStatus: ShippingPending,
		createdAt:      createdAt.UTC(),
		updatedAt:      createdAt.UTC(),
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setSerialNumber(serialNumber),
		o.setPayment(payment),
		o.setItems(items),
		o.setInformation(ReceiverInformation, receiver),
		o.setInformation(BuyerInformation, buyer),
		o.setUserID(userID),
	); err != nil {
		return nil, err
	}

	o.recalculateTotal()
	o.record(EventOrderCreated, o.createdAt, map[string]any{
		"sn":          o.serialNumber,
		"payment":     o.payment,
		"total_price": o.totalPrice.String(),
		"items":       len(o.items),
	})
	return o, nil
}

// State is the persisted form of an order handed to RestoreOrder.
type State struct {
	ID               kernel.UUID
	SerialNumber     string
	Payment          string
	Status           Status
	ShippingStatus   ShippingStatus
	UserID           *string
	Items            []*Item
	Receiver         Information
	Buyer            Information
	PaymentHistories []*PaymentHistory
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

// RestoreOrder rebuilds an order from storage without recording events.
// The total price is recomputed from the items rather than trusted.
func RestoreOrder(state State) (*Order, error) {
	o := &Order{
		createdAt:     state.CreatedAt.UTC(),
		updatedAt:     state.UpdatedAt.UTC(),
		deletedAt:     copyTime(state.DeletedAt),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(state.ID),
		o.setSerialNumber(state.SerialNumber),
		o.setPayment(state.Payment),
		o.setStatus(state.Status),
		o.setShippingStatus(state.ShippingStatus),
		o.restoreItems(state.Items),
		o.setInformation(ReceiverInformation, state.Receiver),
		o.setInformation(BuyerInformation, state.Buyer),
		o.setUserID(state.UserID),
		o.restorePaymentHistories(state.PaymentHistories),
	); err != nil {
		return nil, err
	}

	o.recalculateTotal()
	return o, nil
}

// Validate ensures the Order was built by one of its constructors.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                { return o.id }
func (o *Order) SerialNumber() string           { return o.serialNumber }
func (o *Order) Payment() string                { return o.payment }
func (o *Order) Status() Status                 { return o.status }
func (o *Order) ShippingStatus() ShippingStatus { return o.shippingStatus }
func (o *Order) TotalPrice() kernel.Money       { return o.totalPrice }
func (o *Order) Receiver() Information          { return o.receiver }
func (o *Order) Buyer() Information             { return o.buyer }
func (o *Order) CreatedAt() time.Time           { return o.createdAt }
func (o *Order) UpdatedAt() time.Time           { return o.updatedAt }
func (o *Order) DeletedAt() *time.Time          { return copyTime(o.deletedAt) }
func (o *Order) IsDeleted() bool                { return o.deletedAt != nil }

// UserID returns the owning user, or nil for anonymous orders.
func (o *Order) UserID() *string {
	if o.userID == nil {
		return nil
	}
	id := *o.userID
	return &id
}

// Items returns every item, canceled and soft-deleted ones included, in
// placement order.
func (o *Order) Items() []*Item {
	items := make([]*Item, len(o.items))
	copy(items, o.items)
	return items
}

// ActiveItems returns the items that are neither canceled nor soft-deleted.
func (o *Order) ActiveItems() []*Item {
	items := make([]*Item, 0, len(o.items))
	for _, item := range o.items {
		if item.IsActive() {
			items = append(items, item)
		}
	}
	return items
}

// Item looks an item up by id.
func (o *Order) Item(id kernel.UUID) (*Item, bool) {
	for _, item := range o.items {
		if item.id.IsEqual(id) {
			return item, true
		}
	}
	return nil, false
}

func (o *Order) PaymentHistories() []*PaymentHistory {
	entries := make([]*PaymentHistory, len(o.paymentHistories))
	copy(entries, o.paymentHistories)
	return entries
}

// ChangePayment replaces the payment method label.
func (o *Order) ChangePayment(payment string, at time.Time) error {
	if err := o.ensureNotDeleted(); err != nil {
		return err
	}
	if err := o.setPayment(payment); err != nil {
		return err
	}
	o.touch(at)
	o.record(EventOrderUpdated, at, map[string]any{"payment": o.payment})
	return nil
}

// UpdateReceiverInformation merges patch into the receiver record.
func (o *Order) UpdateReceiverInformation(patch InformationPatch, at time.Time) error {
	if err := o.ensureNotDeleted(); err != nil {
		return err
	}
	if patch.IsEmpty() {
		return nil
	}
	o.receiver = o.receiver.Merge(patch)
	o.touch(at)
	o.record(EventOrderUpdated, at, map[string]any{"receiver_information": true})
	return nil
}

// ReplaceItems sets the quantities of the listed items and cancels every
// other active item. The whole request is validated before anything changes:
// an id that is not an active item of this order is a not-found error, a
// quantity below 1 or a repeated id is a validation error.
func (o *Order) ReplaceItems(lines []ItemQuantity, at time.Time) error {
	if err := o.ensureNotDeleted(); err != nil {
		return err
	}
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	targets := make(map[kernel.UUID]*Item, len(lines))
	for _, line := range lines {
		if _, dup := targets[line.ItemID]; dup {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("item %s is listed more than once", line.ItemID))
		}
		item, ok := o.Item(line.ItemID)
		if !ok || !item.IsActive() {
			return errs.NewObjectNotFoundError("item", line.ItemID.String())
		}
		if line.Quantity < 1 {
			return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", line.Quantity))
		}
		targets[line.ItemID] = item
	}

	canceled := make([]string, 0)
	for _, line := range lines {
		if err := targets[line.ItemID].changeQuantity(line.Quantity); err != nil {
			return err
		}
	}
	for _, item := range o.items {
		if _, keep := targets[item.id]; keep || !item.IsActive() {
			continue
		}
		item.cancel(at)
		canceled = append(canceled, item.id.String())
	}

	o.recalculateTotal()
	o.touch(at)
	o.record(EventOrderUpdated, at, map[string]any{
		"items":          len(lines),
		"canceled_items": canceled,
		"total_price":    o.totalPrice.String(),
	})
	return nil
}

// CancelItem cancels and soft-deletes one item. Canceling an item that is
// already canceled succeeds without changes.
func (o *Order) CancelItem(itemID kernel.UUID, at time.Time) error {
	if err := o.ensureNotDeleted(); err != nil {
		return err
	}
	item, ok := o.Item(itemID)
	if !ok {
		return errs.NewObjectNotFoundError("item", itemID.String())
	}
	if !item.cancel(at) {
		return nil
	}

	o.recalculateTotal()
	o.touch(at)
	o.record(EventOrderItemCanceled, at, map[string]any{
		"item_id":     itemID.String(),
		"total_price": o.totalPrice.String(),
	})
	return nil
}

// AddPaymentHistory appends a ledger entry. Status and total are untouched.
func (o *Order) AddPaymentHistory(
	id kernel.UUID,
	price kernel.Money,
	payment, comment string,
	at time.Time,
) (*PaymentHistory, error) {
	if err := o.ensureNotDeleted(); err != nil {
		return nil, err
	}
	entry, err := NewPaymentHistory(id, o.id, price, payment, comment, at)
	if err != nil {
		return nil, err
	}

	o.paymentHistories = append(o.paymentHistories, entry)
	o.record(EventPaymentHistoryAdded, at, map[string]any{
		"payment_history_id": entry.id.String(),
		"price":              entry.price.String(),
		"payment":            entry.payment,
	})
	return entry, nil
}

// ChangeStatus drives the lifecycle state machine.
func (o *Order) ChangeStatus(target Status, at time.Time) error {
	if err := o.ensureNotDeleted(); err != nil {
		return err
	}
	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	previous := o.status
	o.status = next
	o.touch(at)
	o.record(EventOrderStatusChanged, at, map[string]any{
		"from": previous.String(),
		"to":   next.String(),
	})
	return nil
}

func (o *Order) Complete(at time.Time) error {
	return o.ChangeStatus(Completed, at)
}

func (o *Order) Cancel(at time.Time) error {
	return o.ChangeStatus(Canceled, at)
}

// ChangeShippingStatus sets any valid shipping status.
func (o *Order) ChangeShippingStatus(target ShippingStatus, at time.Time) error {
	if err := o.ensureNotDeleted(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}
	if target == o.shippingStatus {
		return nil
	}

	previous := o.shippingStatus
	o.shippingStatus = target
	o.touch(at)
	o.record(EventOrderShippingStatusChanged, at, map[string]any{
		"from": previous.String(),
		"to":   target.String(),
	})
	return nil
}

// Delete soft-deletes the order and every active item with the same marker.
// Canceled items keep their own marker.
func (o *Order) Delete(at time.Time) error {
	if err := o.ensureNotDeleted(); err != nil {
		return err
	}
	deletedAt := at.UTC()
	o.deletedAt = &deletedAt
	for _, item := range o.items {
		if item.IsActive() {
			item.softDelete(at)
		}
	}
	o.touch(at)
	o.record(EventOrderDeleted, at, map[string]any{"sn": o.serialNumber})
	return nil
}

// Restore unsets the deletion marker of the order and of the items removed
// together with it.
func (o *Order) Restore(at time.Time) error {
	if o.deletedAt == nil {
		return errs.NewValueIsInvalidErrorWithCause("order", errors.New("order is not deleted"))
	}
	o.deletedAt = nil
	for _, item := range o.items {
		if item.status == ItemNormal && item.deletedAt != nil {
			item.restore()
		}
	}
	o.touch(at)
	o.record(EventOrderRestored, at, map[string]any{"sn": o.serialNumber})
	return nil
}

// DomainEvents returns the events recorded since the last ClearDomainEvents.
func (o *Order) DomainEvents() []kernel.DomainEvent {
	events := make([]kernel.DomainEvent, len(o.events))
	copy(events, o.events)
	return events
}

func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) recalculateTotal() {
	total := kernel.ZeroMoney()
	for _, item := range o.items {
		if item.status != ItemCanceled {
			total = total.Add(item.Subtotal())
		}
	}
	o.totalPrice = total
}

func (o *Order) ensureNotDeleted() error {
	if o.deletedAt != nil {
		return errs.NewObjectNotFoundErrorWithCause("order", o.id.String(), errors.New("order is deleted"))
	}
	return nil
}

func (o *Order) touch(at time.Time) {
	o.updatedAt = at.UTC()
}

func (o *Order) record(name string, at time.Time, payload map[string]any) {
	payload["order_id"] = o.id.String()
	o.events = append(o.events, kernel.NewDomainEvent(name, o.id, at, payload))
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setSerialNumber(sn string) error {
	sn = strings.TrimSpace(sn)
	if sn == "" {
		return errs.NewValueIsRequiredError("sn")
	}
	o.serialNumber = sn
	return nil
}

func (o *Order) setPayment(payment string) error {
	payment = strings.TrimSpace(payment)
	if payment == "" {
		return errs.NewValueIsRequiredError("payment")
	}
	o.payment = payment
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setShippingStatus(status ShippingStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.shippingStatus = status
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if !item.IsActive() {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("item %s is not active", item.id))
		}
	}
	o.items = append([]*Item(nil), items...)
	return nil
}

func (o *Order) restoreItems(items []*Item) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = append([]*Item(nil), items...)
	return nil
}

func (o *Order) restorePaymentHistories(entries []*PaymentHistory) error {
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return err
		}
	}
	o.paymentHistories = append([]*PaymentHistory(nil), entries...)
	return nil
}

func (o *Order) setInformation(role InformationType, info Information) error {
	if err := info.Validate(); err != nil {
		return err
	}
	if info.Type() != role {
		return errs.NewValueIsInvalidErrorWithCause(
			string(role)+" information",
			fmt.Errorf("got %s record", info.Type()),
		)
	}
	if role == ReceiverInformation {
		o.receiver = info
	} else {
		o.buyer = info
	}
	return nil
}

func (o *Order) setUserID(userID *string) error {
	if userID == nil {
		return nil
	}
	id := strings.TrimSpace(*userID)
	if id == "" {
		return nil
	}
	o.userID = &id
	return nil
}
