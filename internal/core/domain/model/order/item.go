package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// DefaultSpec labels items whose product has no variant.
const DefaultSpec = "default"

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem constructor")

// ItemStatus is the state of a single order line.
type ItemStatus int

const (
	ItemUnknown ItemStatus = iota
	ItemNormal
	ItemCanceled
)

var itemStatusNames = map[ItemStatus]string{
	ItemNormal:   "NORMAL",
	ItemCanceled: "CANCELED",
}

func (s ItemStatus) Validate() error {
	if _, ok := itemStatusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("item status", fmt.Errorf("%d is not a valid item status", s))
	}
	return nil
}

func (s ItemStatus) String() string {
	if name, ok := itemStatusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Item is an order line. Its price is the unit price frozen when the order
// was placed. Items are owned by exactly one Order and only mutated through it.
type Item struct {
	id        kernel.UUID
	name      string
	price     kernel.Money
	spec      string
	sku       string
	quantity  int
	status    ItemStatus
	deletedAt *time.Time

	isConstructed bool
}

// NewItem creates a NORMAL item. An empty spec becomes DefaultSpec.
func NewItem(id kernel.UUID, name string, price kernel.Money, spec, sku string, quantity int) (*Item, error) {
	item := &Item{
		price:         price,
		status:        ItemNormal,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setName(name),
		item.setSpec(spec),
		item.setSKU(sku),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem rebuilds an item from storage.
func RestoreItem(
	id kernel.UUID,
	name string,
	price kernel.Money,
	spec, sku string,
	quantity int,
	status ItemStatus,
	deletedAt *time.Time,
) (*Item, error) {
	item, err := NewItem(id, name, price, spec, sku, quantity)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}

	item.status = status
	item.deletedAt = copyTime(deletedAt)
	return item, nil
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID        { return i.id }
func (i *Item) Name() string           { return i.name }
func (i *Item) Price() kernel.Money    { return i.price }
func (i *Item) Spec() string           { return i.spec }
func (i *Item) SKU() string            { return i.sku }
func (i *Item) Quantity() int          { return i.quantity }
func (i *Item) Status() ItemStatus     { return i.status }
func (i *Item) DeletedAt() *time.Time  { return copyTime(i.deletedAt) }
func (i *Item) IsCanceled() bool       { return i.status == ItemCanceled }
func (i *Item) IsDeleted() bool        { return i.deletedAt != nil }
func (i *Item) Subtotal() kernel.Money { return i.price.Times(i.quantity) }

// IsActive reports whether the item still counts towards the order.
func (i *Item) IsActive() bool {
	return i.status == ItemNormal && i.deletedAt == nil
}

func (i *Item) changeQuantity(quantity int) error {
	if !i.IsActive() {
		return errs.NewObjectNotFoundErrorWithCause("item", i.id.String(), errors.New("item is canceled"))
	}
	return i.setQuantity(quantity)
}

// cancel reports whether anything changed.
func (i *Item) cancel(at time.Time) bool {
	if i.status == ItemCanceled && i.deletedAt != nil {
		return false
	}
	i.status = ItemCanceled
	if i.deletedAt == nil {
		i.softDelete(at)
	}
	return true
}

func (i *Item) softDelete(at time.Time) {
	deletedAt := at.UTC()
	i.deletedAt = &deletedAt
}

func (i *Item) restore() {
	i.deletedAt = nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *Item) setSpec(spec string) error {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		spec = DefaultSpec
	}
	i.spec = spec
	return nil
}

func (i *Item) setSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	i.sku = sku
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", quantity))
	}
	i.quantity = quantity
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
