package order

import (
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
)

// ShippingStatus is tracked independently of Status and never gates it.
// The zero value is ShippingPending, the default of a new order.
type ShippingStatus int

const (
	ShippingPending ShippingStatus = iota
	ShippingComplete
	ShippingCancel
)

var shippingStatusNames = map[ShippingStatus]string{
	ShippingPending:  "PENDING",
	ShippingComplete: "COMPLETE",
	ShippingCancel:   "CANCEL",
}

func ParseShippingStatus(s string) (ShippingStatus, error) {
	for status, name := range shippingStatusNames {
		if strings.EqualFold(name, s) {
			return status, nil
		}
	}
	return ShippingPending, errs.NewValueIsInvalidErrorWithCause(
		"shipping_status",
		fmt.Errorf("%q is not a valid shipping status", s),
	)
}

func (s ShippingStatus) Validate() error {
	if _, ok := shippingStatusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("shipping_status", fmt.Errorf("%d is not a valid shipping status", s))
	}
	return nil
}

func (s ShippingStatus) String() string {
	if name, ok := shippingStatusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}
