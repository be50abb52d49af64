package order

import (
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
)

// InformationType discriminates the two contact roles of an order.
type InformationType string

const (
	ReceiverInformation InformationType = "receiver"
	BuyerInformation    InformationType = "buyer"
)

func (t InformationType) Validate() error {
	if t != ReceiverInformation && t != BuyerInformation {
		return errs.NewValueIsInvalidErrorWithCause("information type", fmt.Errorf("%q is not a valid type", string(t)))
	}
	return nil
}

// Information is a contact record. Empty fields are tolerated: a buyer may
// leave the address blank, for instance.
type Information struct {
	infoType InformationType
	name     string
	address  string
	phone    string
	email    string
}

func NewInformation(infoType InformationType, name, address, phone, email string) (Information, error) {
	if err := infoType.Validate(); err != nil {
		return Information{}, err
	}
	return Information{
		infoType: infoType,
		name:     strings.TrimSpace(name),
		address:  strings.TrimSpace(address),
		phone:    strings.TrimSpace(phone),
		email:    strings.TrimSpace(email),
	}, nil
}

func (i Information) Type() InformationType { return i.infoType }
func (i Information) Name() string          { return i.name }
func (i Information) Address() string       { return i.address }
func (i Information) Phone() string         { return i.phone }
func (i Information) Email() string         { return i.email }

func (i Information) Validate() error {
	return i.infoType.Validate()
}

// InformationPatch carries a partial update. Nil fields are left untouched.
type InformationPatch struct {
	Name    *string
	Address *string
	Phone   *string
	Email   *string
}

func (p InformationPatch) IsEmpty() bool {
	return p.Name == nil && p.Address == nil && p.Phone == nil && p.Email == nil
}

// Merge returns a copy of i with the fields present in p applied.
func (i Information) Merge(p InformationPatch) Information {
	merged := i
	if p.Name != nil {
		merged.name = strings.TrimSpace(*p.Name)
	}
	if p.Address != nil {
		merged.address = strings.TrimSpace(*p.Address)
	}
	if p.Phone != nil {
		merged.phone = strings.TrimSpace(*p.Phone)
	}
	if p.Email != nil {
		merged.email = strings.TrimSpace(*p.Email)
	}
	return merged
}
