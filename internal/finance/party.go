package finance

import "fmt"

// PartyType names the kind of counterparty stored on a payment row.
type PartyType string

const (
	PartyCustomer PartyType = "customer"
	PartySupplier PartyType = "supplier"
)

// Party is the counterparty of a payment: either a CustomerParty or a
// SupplierParty. The interface is sealed.
type Party interface {
	Type() PartyType
	PartyID() int64
	party()
}

// CustomerParty references a customer by id.
type CustomerParty struct{ ID int64 }

// SupplierParty references a supplier by id.
type SupplierParty struct{ ID int64 }

func (p CustomerParty) Type() PartyType { return PartyCustomer }
func (p CustomerParty) PartyID() int64  { return p.ID }
func (CustomerParty) party()            {}

func (p SupplierParty) Type() PartyType { return PartySupplier }
func (p SupplierParty) PartyID() int64  { return p.ID }
func (SupplierParty) party()            {}

// NewParty builds the Party for a wire-level type and id.
func NewParty(kind PartyType, id int64) (Party, error) {
	switch kind {
	case PartyCustomer:
		return CustomerParty{ID: id}, nil
	case PartySupplier:
		return SupplierParty{ID: id}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidPartyType, kind)
	}
}
