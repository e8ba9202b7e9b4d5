package customers

import "github.com/shopspring/decimal"

// CreateInput is the payload for POST /customers.
type CreateInput struct {
	Type          CustomerType    `json:"type" validate:"omitempty,oneof=individual corporate"`
	Name          string          `json:"name" validate:"required,max=200"`
	ContactPerson string          `json:"contactPerson" validate:"max=200"`
	Phone         string          `json:"phone" validate:"max=50"`
	Email         string          `json:"email" validate:"omitempty,email"`
	City          string          `json:"city" validate:"max=100"`
	District      string          `json:"district" validate:"max=100"`
	Address       string          `json:"address" validate:"max=500"`
	TaxOffice     string          `json:"taxOffice" validate:"max=100"`
	TaxNumber     string          `json:"taxNumber" validate:"max=50"`
	NationalID    string          `json:"nationalId" validate:"max=20"`
	Balance       decimal.Decimal `json:"balance"`
}

// UpdateInput is the payload for PATCH /customers/{id}. The balance is only
// moved by sales and payments.
type UpdateInput struct {
	Type          *CustomerType `json:"type" validate:"omitempty,oneof=individual corporate"`
	Name          *string       `json:"name" validate:"omitempty,min=1,max=200"`
	ContactPerson *string       `json:"contactPerson" validate:"omitempty,max=200"`
	Phone         *string       `json:"phone" validate:"omitempty,max=50"`
	Email         *string       `json:"email" validate:"omitempty,email"`
	City          *string       `json:"city" validate:"omitempty,max=100"`
	District      *string       `json:"district" validate:"omitempty,max=100"`
	Address       *string       `json:"address" validate:"omitempty,max=500"`
	TaxOffice     *string       `json:"taxOffice" validate:"omitempty,max=100"`
	TaxNumber     *string       `json:"taxNumber" validate:"omitempty,max=50"`
	NationalID    *string       `json:"nationalId" validate:"omitempty,max=20"`
}

func (in UpdateInput) apply(c Customer) Customer {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	if in.Type != nil {
		c.Type = *in.Type
	}
	set(&c.Name, in.Name)
	set(&c.ContactPerson, in.ContactPerson)
	set(&c.Phone, in.Phone)
	set(&c.Email, in.Email)
	set(&c.City, in.City)
	set(&c.District, in.District)
	set(&c.Address, in.Address)
	set(&c.TaxOffice, in.TaxOffice)
	set(&c.TaxNumber, in.TaxNumber)
	set(&c.NationalID, in.NationalID)
	return c
}
