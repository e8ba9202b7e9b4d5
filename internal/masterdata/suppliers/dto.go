package suppliers

import "github.com/shopspring/decimal"

// CreateInput is the payload for POST /suppliers.
type CreateInput struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Type        string          `json:"type" validate:"max=50"`
	Balance     decimal.Decimal `json:"balance"`
	ContactInfo string          `json:"contactInfo" validate:"max=500"`
	Address     string          `json:"address" validate:"max=500"`
}

// UpdateInput is the payload for PATCH /suppliers/{id}. The balance is only
// moved by purchases and payments.
type UpdateInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Type        *string `json:"type" validate:"omitempty,max=50"`
	ContactInfo *string `json:"contactInfo" validate:"omitempty,max=500"`
	Address     *string `json:"address" validate:"omitempty,max=500"`
}

func (in UpdateInput) apply(s Supplier) Supplier {
	if in.Name != nil {
		s.Name = NormalizeName(*in.Name)
	}
	if in.Type != nil {
		s.Type = *in.Type
	}
	if in.ContactInfo != nil {
		s.ContactInfo = *in.ContactInfo
	}
	if in.Address != nil {
		s.Address = *in.Address
	}
	return s
}
