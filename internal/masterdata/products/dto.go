package products

import "github.com/shopspring/decimal"

// CreateInput is the payload for POST /products.
type CreateInput struct {
	Name          string          `json:"name" validate:"required,max=200"`
	SKU           string          `json:"sku" validate:"required,max=64"`
	Brand         string          `json:"brand" validate:"max=100"`
	Category      string          `json:"category" validate:"max=100"`
	Size          string          `json:"size" validate:"max=50"`
	Stock         int             `json:"stock" validate:"gte=0"`
	CriticalLevel *int            `json:"criticalLevel" validate:"omitempty,gte=0"`
	Price         decimal.Decimal `json:"price"`
	ImageURL      string          `json:"imageUrl" validate:"omitempty,max=500"`
}

// UpdateInput is the payload for PATCH /products/{id}; nil fields are kept.
type UpdateInput struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	SKU           *string          `json:"sku" validate:"omitempty,min=1,max=64"`
	Brand         *string          `json:"brand" validate:"omitempty,max=100"`
	Category      *string          `json:"category" validate:"omitempty,max=100"`
	Size          *string          `json:"size" validate:"omitempty,max=50"`
	Stock         *int             `json:"stock" validate:"omitempty,gte=0"`
	CriticalLevel *int             `json:"criticalLevel" validate:"omitempty,gte=0"`
	Price         *decimal.Decimal `json:"price"`
	ImageURL      *string          `json:"imageUrl" validate:"omitempty,max=500"`
}

func (in UpdateInput) apply(p Product) Product {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.SKU != nil {
		p.SKU = *in.SKU
	}
	if in.Brand != nil {
		p.Brand = *in.Brand
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Size != nil {
		p.Size = *in.Size
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.CriticalLevel != nil {
		p.CriticalLevel = *in.CriticalLevel
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}
	return p
}
