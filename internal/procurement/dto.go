package procurement

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInput is the payload for POST /purchases.
type CreateInput struct {
	FactoryName           string      `json:"factoryName" validate:"required_without=SupplierID,max=200"`
	SupplierID            *int64      `json:"supplierId" validate:"omitempty,gt=0"`
	EstimatedDeliveryDate *time.Time  `json:"estimatedDeliveryDate"`
	Items                 []LineInput `json:"items" validate:"required,min=1,dive"`
}

// LineInput orders quantity units of a product. UnitPrice falls back to the
// cost estimator when nil.
type LineInput struct {
	ProductID int64            `json:"productId" validate:"required,gt=0"`
	Quantity  int              `json:"quantity" validate:"required,gte=1"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
}

// EditInput is the payload for PATCH /purchases/{id}.
type EditInput struct {
	FactoryName           *string     `json:"factoryName" validate:"omitempty,min=1,max=200"`
	EstimatedDeliveryDate *time.Time  `json:"estimatedDeliveryDate"`
	Items                 []ItemInput `json:"items" validate:"dive"`
}

// ItemInput changes an existing purchase line.
type ItemInput struct {
	ID        int64            `json:"id" validate:"required,gt=0"`
	Quantity  *int             `json:"quantity" validate:"omitempty,gte=1"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
}

// StatusInput is the payload for PATCH /purchases/{id}/status.
type StatusInput struct {
	Status Status `json:"status" validate:"required"`
}

// ListFilters narrows purchase listings.
type ListFilters struct {
	Status     Status
	SupplierID *int64
}
