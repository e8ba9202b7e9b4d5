package orders

import (
	"time"

	"github.com/carpetdist/carpet-erp/internal/shared"
)

// CreateSaleInput is the payload for POST /sales.
type CreateSaleInput struct {
	CustomerID *int64      `json:"customerId" validate:"omitempty,gt=0"`
	Items      []LineInput `json:"items" validate:"required,min=1,dive"`
	Status     Status      `json:"status"`
	Date       *time.Time  `json:"date"`
}

// LineInput requests quantity units of a product.
type LineInput struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gte=1"`
}

// UpdateStatusInput is the payload for PATCH /sales/{id}/status.
type UpdateStatusInput struct {
	Status Status `json:"status" validate:"required"`
}

// ListFilters narrows sale listings.
type ListFilters struct {
	Page   int
	Limit  int
	Search string
	Status Status
}

// Page is a page of sales with its pagination metadata.
type Page struct {
	Data []Sale `json:"data"`
	shared.Pagination
}
