package products

import (
	"fmt"

	"github.com/carpetdist/carpet-erp/internal/shared"
)

var (
	// ErrNotFound indicates the product does not exist.
	ErrNotFound = fmt.Errorf("products: product %w", shared.ErrNotFound)
	// ErrDuplicateSKU indicates another product already uses the sku.
	ErrDuplicateSKU = fmt.Errorf("products: sku already in use: %w", shared.ErrConflict)
)

// InsufficientStockError reports a line asking for more than is on hand.
type InsufficientStockError struct {
	ProductID int64
	Product   string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for product %s. requested: %d, available: %d", e.Product, e.Requested, e.Available)
}

// Unwrap classifies the error as a business rule violation.
func (e *InsufficientStockError) Unwrap() error {
	return shared.ErrBusinessRule
}
