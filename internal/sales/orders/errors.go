package orders

import (
	"fmt"

	"github.com/carpetdist/carpet-erp/internal/shared"
)

var (
	ErrNotFound      = fmt.Errorf("orders: sale %w", shared.ErrNotFound)
	ErrInvalidStatus = fmt.Errorf("orders: unknown sale status: %w", shared.ErrValidation)
	ErrNoItems       = fmt.Errorf("orders: sale needs at least one item: %w", shared.ErrValidation)
)
