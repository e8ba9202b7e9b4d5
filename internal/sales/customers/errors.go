package customers

import (
	"fmt"

	"github.com/carpetdist/carpet-erp/internal/shared"
)

var (
	ErrNotFound    = fmt.Errorf("customers: customer %w", shared.ErrNotFound)
	ErrInvalidID   = fmt.Errorf("customers: invalid id: %w", shared.ErrValidation)
	ErrInvalidType = fmt.Errorf("customers: type must be individual or corporate: %w", shared.ErrValidation)
)
