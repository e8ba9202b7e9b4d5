package shared

import (
	"fmt"

	internalShared "github.com/carpetdist/carpet-erp/internal/shared"
)

// ErrInvalidID rejects non-positive ids before any query runs.
var ErrInvalidID = fmt.Errorf("id must be a positive integer: %w", internalShared.ErrValidation)
