package suppliers

import (
	"fmt"

	"github.com/carpetdist/carpet-erp/internal/shared"
)

// ErrNotFound indicates the supplier does not exist.
var ErrNotFound = fmt.Errorf("suppliers: supplier %w", shared.ErrNotFound)
