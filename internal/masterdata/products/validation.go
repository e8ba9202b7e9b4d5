package products

import (
	"strings"

	"github.com/carpetdist/carpet-erp/internal/shared"
)

func (s *Service) validate(p Product) error {
	if strings.TrimSpace(p.SKU) == "" {
		return shared.Validationf("product sku is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return shared.Validationf("product name is required")
	}
	if p.Price.IsNegative() {
		return shared.Validationf("product price must not be negative")
	}
	if p.Stock < 0 {
		return shared.Validationf("product stock must not be negative")
	}
	if p.CriticalLevel < 0 {
		return shared.Validationf("product critical level must not be negative")
	}
	return nil
}
