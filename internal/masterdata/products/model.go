package products

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCriticalLevel applies when a product is created without one.
const DefaultCriticalLevel = 10

// Product is a carpet article with its on-hand stock.
type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Brand         string          `json:"brand"`
	Category      string          `json:"category"`
	Size          string          `json:"size"`
	Stock         int             `json:"stock"`
	CriticalLevel int             `json:"criticalLevel"`
	Price         decimal.Decimal `json:"price"`
	ImageURL      string          `json:"imageUrl"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// IsCritical reports whether stock has fallen to the alert threshold.
func (p Product) IsCritical() bool {
	return p.Stock <= p.CriticalLevel
}
