package suppliers

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/carpetdist/carpet-erp/internal/masterdata/products"
)

// Supplier represents a factory or wholesaler. A positive balance is owed
// by us to the supplier.
type Supplier struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Balance     decimal.Decimal `json:"balance"`
	ContactInfo string          `json:"contactInfo"`
	Address     string          `json:"address"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Detail is a supplier with its catalog.
type Detail struct {
	Supplier
	Products []products.Product `json:"products"`
}

// NormalizeName trims and NFC-normalises a supplier or factory name so that
// visually identical names compare equal.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
