package procurement

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carpetdist/carpet-erp/internal/shared"
)

// Status is the lifecycle state of a purchase. Any status may follow any
// other; only moves into and out of RECEIVED touch stock.
type Status string

const (
	StatusOrdered   Status = "ORDERED"
	StatusProducing Status = "PRODUCING"
	StatusShipped   Status = "SHIPPED"
	StatusReceived  Status = "RECEIVED"
)

// Statuses lists every accepted status.
var Statuses = []Status{StatusOrdered, StatusProducing, StatusShipped, StatusReceived}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, st := range Statuses {
		if s == st {
			return true
		}
	}
	return false
}

// Purchase is an order placed with a factory. SupplierID is resolved once,
// when the purchase is created, and is nil when no supplier matched.
type Purchase struct {
	ID                    uuid.UUID       `json:"id"`
	FactoryName           string          `json:"factoryName"`
	SupplierID            *int64          `json:"supplierId"`
	TotalAmount           decimal.Decimal `json:"totalAmount"`
	Status                Status          `json:"status"`
	Date                  time.Time       `json:"date"`
	EstimatedDeliveryDate *time.Time      `json:"estimatedDeliveryDate,omitempty"`
	Items                 []PurchaseItem  `json:"items"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

// PurchaseItem is one purchase line with the sku and cost captured at order time.
type PurchaseItem struct {
	ID         int64           `json:"id"`
	PurchaseID uuid.UUID       `json:"purchaseId"`
	ProductID  int64           `json:"productId"`
	ProductSKU string          `json:"productSku"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

var (
	// ErrNotFound indicates the purchase does not exist.
	ErrNotFound = fmt.Errorf("procurement: purchase %w", shared.ErrNotFound)
	// ErrItemNotFound indicates an edit referenced a line outside the purchase.
	ErrItemNotFound = fmt.Errorf("procurement: purchase item %w", shared.ErrNotFound)
	// ErrAlreadyReceived rejects a second receipt of the same purchase.
	ErrAlreadyReceived = fmt.Errorf("procurement: Already received: %w (%w)", shared.ErrBusinessRule, shared.ErrConflict)
	// ErrPurchaseLocked rejects quantity edits once goods are in stock.
	ErrPurchaseLocked = fmt.Errorf("procurement: quantities of a received purchase cannot change: %w (%w)", shared.ErrBusinessRule, shared.ErrConflict)
	// ErrInvalidStatus rejects statuses outside the known set.
	ErrInvalidStatus = fmt.Errorf("procurement: unknown purchase status: %w", shared.ErrValidation)
)
