package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the fulfilment state of a sale. Any status may follow any other.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPreparing Status = "PREPARING"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// Statuses lists every accepted status.
var Statuses = []Status{StatusPending, StatusPreparing, StatusShipped, StatusDelivered, StatusCancelled}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, st := range Statuses {
		if s == st {
			return true
		}
	}
	return false
}

// Sale is a customer order. Its items carry the product name and price
// captured when the sale was made.
type Sale struct {
	ID           uuid.UUID       `json:"id"`
	CustomerID   *int64          `json:"customerId"`
	CustomerName string          `json:"customerName,omitempty"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Status       Status          `json:"status"`
	Date         time.Time       `json:"date"`
	Items        []SaleItem      `json:"items"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// SaleItem is one sale line.
type SaleItem struct {
	ID          int64           `json:"id"`
	SaleID      uuid.UUID       `json:"saleId"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}
