package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentInput is the payload for POST /finance/payment.
type PaymentInput struct {
	Type        PaymentType     `json:"type" validate:"required"`
	PartyType   PartyType       `json:"partyType" validate:"required"`
	PartyID     int64           `json:"partyId" validate:"required,gt=0"`
	Amount      decimal.Decimal `json:"amount"`
	Method      Method          `json:"method"`
	Description string          `json:"description" validate:"max=500"`
	Date        *time.Time      `json:"date"`
}

// HistoryFilters narrows the payment history.
type HistoryFilters struct {
	PartyType PartyType
	Limit     int
}
