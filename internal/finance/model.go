package finance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carpetdist/carpet-erp/internal/shared"
)

// PaymentType is the direction of money relative to the business.
type PaymentType string

const (
	// PaymentIncome is money received.
	PaymentIncome PaymentType = "income"
	// PaymentExpense is money paid out.
	PaymentExpense PaymentType = "expense"
)

// Valid reports whether t is a known payment type.
func (t PaymentType) Valid() bool {
	return t == PaymentIncome || t == PaymentExpense
}

// Method is how a payment was settled.
type Method string

const (
	MethodCash         Method = "cash"
	MethodCreditCard   Method = "credit_card"
	MethodBankTransfer Method = "bank_transfer"
	MethodCheck        Method = "check"
)

// Valid reports whether m is a known method.
func (m Method) Valid() bool {
	switch m {
	case MethodCash, MethodCreditCard, MethodBankTransfer, MethodCheck:
		return true
	}
	return false
}

// Payment is an append-only journal row.
type Payment struct {
	ID          int64           `json:"id"`
	Type        PaymentType     `json:"type"`
	PartyType   PartyType       `json:"partyType"`
	PartyID     int64           `json:"partyId"`
	PartyName   string          `json:"partyName"`
	Amount      decimal.Decimal `json:"amount"`
	Method      Method          `json:"method"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

// Party returns the payment's counterparty.
func (p Payment) Party() (Party, error) {
	return NewParty(p.PartyType, p.PartyID)
}

// Stats sums the open balances on both sides of the ledger.
type Stats struct {
	TotalReceivables decimal.Decimal `json:"totalReceivables"`
	TotalPayables    decimal.Decimal `json:"totalPayables"`
}

var (
	// ErrPartyNotFound indicates the payment counterparty does not exist.
	ErrPartyNotFound = fmt.Errorf("finance: party %w", shared.ErrNotFound)
	// ErrInvalidPartyType rejects party types other than customer and supplier.
	ErrInvalidPartyType = fmt.Errorf("finance: unknown party type: %w", shared.ErrValidation)
	// ErrInvalidPaymentType rejects types other than income and expense.
	ErrInvalidPaymentType = fmt.Errorf("finance: unknown payment type: %w", shared.ErrValidation)
	// ErrInvalidMethod rejects unknown payment methods.
	ErrInvalidMethod = fmt.Errorf("finance: unknown payment method: %w", shared.ErrValidation)
	// ErrInvalidAmount rejects zero, negative or sub-cent amounts.
	ErrInvalidAmount = fmt.Errorf("finance: amount must be positive with at most two decimals: %w", shared.ErrValidation)
)
