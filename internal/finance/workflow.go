package finance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carpetdist/carpet-erp/internal/masterdata/suppliers"
	"github.com/carpetdist/carpet-erp/internal/sales/customers"
	"github.com/carpetdist/carpet-erp/internal/shared"
)

// TxRepository is the unit of work RecordPayment runs against.
type TxRepository interface {
	Customers() customers.Ledger
	Suppliers() suppliers.Ledger
	InsertPayment(ctx context.Context, p Payment) (int64, error)
}

// Record is a validated payment request.
type Record struct {
	Type        PaymentType
	Party       Party
	Amount      decimal.Decimal
	Method      Method
	Description string
	Date        *time.Time
}

// BalanceDelta is the change a payment applies to its party's balance.
// Customers owe when negative and suppliers are owed when positive, so
// income moves both up and expense moves both down.
func BalanceDelta(t PaymentType, amount decimal.Decimal) decimal.Decimal {
	if t == PaymentExpense {
		return amount.Neg()
	}
	return amount
}

// RecordPayment journals a payment and applies it to the party balance in tx.
func RecordPayment(ctx context.Context, tx TxRepository, rec Record, now time.Time) (Payment, error) {
	if !rec.Type.Valid() {
		return Payment{}, fmt.Errorf("%w: %q", ErrInvalidPaymentType, rec.Type)
	}
	method := rec.Method
	if method == "" {
		method = MethodCash
	}
	if !method.Valid() {
		return Payment{}, fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}
	if !rec.Amount.IsPositive() || !rec.Amount.Equal(shared.RoundMoney(rec.Amount)) {
		return Payment{}, fmt.Errorf("%w: %s", ErrInvalidAmount, rec.Amount)
	}
	if rec.Party == nil {
		return Payment{}, ErrInvalidPartyType
	}

	p := Payment{
		Type:        rec.Type,
		PartyType:   rec.Party.Type(),
		PartyID:     rec.Party.PartyID(),
		Amount:      rec.Amount,
		Method:      method,
		Description: rec.Description,
		Date:        now,
	}
	if rec.Date != nil {
		p.Date = *rec.Date
	}

	delta := BalanceDelta(rec.Type, rec.Amount)
	switch party := rec.Party.(type) {
	case CustomerParty:
		c, err := tx.Customers().GetForUpdate(ctx, party.ID)
		if err != nil {
			return Payment{}, partyErr(err, customers.ErrNotFound, party)
		}
		p.PartyName = c.Name
		if _, err := tx.Customers().AdjustBalance(ctx, party.ID, delta); err != nil {
			return Payment{}, fmt.Errorf("finance: adjust customer %d: %w", party.ID, err)
		}
	case SupplierParty:
		s, err := tx.Suppliers().GetForUpdate(ctx, party.ID)
		if err != nil {
			return Payment{}, partyErr(err, suppliers.ErrNotFound, party)
		}
		p.PartyName = s.Name
		if _, err := tx.Suppliers().AdjustBalance(ctx, party.ID, delta); err != nil {
			return Payment{}, fmt.Errorf("finance: adjust supplier %d: %w", party.ID, err)
		}
	}

	id, err := tx.InsertPayment(ctx, p)
	if err != nil {
		return Payment{}, fmt.Errorf("finance: insert payment: %w", err)
	}
	p.ID = id
	return p, nil
}

func partyErr(err, notFound error, party Party) error {
	if errors.Is(err, notFound) {
		return fmt.Errorf("%w: %s %d", ErrPartyNotFound, party.Type(), party.PartyID())
	}
	return err
}
