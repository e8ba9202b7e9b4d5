package customers

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/carpetdist/carpet-erp/internal/platform/db"
)

// Ledger is the customer balance view used inside workflow transactions.
type Ledger interface {
	GetForUpdate(ctx context.Context, id int64) (Customer, error)
	AdjustBalance(ctx context.Context, id int64, delta decimal.Decimal) (decimal.Decimal, error)
}

type ledger struct {
	db db.DBTX
}

// NewLedger binds a Ledger to a connection or transaction.
func NewLedger(conn db.DBTX) Ledger {
	return &ledger{db: conn}
}

func (l *ledger) GetForUpdate(ctx context.Context, id int64) (Customer, error) {
	c, err := scanCustomer(l.db.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1 FOR UPDATE`, id))
	if db.IsNoRows(err) {
		return Customer{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return c, err
}

func (l *ledger) AdjustBalance(ctx context.Context, id int64, delta decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := l.db.QueryRow(ctx, `UPDATE customers SET balance = balance + $2, updated_at = NOW() WHERE id = $1 RETURNING balance`, id, delta).Scan(&balance)
	if db.IsNoRows(err) {
		return decimal.Zero, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return balance, err
}
