package suppliers

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/carpetdist/carpet-erp/internal/platform/db"
)

// Ledger is the supplier balance view used inside workflow transactions.
type Ledger interface {
	GetForUpdate(ctx context.Context, id int64) (Supplier, error)
	// FindByNameForUpdate returns the lowest-id supplier whose normalised
	// name equals name exactly. ok is false when nothing matches.
	FindByNameForUpdate(ctx context.Context, name string) (Supplier, bool, error)
	AdjustBalance(ctx context.Context, id int64, delta decimal.Decimal) (decimal.Decimal, error)
}

type ledger struct {
	db db.DBTX
}

// NewLedger binds a Ledger to a connection or transaction.
func NewLedger(conn db.DBTX) Ledger {
	return &ledger{db: conn}
}

func (l *ledger) GetForUpdate(ctx context.Context, id int64) (Supplier, error) {
	s, err := scanSupplier(l.db.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1 FOR UPDATE`, id))
	if db.IsNoRows(err) {
		return Supplier{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return s, err
}

func (l *ledger) FindByNameForUpdate(ctx context.Context, name string) (Supplier, bool, error) {
	name = NormalizeName(name)
	if name == "" {
		return Supplier{}, false, nil
	}
	s, err := scanSupplier(l.db.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers
		WHERE btrim(normalize(name, NFC)) = $1 ORDER BY id LIMIT 1 FOR UPDATE`, name))
	if db.IsNoRows(err) {
		return Supplier{}, false, nil
	}
	if err != nil {
		return Supplier{}, false, err
	}
	return s, true, nil
}

func (l *ledger) AdjustBalance(ctx context.Context, id int64, delta decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := l.db.QueryRow(ctx, `UPDATE suppliers SET balance = balance + $2, updated_at = NOW() WHERE id = $1 RETURNING balance`, id, delta).Scan(&balance)
	if db.IsNoRows(err) {
		return decimal.Zero, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return balance, err
}
