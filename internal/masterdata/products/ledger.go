package products

import (
	"context"
	"fmt"

	"github.com/carpetdist/carpet-erp/internal/platform/db"
)

// Ledger is the stock view order workflows use inside their transaction.
// GetForUpdate takes a row lock held until the transaction ends.
type Ledger interface {
	GetForUpdate(ctx context.Context, id int64) (Product, error)
	AdjustStock(ctx context.Context, id int64, delta int) (int, error)
}

type ledger struct {
	db db.DBTX
}

// NewLedger binds a Ledger to a connection or transaction.
func NewLedger(conn db.DBTX) Ledger {
	return &ledger{db: conn}
}

func (l *ledger) GetForUpdate(ctx context.Context, id int64) (Product, error) {
	p, err := scanProduct(l.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id))
	if db.IsNoRows(err) {
		return Product{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return p, err
}

// AdjustStock applies delta and returns the resulting stock. No floor is
// enforced here; callers decide whether a negative result is acceptable.
func (l *ledger) AdjustStock(ctx context.Context, id int64, delta int) (int, error) {
	var stock int
	err := l.db.QueryRow(ctx, `UPDATE products SET stock = stock + $2, updated_at = NOW() WHERE id = $1 RETURNING stock`, id, delta).Scan(&stock)
	if db.IsNoRows(err) {
		return 0, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return stock, err
}
