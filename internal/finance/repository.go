package finance

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carpetdist/carpet-erp/internal/masterdata/suppliers"
	"github.com/carpetdist/carpet-erp/internal/platform/db"
	"github.com/carpetdist/carpet-erp/internal/sales/customers"
)

// Repository persists payments and reads ledger totals.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type txRepo struct {
	tx        pgx.Tx
	customers customers.Ledger
	suppliers suppliers.Ledger
}

// WithTx runs fn in a read-committed transaction with row-locking ledgers.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTxIso(ctx, r.pool, pgx.ReadCommitted, func(tx pgx.Tx) error {
		return fn(ctx, &txRepo{
			tx:        tx,
			customers: customers.NewLedger(tx),
			suppliers: suppliers.NewLedger(tx),
		})
	})
}

func (t *txRepo) Customers() customers.Ledger { return t.customers }
func (t *txRepo) Suppliers() suppliers.Ledger { return t.suppliers }

func (t *txRepo) InsertPayment(ctx context.Context, p Payment) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx, `INSERT INTO payments (type, party_type, party_id, party_name, amount, method, description, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		string(p.Type), string(p.PartyType), p.PartyID, p.PartyName, p.Amount, string(p.Method), p.Description, p.Date).Scan(&id)
	return id, err
}

// Stats sums customer and supplier balances.
func (r *Repository) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := r.pool.QueryRow(ctx, `SELECT
		(SELECT COALESCE(SUM(balance), 0) FROM customers),
		(SELECT COALESCE(SUM(balance), 0) FROM suppliers)`).Scan(&s.TotalReceivables, &s.TotalPayables)
	return s, err
}

// History returns payments newest first.
func (r *Repository) History(ctx context.Context, filters HistoryFilters) ([]Payment, error) {
	query := `SELECT id, type, party_type, party_id, party_name, amount, method, description, date FROM payments WHERE 1=1`
	args := []any{}
	if filters.PartyType != "" {
		args = append(args, string(filters.PartyType))
		query += ` AND party_type = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY date DESC, id DESC`
	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Payment{}
	for rows.Next() {
		var p Payment
		var typ, partyType, method string
		if err := rows.Scan(&p.ID, &typ, &partyType, &p.PartyID, &p.PartyName, &p.Amount, &method, &p.Description, &p.Date); err != nil {
			return nil, err
		}
		p.Type, p.PartyType, p.Method = PaymentType(typ), PartyType(partyType), Method(method)
		out = append(out, p)
	}
	return out, rows.Err()
}
