package orders

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carpetdist/carpet-erp/internal/masterdata/products"
	"github.com/carpetdist/carpet-erp/internal/platform/db"
	"github.com/carpetdist/carpet-erp/internal/sales/customers"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type txRepo struct {
	tx        pgx.Tx
	products  products.Ledger
	customers customers.Ledger
}

// WithTx runs fn in a read-committed transaction; the ledgers it exposes lock
// the rows they read.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTxIso(ctx, r.pool, pgx.ReadCommitted, func(tx pgx.Tx) error {
		return fn(ctx, &txRepo{
			tx:        tx,
			products:  products.NewLedger(tx),
			customers: customers.NewLedger(tx),
		})
	})
}

func (t *txRepo) Products() products.Ledger   { return t.products }
func (t *txRepo) Customers() customers.Ledger { return t.customers }

func (t *txRepo) InsertSale(ctx context.Context, sale Sale) error {
	_, err := t.tx.Exec(ctx, `INSERT INTO sales (id, customer_id, total_amount, status, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sale.ID, sale.CustomerID, sale.TotalAmount, string(sale.Status), sale.Date, sale.CreatedAt, sale.UpdatedAt)
	return err
}

func (t *txRepo) InsertItem(ctx context.Context, item SaleItem) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx, `INSERT INTO sale_items (sale_id, product_id, product_name, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		item.SaleID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice, item.TotalPrice).Scan(&id)
	return id, err
}

const saleSelect = `SELECT s.id, s.customer_id, COALESCE(c.name, ''), s.total_amount, s.status, s.date, s.created_at, s.updated_at
	FROM sales s LEFT JOIN customers c ON c.id = s.customer_id`

// Get returns a sale with its items.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (Sale, error) {
	sale, err := scanSale(r.pool.QueryRow(ctx, saleSelect+` WHERE s.id = $1`, id))
	if db.IsNoRows(err) {
		return Sale{}, ErrNotFound
	}
	if err != nil {
		return Sale{}, err
	}
	items, err := r.items(ctx, []uuid.UUID{id})
	if err != nil {
		return Sale{}, err
	}
	sale.Items = items[id]
	if sale.Items == nil {
		sale.Items = []SaleItem{}
	}
	return sale, nil
}

// List returns one page of sales, newest first.
func (r *Repository) List(ctx context.Context, filters ListFilters, limit, offset int) ([]Sale, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if filters.Status != "" {
		args = append(args, string(filters.Status))
		where += ` AND s.status = $` + strconv.Itoa(len(args))
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		p := strconv.Itoa(len(args))
		where += ` AND (c.name ILIKE $` + p + ` OR s.id::text ILIKE $` + p + `)`
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM sales s LEFT JOIN customers c ON c.id = s.customer_id`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := saleSelect + where + ` ORDER BY s.date DESC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	sales := []Sale{}
	ids := []uuid.UUID{}
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, 0, err
		}
		sales = append(sales, s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	items, err := r.items(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range sales {
		sales[i].Items = items[sales[i].ID]
		if sales[i].Items == nil {
			sales[i].Items = []SaleItem{}
		}
	}
	return sales, total, nil
}

// UpdateStatus sets the sale status. Stock and balances are not touched.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	tag, err := r.pool.Exec(ctx, `UPDATE sales SET status = $2, updated_at = NOW() WHERE id = $1`, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) items(ctx context.Context, saleIDs []uuid.UUID) (map[uuid.UUID][]SaleItem, error) {
	out := make(map[uuid.UUID][]SaleItem, len(saleIDs))
	if len(saleIDs) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT id, sale_id, product_id, product_name, quantity, unit_price, total_price
		FROM sale_items WHERE sale_id = ANY($1) ORDER BY id`, saleIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return nil, err
		}
		out[it.SaleID] = append(out[it.SaleID], it)
	}
	return out, rows.Err()
}

func scanSale(row pgx.Row) (Sale, error) {
	var s Sale
	var status string
	err := row.Scan(&s.ID, &s.CustomerID, &s.CustomerName, &s.TotalAmount, &status, &s.Date, &s.CreatedAt, &s.UpdatedAt)
	s.Status = Status(status)
	return s, err
}
