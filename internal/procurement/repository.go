package procurement

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carpetdist/carpet-erp/internal/masterdata/products"
	"github.com/carpetdist/carpet-erp/internal/masterdata/suppliers"
	"github.com/carpetdist/carpet-erp/internal/platform/db"
)

// Repository persists purchases in Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type txRepo struct {
	tx        pgx.Tx
	products  products.Ledger
	suppliers suppliers.Ledger
}

// WithTx runs fn in a read-committed transaction with row-locking ledgers.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTxIso(ctx, r.pool, pgx.ReadCommitted, func(tx pgx.Tx) error {
		return fn(ctx, &txRepo{
			tx:        tx,
			products:  products.NewLedger(tx),
			suppliers: suppliers.NewLedger(tx),
		})
	})
}

func (t *txRepo) Products() products.Ledger   { return t.products }
func (t *txRepo) Suppliers() suppliers.Ledger { return t.suppliers }

func (t *txRepo) InsertPurchase(ctx context.Context, p Purchase) error {
	_, err := t.tx.Exec(ctx, `INSERT INTO purchases (id, factory_name, supplier_id, total_amount, status, date, estimated_delivery_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.FactoryName, p.SupplierID, p.TotalAmount, string(p.Status), p.Date, p.EstimatedDeliveryDate, p.CreatedAt, p.UpdatedAt)
	return err
}

func (t *txRepo) InsertItem(ctx context.Context, item PurchaseItem) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx, `INSERT INTO purchase_items (purchase_id, product_id, product_sku, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		item.PurchaseID, item.ProductID, item.ProductSKU, item.Quantity, item.UnitPrice, item.TotalPrice).Scan(&id)
	return id, err
}

func (t *txRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (Purchase, error) {
	p, err := scanPurchase(t.tx.QueryRow(ctx, purchaseSelect+` WHERE id = $1 FOR UPDATE`, id))
	if db.IsNoRows(err) {
		return Purchase{}, ErrNotFound
	}
	if err != nil {
		return Purchase{}, err
	}
	items, err := loadItems(ctx, t.tx, []uuid.UUID{id})
	if err != nil {
		return Purchase{}, err
	}
	p.Items = itemsOrEmpty(items[id])
	return p, nil
}

func (t *txRepo) UpdatePurchase(ctx context.Context, p Purchase) error {
	tag, err := t.tx.Exec(ctx, `UPDATE purchases SET factory_name = $2, total_amount = $3, status = $4,
		estimated_delivery_date = $5, updated_at = $6 WHERE id = $1`,
		p.ID, p.FactoryName, p.TotalAmount, string(p.Status), p.EstimatedDeliveryDate, p.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *txRepo) UpdateItem(ctx context.Context, item PurchaseItem) error {
	tag, err := t.tx.Exec(ctx, `UPDATE purchase_items SET quantity = $2, unit_price = $3, total_price = $4 WHERE id = $1`,
		item.ID, item.Quantity, item.UnitPrice, item.TotalPrice)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

const purchaseSelect = `SELECT id, factory_name, supplier_id, total_amount, status, date, estimated_delivery_date, created_at, updated_at FROM purchases`

// Get returns a purchase with its items.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (Purchase, error) {
	p, err := scanPurchase(r.pool.QueryRow(ctx, purchaseSelect+` WHERE id = $1`, id))
	if db.IsNoRows(err) {
		return Purchase{}, ErrNotFound
	}
	if err != nil {
		return Purchase{}, err
	}
	items, err := loadItems(ctx, r.pool, []uuid.UUID{id})
	if err != nil {
		return Purchase{}, err
	}
	p.Items = itemsOrEmpty(items[id])
	return p, nil
}

// List returns purchases newest first.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]Purchase, error) {
	query := purchaseSelect + ` WHERE 1=1`
	args := []any{}
	if filters.Status != "" {
		args = append(args, string(filters.Status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filters.SupplierID != nil {
		args = append(args, *filters.SupplierID)
		query += ` AND supplier_id = $` + strconv.Itoa(len(args))
	}
	rows, err := r.pool.Query(ctx, query+` ORDER BY date DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	purchases := []Purchase{}
	ids := []uuid.UUID{}
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items, err := loadItems(ctx, r.pool, ids)
	if err != nil {
		return nil, err
	}
	for i := range purchases {
		purchases[i].Items = itemsOrEmpty(items[purchases[i].ID])
	}
	return purchases, nil
}

func loadItems(ctx context.Context, conn db.DBTX, ids []uuid.UUID) (map[uuid.UUID][]PurchaseItem, error) {
	out := make(map[uuid.UUID][]PurchaseItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := conn.Query(ctx, `SELECT id, purchase_id, product_id, product_sku, quantity, unit_price, total_price
		FROM purchase_items WHERE purchase_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it PurchaseItem
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.ProductID, &it.ProductSKU, &it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return nil, err
		}
		out[it.PurchaseID] = append(out[it.PurchaseID], it)
	}
	return out, rows.Err()
}

func itemsOrEmpty(items []PurchaseItem) []PurchaseItem {
	if items == nil {
		return []PurchaseItem{}
	}
	return items
}

func scanPurchase(row pgx.Row) (Purchase, error) {
	var p Purchase
	var status string
	err := row.Scan(&p.ID, &p.FactoryName, &p.SupplierID, &p.TotalAmount, &status, &p.Date, &p.EstimatedDeliveryDate, &p.CreatedAt, &p.UpdatedAt)
	p.Status = Status(status)
	return p, err
}
