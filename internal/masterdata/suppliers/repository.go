package suppliers

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carpetdist/carpet-erp/internal/masterdata/products"
	"github.com/carpetdist/carpet-erp/internal/masterdata/shared"
	"github.com/carpetdist/carpet-erp/internal/platform/db"
)

const supplierColumns = `id, name, type, balance, contact_info, address, created_at, updated_at`

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Supplier, int, error)
	Get(ctx context.Context, id int64) (Supplier, error)
	Create(ctx context.Context, supplier Supplier) (Supplier, error)
	Update(ctx context.Context, id int64, supplier Supplier) error
	Delete(ctx context.Context, id int64) error
	ListProducts(ctx context.Context, supplierID int64) ([]products.Product, error)
	AddProduct(ctx context.Context, supplierID, productID int64) error
	RemoveProduct(ctx context.Context, supplierID, productID int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Supplier, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		where += ` AND (name ILIKE $` + strconv.Itoa(argCount) + ` OR contact_info ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+filters.Search+"%")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM suppliers`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + supplierColumns + ` FROM suppliers` + where + ` ORDER BY ` + sortOrder(filters.SortBy, filters.SortDir)
	if filters.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filters.Limit)
		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		args = append(args, filters.Offset())
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	suppliers := []Supplier{}
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, 0, err
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Supplier, error) {
	s, err := scanSupplier(r.db.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id))
	if db.IsNoRows(err) {
		return Supplier{}, ErrNotFound
	}
	return s, err
}

func (r *repository) Create(ctx context.Context, supplier Supplier) (Supplier, error) {
	query := `INSERT INTO suppliers (name, type, balance, contact_info, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6) RETURNING id`
	now := time.Now()
	err := r.db.QueryRow(ctx, query, supplier.Name, supplier.Type, supplier.Balance, supplier.ContactInfo, supplier.Address, now).Scan(&supplier.ID)
	if err != nil {
		return Supplier{}, err
	}
	supplier.CreatedAt = now
	supplier.UpdatedAt = now
	return supplier, nil
}

func (r *repository) Update(ctx context.Context, id int64, supplier Supplier) error {
	query := `UPDATE suppliers SET name = $1, type = $2, contact_info = $3, address = $4, updated_at = $5 WHERE id = $6`
	tag, err := r.db.Exec(ctx, query, supplier.Name, supplier.Type, supplier.ContactInfo, supplier.Address, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the supplier; catalog links cascade and purchases keep
// their factory name with the attribution cleared.
func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) ListProducts(ctx context.Context, supplierID int64) ([]products.Product, error) {
	rows, err := r.db.Query(ctx, `SELECT p.id, p.name, p.sku, p.brand, p.category, p.size, p.stock, p.critical_level,
			p.price, p.image_url, p.created_at, p.updated_at
		FROM supplier_products sp JOIN products p ON p.id = sp.product_id
		WHERE sp.supplier_id = $1 ORDER BY p.name`, supplierID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []products.Product{}
	for rows.Next() {
		var p products.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.Brand, &p.Category, &p.Size, &p.Stock, &p.CriticalLevel,
			&p.Price, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// AddProduct links a product into the supplier catalog. Linking twice is a no-op.
func (r *repository) AddProduct(ctx context.Context, supplierID, productID int64) error {
	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := exists(ctx, tx, `SELECT 1 FROM suppliers WHERE id = $1`, supplierID); err != nil {
			if db.IsNoRows(err) {
				return fmt.Errorf("%w: id %d", ErrNotFound, supplierID)
			}
			return err
		}
		if err := exists(ctx, tx, `SELECT 1 FROM products WHERE id = $1`, productID); err != nil {
			if db.IsNoRows(err) {
				return fmt.Errorf("%w: id %d", products.ErrNotFound, productID)
			}
			return err
		}
		_, err := tx.Exec(ctx, `INSERT INTO supplier_products (supplier_id, product_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, supplierID, productID)
		return err
	})
}

func (r *repository) RemoveProduct(ctx context.Context, supplierID, productID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM supplier_products WHERE supplier_id = $1 AND product_id = $2`, supplierID, productID)
	return err
}

func exists(ctx context.Context, tx pgx.Tx, query string, id int64) error {
	var one int
	return tx.QueryRow(ctx, query, id).Scan(&one)
}

func scanSupplier(row pgx.Row) (Supplier, error) {
	var s Supplier
	err := row.Scan(&s.ID, &s.Name, &s.Type, &s.Balance, &s.ContactInfo, &s.Address, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func sortOrder(sortBy, sortDir string) string {
	dir := shared.SortDirection(sortDir)
	switch sortBy {
	case "name":
		return "name " + dir
	case "balance":
		return "balance " + dir
	case "created_at":
		return "created_at " + dir
	default:
		return "name ASC"
	}
}
