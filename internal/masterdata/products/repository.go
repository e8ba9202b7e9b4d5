package products

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carpetdist/carpet-erp/internal/masterdata/shared"
	"github.com/carpetdist/carpet-erp/internal/platform/db"
)

const productColumns = `id, name, sku, brand, category, size, stock, critical_level, price, image_url, created_at, updated_at`

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Product, int, error)
	Get(ctx context.Context, id int64) (Product, error)
	Create(ctx context.Context, product Product) (Product, error)
	Update(ctx context.Context, id int64, product Product) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Product, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argCount := 0

	if filters.SupplierID != nil {
		argCount++
		where += ` AND id IN (SELECT product_id FROM supplier_products WHERE supplier_id = $` + strconv.Itoa(argCount) + `)`
		args = append(args, *filters.SupplierID)
	}

	if filters.Search != "" {
		argCount++
		p := strconv.Itoa(argCount)
		where += ` AND (name ILIKE $` + p + ` OR sku ILIKE $` + p + ` OR brand ILIKE $` + p + `)`
		args = append(args, "%"+filters.Search+"%")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + productColumns + ` FROM products` + where + ` ORDER BY ` + sortOrder(filters.SortBy, filters.SortDir)
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

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if db.IsNoRows(err) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, product Product) (Product, error) {
	query := `INSERT INTO products (name, sku, brand, category, size, stock, critical_level, price, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10) RETURNING id`
	now := time.Now()
	err := r.db.QueryRow(ctx, query, product.Name, product.SKU, product.Brand, product.Category, product.Size,
		product.Stock, product.CriticalLevel, product.Price, product.ImageURL, now).Scan(&product.ID)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Product{}, ErrDuplicateSKU
		}
		return Product{}, err
	}
	product.CreatedAt = now
	product.UpdatedAt = now
	return product, nil
}

func (r *repository) Update(ctx context.Context, id int64, product Product) error {
	query := `UPDATE products SET name = $1, sku = $2, brand = $3, category = $4, size = $5, stock = $6,
		critical_level = $7, price = $8, image_url = $9, updated_at = $10 WHERE id = $11`
	tag, err := r.db.Exec(ctx, query, product.Name, product.SKU, product.Brand, product.Category, product.Size,
		product.Stock, product.CriticalLevel, product.Price, product.ImageURL, time.Now(), id)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrDuplicateSKU
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the product together with its catalog links and order lines.
func (r *repository) Delete(ctx context.Context, id int64) error {
	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		for _, stmt := range []string{
			`DELETE FROM supplier_products WHERE product_id = $1`,
			`DELETE FROM sale_items WHERE product_id = $1`,
			`DELETE FROM purchase_items WHERE product_id = $1`,
		} {
			if _, err := tx.Exec(ctx, stmt, id); err != nil {
				return err
			}
		}
		tag, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.Brand, &p.Category, &p.Size, &p.Stock, &p.CriticalLevel,
		&p.Price, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func sortOrder(sortBy, sortDir string) string {
	dir := shared.SortDirection(sortDir)
	switch sortBy {
	case "sku":
		return "sku " + dir
	case "name":
		return "name " + dir
	case "price":
		return "price " + dir
	case "stock":
		return "stock " + dir
	case "created_at":
		return "created_at " + dir
	default:
		return "created_at DESC"
	}
}
