package dashboard

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Repository runs the overview aggregates against Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Revenue sums sale totals dated in [from, to).
func (r *Repository) Revenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(total_amount), 0) FROM sales WHERE date >= $1 AND date < $2`, from, to).Scan(&total)
	return total, err
}

// PendingOrders counts sales still in PENDING.
func (r *Repository) PendingOrders(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM sales WHERE status = 'PENDING'`).Scan(&n)
	return n, err
}

// CriticalStock counts products at or below their critical level.
func (r *Repository) CriticalStock(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE stock <= critical_level`).Scan(&n)
	return n, err
}

// CustomerBalance sums every customer balance.
func (r *Repository) CustomerBalance(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(balance), 0) FROM customers`).Scan(&total)
	return total, err
}

// DailySales sums sale totals per calendar day in [from, to), keyed YYYY-MM-DD
// in loc.
func (r *Repository) DailySales(ctx context.Context, from, to time.Time, loc *time.Location) (map[string]decimal.Decimal, error) {
	rows, err := r.pool.Query(ctx, `SELECT to_char(date AT TIME ZONE $3, 'YYYY-MM-DD'), SUM(total_amount)
		FROM sales WHERE date >= $1 AND date < $2 GROUP BY 1`, from, to, loc.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]decimal.Decimal{}
	for rows.Next() {
		var day string
		var total decimal.Decimal
		if err := rows.Scan(&day, &total); err != nil {
			return nil, err
		}
		out[day] = total
	}
	return out, rows.Err()
}

// BrandCounts returns the limit most stocked brands by product count.
func (r *Repository) BrandCounts(ctx context.Context, limit int) ([]BrandSlice, error) {
	rows, err := r.pool.Query(ctx, `SELECT COALESCE(NULLIF(btrim(brand), ''), $2) AS name, COUNT(*) AS value
		FROM products GROUP BY 1 ORDER BY value DESC, name LIMIT $1`, limit, UnbrandedLabel)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []BrandSlice{}
	for rows.Next() {
		var b BrandSlice
		if err := rows.Scan(&b.Name, &b.Value); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
