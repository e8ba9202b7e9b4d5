package products

import (
	"context"

	"github.com/carpetdist/carpet-erp/internal/platform/db"
)

// CriticalReader finds products whose stock sits at or below the critical level.
type CriticalReader struct {
	db db.DBTX
}

func NewCriticalReader(conn db.DBTX) *CriticalReader {
	return &CriticalReader{db: conn}
}

// Critical returns the critical products among ids, or every critical product
// when ids is empty. Rows come back lowest stock first.
func (r *CriticalReader) Critical(ctx context.Context, ids []int64) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE stock <= critical_level`
	args := []any{}
	if len(ids) > 0 {
		query += ` AND id = ANY($1)`
		args = append(args, ids)
	}
	rows, err := r.db.Query(ctx, query+` ORDER BY stock, id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
