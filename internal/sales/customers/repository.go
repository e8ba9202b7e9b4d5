package customers

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carpetdist/carpet-erp/internal/platform/db"
)

const customerColumns = `id, type, name, contact_person, phone, email, city, district, address, tax_office, tax_number, national_id, balance, created_at, updated_at`

// ListFilters narrows customer listings.
type ListFilters struct {
	Search string
	Type   CustomerType
}

type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Customer, error)
	Get(ctx context.Context, id int64) (Customer, error)
	Create(ctx context.Context, customer Customer) (Customer, error)
	Update(ctx context.Context, id int64, customer Customer) error
	Delete(ctx context.Context, id int64) error
	StatementLines(ctx context.Context, customerID int64) ([]StatementLine, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE 1=1`
	args := []any{}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		p := strconv.Itoa(len(args))
		query += ` AND (name ILIKE $` + p + ` OR contact_person ILIKE $` + p + ` OR phone ILIKE $` + p + `)`
	}
	if filters.Type != "" {
		args = append(args, string(filters.Type))
		query += ` AND type = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	customers := []Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Customer, error) {
	c, err := scanCustomer(r.pool.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
	if db.IsNoRows(err) {
		return Customer{}, ErrNotFound
	}
	return c, err
}

func (r *repository) Create(ctx context.Context, c Customer) (Customer, error) {
	query := `INSERT INTO customers (type, name, contact_person, phone, email, city, district, address, tax_office, tax_number, national_id, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13) RETURNING id`
	now := time.Now()
	err := r.pool.QueryRow(ctx, query, string(c.Type), c.Name, c.ContactPerson, c.Phone, c.Email, c.City, c.District,
		c.Address, c.TaxOffice, c.TaxNumber, c.NationalID, c.Balance, now).Scan(&c.ID)
	if err != nil {
		return Customer{}, err
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	return c, nil
}

func (r *repository) Update(ctx context.Context, id int64, c Customer) error {
	query := `UPDATE customers SET type = $1, name = $2, contact_person = $3, phone = $4, email = $5, city = $6, district = $7,
		address = $8, tax_office = $9, tax_number = $10, national_id = $11, updated_at = $12 WHERE id = $13`
	tag, err := r.pool.Exec(ctx, query, string(c.Type), c.Name, c.ContactPerson, c.Phone, c.Email, c.City, c.District,
		c.Address, c.TaxOffice, c.TaxNumber, c.NationalID, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the customer with its payments and sales in one transaction.
// Sale items go with their sales through the foreign key cascade.
func (r *repository) Delete(ctx context.Context, id int64) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM payments WHERE party_type = 'customer' AND party_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM sales WHERE customer_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// StatementLines returns the balance movements of a customer, oldest first.
func (r *repository) StatementLines(ctx context.Context, customerID int64) ([]StatementLine, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT 'sale' AS kind, id::text AS reference, date, -total_amount AS delta, status AS description
		FROM sales WHERE customer_id = $1
		UNION ALL
		SELECT 'payment', id::text, date,
			CASE WHEN type = 'income' THEN amount ELSE -amount END,
			method || CASE WHEN description <> '' THEN ': ' || description ELSE '' END
		FROM payments WHERE party_type = 'customer' AND party_id = $1
		ORDER BY date, reference`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	lines := []StatementLine{}
	for rows.Next() {
		var l StatementLine
		if err := rows.Scan(&l.Kind, &l.Reference, &l.Date, &l.Delta, &l.Description); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func scanCustomer(row pgx.Row) (Customer, error) {
	var c Customer
	var typ string
	err := row.Scan(&c.ID, &typ, &c.Name, &c.ContactPerson, &c.Phone, &c.Email, &c.City, &c.District, &c.Address,
		&c.TaxOffice, &c.TaxNumber, &c.NationalID, &c.Balance, &c.CreatedAt, &c.UpdatedAt)
	c.Type = CustomerType(typ)
	return c, err
}
