package customers

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/carpetdist/carpet-erp/internal/shared"
)

type memoryRepo struct {
	customers map[int64]Customer
	lines     map[int64][]StatementLine
	nextID    int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{customers: make(map[int64]Customer), lines: make(map[int64][]StatementLine)}
}

func (r *memoryRepo) List(ctx context.Context, filters ListFilters) ([]Customer, error) {
	out := []Customer{}
	for _, c := range r.customers {
		out = append(out, c)
	}
	return out, nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return Customer{}, ErrNotFound
	}
	return c, nil
}

func (r *memoryRepo) Create(ctx context.Context, c Customer) (Customer, error) {
	r.nextID++
	c.ID = r.nextID
	r.customers[c.ID] = c
	return c, nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, c Customer) error {
	if _, ok := r.customers[id]; !ok {
		return ErrNotFound
	}
	r.customers[id] = c
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.customers[id]; !ok {
		return ErrNotFound
	}
	delete(r.customers, id)
	delete(r.lines, id)
	return nil
}

func (r *memoryRepo) StatementLines(ctx context.Context, customerID int64) ([]StatementLine, error) {
	return r.lines[customerID], nil
}

func TestCreateDefaultsToIndividual(t *testing.T) {
	svc := NewService(newMemoryRepo(), shared.CommitHooks{})

	created, err := svc.Create(context.Background(), CreateInput{Name: "  Ayşe Yılmaz "})
	require.NoError(t, err)
	require.Equal(t, CustomerTypeIndividual, created.Type)
	require.Equal(t, "Ayşe Yılmaz", created.Name)
	require.True(t, created.Balance.IsZero())
}

func TestCreateRejectsUnknownType(t *testing.T) {
	svc := NewService(newMemoryRepo(), shared.CommitHooks{})

	_, err := svc.Create(context.Background(), CreateInput{Name: "X", Type: "government"})
	require.ErrorIs(t, err, ErrInvalidType)
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestUpdateLeavesBalanceAlone(t *testing.T) {
	svc := NewService(newMemoryRepo(), shared.CommitHooks{})
	created, err := svc.Create(context.Background(), CreateInput{Name: "Kaya Mobilya", Type: CustomerTypeCorporate, Balance: decimal.NewFromInt(-700)})
	require.NoError(t, err)

	city := "Konya"
	updated, err := svc.Update(context.Background(), created.ID, UpdateInput{City: &city})
	require.NoError(t, err)
	require.Equal(t, "Konya", updated.City)
	require.Equal(t, "-700", updated.Balance.String())
}

func TestStatementForMissingCustomer(t *testing.T) {
	svc := NewService(newMemoryRepo(), shared.CommitHooks{})

	_, err := svc.Statement(context.Background(), 5)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteMissingCustomer(t *testing.T) {
	svc := NewService(newMemoryRepo(), shared.CommitHooks{})

	require.ErrorIs(t, svc.Delete(context.Background(), 5), ErrNotFound)
	require.ErrorIs(t, svc.Delete(context.Background(), 0), ErrInvalidID)
}
