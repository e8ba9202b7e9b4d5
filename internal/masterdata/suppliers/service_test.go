package suppliers

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/carpetdist/carpet-erp/internal/masterdata/products"
	"github.com/carpetdist/carpet-erp/internal/masterdata/shared"
	internalShared "github.com/carpetdist/carpet-erp/internal/shared"
)

type memoryRepo struct {
	suppliers map[int64]Supplier
	products  map[int64]products.Product
	catalog   map[int64]map[int64]bool
	nextID    int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		suppliers: make(map[int64]Supplier),
		products:  make(map[int64]products.Product),
		catalog:   make(map[int64]map[int64]bool),
	}
}

func (r *memoryRepo) List(ctx context.Context, filters shared.ListFilters) ([]Supplier, int, error) {
	out := []Supplier{}
	for _, s := range r.suppliers {
		out = append(out, s)
	}
	return out, len(out), nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return Supplier{}, ErrNotFound
	}
	return s, nil
}

func (r *memoryRepo) Create(ctx context.Context, supplier Supplier) (Supplier, error) {
	r.nextID++
	supplier.ID = r.nextID
	r.suppliers[supplier.ID] = supplier
	return supplier, nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, supplier Supplier) error {
	if _, ok := r.suppliers[id]; !ok {
		return ErrNotFound
	}
	r.suppliers[id] = supplier
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.suppliers[id]; !ok {
		return ErrNotFound
	}
	delete(r.suppliers, id)
	delete(r.catalog, id)
	return nil
}

func (r *memoryRepo) ListProducts(ctx context.Context, supplierID int64) ([]products.Product, error) {
	out := []products.Product{}
	for pid := range r.catalog[supplierID] {
		out = append(out, r.products[pid])
	}
	return out, nil
}

func (r *memoryRepo) AddProduct(ctx context.Context, supplierID, productID int64) error {
	if _, ok := r.suppliers[supplierID]; !ok {
		return ErrNotFound
	}
	if _, ok := r.products[productID]; !ok {
		return products.ErrNotFound
	}
	if r.catalog[supplierID] == nil {
		r.catalog[supplierID] = make(map[int64]bool)
	}
	r.catalog[supplierID][productID] = true
	return nil
}

func (r *memoryRepo) RemoveProduct(ctx context.Context, supplierID, productID int64) error {
	delete(r.catalog[supplierID], productID)
	return nil
}

func TestNormalizeName(t *testing.T) {
	composed := "Y\u0131ld\u0131z Hal\u0131 \u00c7"
	decomposed := "Y\u0131ld\u0131z Hal\u0131 C\u0327"
	require.NotEqual(t, composed, decomposed)
	require.Equal(t, composed, NormalizeName("  "+decomposed+"\t"))
	require.Equal(t, "", NormalizeName("   "))
}

func TestCreateNormalisesNameAndKeepsOpeningBalance(t *testing.T) {
	svc := NewService(newMemoryRepo(), internalShared.CommitHooks{})

	created, err := svc.Create(context.Background(), CreateInput{Name: "  Merinos Factory ", Type: "Factory", Balance: decimal.RequireFromString("100.005")})
	require.NoError(t, err)
	require.Equal(t, "Merinos Factory", created.Name)
	require.Equal(t, "100.01", created.Balance.StringFixed(2))
}

func TestCreateRequiresName(t *testing.T) {
	svc := NewService(newMemoryRepo(), internalShared.CommitHooks{})

	_, err := svc.Create(context.Background(), CreateInput{Name: "   "})
	require.ErrorIs(t, err, internalShared.ErrValidation)
}

func TestCatalogLinkAndDetail(t *testing.T) {
	repo := newMemoryRepo()
	repo.products[7] = products.Product{ID: 7, Name: "Kashan", SKU: "KSH"}
	svc := NewService(repo, internalShared.CommitHooks{})
	created, err := svc.Create(context.Background(), CreateInput{Name: "Merinos"})
	require.NoError(t, err)

	require.NoError(t, svc.AddProduct(context.Background(), created.ID, 7))
	require.ErrorIs(t, svc.AddProduct(context.Background(), created.ID, 8), internalShared.ErrNotFound)

	detail, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, detail.Products, 1)
	require.Equal(t, "KSH", detail.Products[0].SKU)

	require.NoError(t, svc.RemoveProduct(context.Background(), created.ID, 7))
	detail, err = svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Empty(t, detail.Products)
}

func TestUpdateDoesNotTouchBalance(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, internalShared.CommitHooks{})
	created, err := svc.Create(context.Background(), CreateInput{Name: "Merinos", Balance: decimal.NewFromInt(500)})
	require.NoError(t, err)

	addr := "Gaziantep"
	updated, err := svc.Update(context.Background(), created.ID, UpdateInput{Address: &addr})
	require.NoError(t, err)
	require.Equal(t, "Gaziantep", updated.Address)
	require.True(t, updated.Balance.Equal(decimal.NewFromInt(500)))
}

func TestCreateRejectsOversizedFields(t *testing.T) {
	svc := NewService(newMemoryRepo(), internalShared.CommitHooks{})

	_, err := svc.Create(context.Background(), CreateInput{Name: strings.Repeat("ş", maxNameLength+1)})
	require.ErrorIs(t, err, internalShared.ErrValidation)

	_, err = svc.Create(context.Background(), CreateInput{Name: strings.Repeat("ş", maxNameLength)})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateInput{Name: "Atlas", Address: strings.Repeat("a", maxContactLength+1)})
	require.ErrorIs(t, err, internalShared.ErrValidation)
}
