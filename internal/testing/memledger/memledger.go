// Package memledger keeps products, customers and suppliers in memory behind
// the same Ledger interfaces the Postgres repositories expose, for workflow tests.
package memledger

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/carpetdist/carpet-erp/internal/masterdata/products"
	"github.com/carpetdist/carpet-erp/internal/masterdata/suppliers"
	"github.com/carpetdist/carpet-erp/internal/sales/customers"
)

// Store holds the ledger rows. Tests seed the maps directly.
type Store struct {
	mu        sync.Mutex
	Products  map[int64]products.Product
	Customers map[int64]customers.Customer
	Suppliers map[int64]suppliers.Supplier

	// FailAdjustStockAfter makes the nth AdjustStock call fail, 0 disables.
	FailAdjustStockAfter int
	adjustCalls          int
}

// New returns an empty store.
func New() *Store {
	return &Store{
		Products:  make(map[int64]products.Product),
		Customers: make(map[int64]customers.Customer),
		Suppliers: make(map[int64]suppliers.Supplier),
	}
}

// Snapshot captures the current rows and returns a func restoring them.
func (s *Store) Snapshot() (restore func()) {
	s.mu.Lock()
	p, c, sup := maps.Clone(s.Products), maps.Clone(s.Customers), maps.Clone(s.Suppliers)
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.Products, s.Customers, s.Suppliers = p, c, sup
	}
}

// Stock returns a product's stock, or -1 when it does not exist.
func (s *Store) Stock(id int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.Products[id]
	if !ok {
		return -1
	}
	return p.Stock
}

// CustomerBalance returns the balance of a customer.
func (s *Store) CustomerBalance(id int64) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Customers[id].Balance
}

// SupplierBalance returns the balance of a supplier.
func (s *Store) SupplierBalance(id int64) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Suppliers[id].Balance
}

func (s *Store) ProductLedger() products.Ledger   { return productLedger{s} }
func (s *Store) CustomerLedger() customers.Ledger { return customerLedger{s} }
func (s *Store) SupplierLedger() suppliers.Ledger { return supplierLedger{s} }

type productLedger struct{ s *Store }

func (l productLedger) GetForUpdate(ctx context.Context, id int64) (products.Product, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	p, ok := l.s.Products[id]
	if !ok {
		return products.Product{}, fmt.Errorf("%w: id %d", products.ErrNotFound, id)
	}
	return p, nil
}

func (l productLedger) AdjustStock(ctx context.Context, id int64, delta int) (int, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	l.s.adjustCalls++
	if l.s.FailAdjustStockAfter > 0 && l.s.adjustCalls >= l.s.FailAdjustStockAfter {
		return 0, fmt.Errorf("memledger: injected stock failure")
	}
	p, ok := l.s.Products[id]
	if !ok {
		return 0, fmt.Errorf("%w: id %d", products.ErrNotFound, id)
	}
	p.Stock += delta
	l.s.Products[id] = p
	return p.Stock, nil
}

type customerLedger struct{ s *Store }

func (l customerLedger) GetForUpdate(ctx context.Context, id int64) (customers.Customer, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	c, ok := l.s.Customers[id]
	if !ok {
		return customers.Customer{}, fmt.Errorf("%w: id %d", customers.ErrNotFound, id)
	}
	return c, nil
}

func (l customerLedger) AdjustBalance(ctx context.Context, id int64, delta decimal.Decimal) (decimal.Decimal, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	c, ok := l.s.Customers[id]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: id %d", customers.ErrNotFound, id)
	}
	c.Balance = c.Balance.Add(delta)
	l.s.Customers[id] = c
	return c.Balance, nil
}

type supplierLedger struct{ s *Store }

func (l supplierLedger) GetForUpdate(ctx context.Context, id int64) (suppliers.Supplier, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	sup, ok := l.s.Suppliers[id]
	if !ok {
		return suppliers.Supplier{}, fmt.Errorf("%w: id %d", suppliers.ErrNotFound, id)
	}
	return sup, nil
}

func (l supplierLedger) FindByNameForUpdate(ctx context.Context, name string) (suppliers.Supplier, bool, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	name = suppliers.NormalizeName(name)
	if name == "" {
		return suppliers.Supplier{}, false, nil
	}
	ids := make([]int64, 0, len(l.s.Suppliers))
	for id := range l.s.Suppliers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if sup := l.s.Suppliers[id]; suppliers.NormalizeName(sup.Name) == name {
			return sup, true, nil
		}
	}
	return suppliers.Supplier{}, false, nil
}

func (l supplierLedger) AdjustBalance(ctx context.Context, id int64, delta decimal.Decimal) (decimal.Decimal, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	sup, ok := l.s.Suppliers[id]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: id %d", suppliers.ErrNotFound, id)
	}
	sup.Balance = sup.Balance.Add(delta)
	l.s.Suppliers[id] = sup
	return sup.Balance, nil
}
