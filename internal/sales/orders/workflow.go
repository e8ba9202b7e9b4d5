package orders

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carpetdist/carpet-erp/internal/masterdata/products"
	"github.com/carpetdist/carpet-erp/internal/sales/customers"
	"github.com/carpetdist/carpet-erp/internal/shared"
)

// TxRepository is the unit of work CreateSale runs against. Every method
// shares one transaction.
type TxRepository interface {
	Products() products.Ledger
	Customers() customers.Ledger
	InsertSale(ctx context.Context, sale Sale) error
	InsertItem(ctx context.Context, item SaleItem) (int64, error)
}

// Created is a committed sale plus the products it pushed to or below their
// critical level.
type Created struct {
	Sale     Sale
	LowStock []int64
}

// CreateSale books a sale inside tx: it checks and decrements stock for every
// line, snapshots name and price, persists the sale and charges the customer.
// Any error leaves tx to be rolled back by the caller.
func CreateSale(ctx context.Context, tx TxRepository, input CreateSaleInput, now time.Time) (Created, error) {
	if len(input.Items) == 0 {
		return Created{}, ErrNoItems
	}
	status := input.Status
	if status == "" {
		status = StatusPreparing
	}
	if !status.Valid() {
		return Created{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	date := now
	if input.Date != nil {
		date = *input.Date
	}

	sale := Sale{
		ID:          uuid.New(),
		CustomerID:  input.CustomerID,
		Status:      status,
		Date:        date,
		TotalAmount: decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Lock order is customer first, then products by ascending id.
	if input.CustomerID != nil {
		customer, err := tx.Customers().GetForUpdate(ctx, *input.CustomerID)
		if err != nil {
			return Created{}, err
		}
		sale.CustomerName = customer.Name
	}
	locked, err := lockProducts(ctx, tx.Products(), input.Items)
	if err != nil {
		return Created{}, err
	}

	items := make([]SaleItem, 0, len(input.Items))
	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return Created{}, shared.Validationf("quantity for product %d must be positive", line.ProductID)
		}
		product := locked[line.ProductID]
		if line.Quantity > product.Stock {
			return Created{}, &products.InsufficientStockError{
				ProductID: product.ID,
				Product:   product.Name,
				Requested: line.Quantity,
				Available: product.Stock,
			}
		}
		stock, err := tx.Products().AdjustStock(ctx, product.ID, -line.Quantity)
		if err != nil {
			return Created{}, fmt.Errorf("orders: decrement stock for product %d: %w", product.ID, err)
		}
		product.Stock = stock
		locked[product.ID] = product

		item := SaleItem{
			SaleID:      sale.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   product.Price,
			TotalPrice:  shared.LineTotal(product.Price, line.Quantity),
		}
		sale.TotalAmount = sale.TotalAmount.Add(item.TotalPrice)
		items = append(items, item)
	}

	if err := tx.InsertSale(ctx, sale); err != nil {
		return Created{}, fmt.Errorf("orders: insert sale: %w", err)
	}
	for i := range items {
		id, err := tx.InsertItem(ctx, items[i])
		if err != nil {
			return Created{}, fmt.Errorf("orders: insert sale item: %w", err)
		}
		items[i].ID = id
	}
	sale.Items = items

	if input.CustomerID != nil {
		if _, err := tx.Customers().AdjustBalance(ctx, *input.CustomerID, sale.TotalAmount.Neg()); err != nil {
			return Created{}, fmt.Errorf("orders: charge customer %d: %w", *input.CustomerID, err)
		}
	}

	var low []int64
	for _, id := range sortedIDs(input.Items) {
		if locked[id].IsCritical() {
			low = append(low, id)
		}
	}
	return Created{Sale: sale, LowStock: low}, nil
}

func lockProducts(ctx context.Context, ledger products.Ledger, lines []LineInput) (map[int64]products.Product, error) {
	locked := make(map[int64]products.Product, len(lines))
	for _, id := range sortedIDs(lines) {
		p, err := ledger.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		locked[id] = p
	}
	return locked, nil
}

func sortedIDs(lines []LineInput) []int64 {
	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}
