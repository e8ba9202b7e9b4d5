package procurement

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carpetdist/carpet-erp/internal/masterdata/products"
	"github.com/carpetdist/carpet-erp/internal/masterdata/suppliers"
	"github.com/carpetdist/carpet-erp/internal/shared"
)

// TxRepository is the unit of work the purchase workflows run against.
// Every method shares one transaction.
type TxRepository interface {
	Products() products.Ledger
	Suppliers() suppliers.Ledger
	InsertPurchase(ctx context.Context, p Purchase) error
	InsertItem(ctx context.Context, item PurchaseItem) (int64, error)
	// GetForUpdate locks the purchase row and returns it with its items.
	GetForUpdate(ctx context.Context, id uuid.UUID) (Purchase, error)
	UpdatePurchase(ctx context.Context, p Purchase) error
	UpdateItem(ctx context.Context, item PurchaseItem) error
}

// Transition is the outcome of a status change.
type Transition struct {
	Purchase Purchase
	From     Status
	// Direction is +1 when goods entered stock, -1 when they left it and 0
	// when stock was untouched.
	Direction int
	LowStock  []int64
}

// CreatePurchase records a purchase, attributes it to a supplier and adds its
// total to that supplier's balance. Stock is untouched until receipt.
func CreatePurchase(ctx context.Context, tx TxRepository, input CreateInput, estimate CostEstimator, now time.Time) (Purchase, error) {
	if len(input.Items) == 0 {
		return Purchase{}, shared.Validationf("purchase requires at least one item")
	}
	if estimate == nil {
		estimate = DefaultCostEstimator
	}

	p := Purchase{
		ID:                    uuid.New(),
		FactoryName:           strings.TrimSpace(input.FactoryName),
		Status:                StatusOrdered,
		Date:                  now,
		EstimatedDeliveryDate: input.EstimatedDeliveryDate,
		TotalAmount:           decimal.Zero,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	// Supplier before products, as in every other workflow.
	supplier, ok, err := resolveSupplier(ctx, tx.Suppliers(), input)
	if err != nil {
		return Purchase{}, err
	}
	if ok {
		p.SupplierID = &supplier.ID
		if p.FactoryName == "" {
			p.FactoryName = supplier.Name
		}
	}

	ids := make([]int64, 0, len(input.Items))
	for _, line := range input.Items {
		ids = append(ids, line.ProductID)
	}
	locked, err := lockProducts(ctx, tx.Products(), ids)
	if err != nil {
		return Purchase{}, err
	}

	items := make([]PurchaseItem, 0, len(input.Items))
	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return Purchase{}, shared.Validationf("quantity for product %d must be positive", line.ProductID)
		}
		product := locked[line.ProductID]
		price := estimate(product.Price)
		if line.UnitPrice != nil {
			if line.UnitPrice.IsNegative() {
				return Purchase{}, shared.Validationf("unit price for product %d must not be negative", line.ProductID)
			}
			price = shared.RoundMoney(*line.UnitPrice)
		}
		item := PurchaseItem{
			PurchaseID: p.ID,
			ProductID:  product.ID,
			ProductSKU: product.SKU,
			Quantity:   line.Quantity,
			UnitPrice:  price,
			TotalPrice: shared.LineTotal(price, line.Quantity),
		}
		p.TotalAmount = p.TotalAmount.Add(item.TotalPrice)
		items = append(items, item)
	}

	if err := tx.InsertPurchase(ctx, p); err != nil {
		return Purchase{}, fmt.Errorf("procurement: insert purchase: %w", err)
	}
	for i := range items {
		id, err := tx.InsertItem(ctx, items[i])
		if err != nil {
			return Purchase{}, fmt.Errorf("procurement: insert purchase item: %w", err)
		}
		items[i].ID = id
	}
	p.Items = items

	if p.SupplierID != nil {
		if _, err := tx.Suppliers().AdjustBalance(ctx, *p.SupplierID, p.TotalAmount); err != nil {
			return Purchase{}, fmt.Errorf("procurement: credit supplier %d: %w", *p.SupplierID, err)
		}
	}
	return p, nil
}

// An explicit supplier id wins over the factory name.
func resolveSupplier(ctx context.Context, ledger suppliers.Ledger, input CreateInput) (suppliers.Supplier, bool, error) {
	if input.SupplierID != nil {
		s, err := ledger.GetForUpdate(ctx, *input.SupplierID)
		if err != nil {
			return suppliers.Supplier{}, false, err
		}
		return s, true, nil
	}
	return ledger.FindByNameForUpdate(ctx, input.FactoryName)
}

// UpdateStatus moves a purchase to status. Entering RECEIVED adds every
// line's quantity to stock and leaving it takes the quantities back out.
// Other moves only change the label.
func UpdateStatus(ctx context.Context, tx TxRepository, id uuid.UUID, status Status, now time.Time) (Transition, error) {
	if !status.Valid() {
		return Transition{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	p, err := tx.GetForUpdate(ctx, id)
	if err != nil {
		return Transition{}, err
	}
	out := Transition{From: p.Status}

	switch {
	case p.Status != StatusReceived && status == StatusReceived:
		out.Direction = 1
	case p.Status == StatusReceived && status != StatusReceived:
		out.Direction = -1
	}

	if out.Direction != 0 {
		out.LowStock, err = moveStock(ctx, tx.Products(), p.Items, out.Direction)
		if err != nil {
			return Transition{}, err
		}
	}

	p.Status = status
	p.UpdatedAt = now
	if err := tx.UpdatePurchase(ctx, p); err != nil {
		return Transition{}, fmt.Errorf("procurement: update purchase: %w", err)
	}
	out.Purchase = p
	return out, nil
}

// ReceivePurchase is UpdateStatus to RECEIVED that refuses a purchase which
// is already received.
func ReceivePurchase(ctx context.Context, tx TxRepository, id uuid.UUID, now time.Time) (Transition, error) {
	p, err := tx.GetForUpdate(ctx, id)
	if err != nil {
		return Transition{}, err
	}
	if p.Status == StatusReceived {
		return Transition{}, ErrAlreadyReceived
	}
	return UpdateStatus(ctx, tx, id, StatusReceived, now)
}

// EditPurchase changes header fields and line prices or quantities. The total
// is recomputed and the attributed supplier's balance follows the difference.
// Quantities are frozen once the purchase is RECEIVED.
func EditPurchase(ctx context.Context, tx TxRepository, id uuid.UUID, input EditInput, now time.Time) (Purchase, error) {
	p, err := tx.GetForUpdate(ctx, id)
	if err != nil {
		return Purchase{}, err
	}
	if input.FactoryName != nil {
		name := strings.TrimSpace(*input.FactoryName)
		if name == "" {
			return Purchase{}, shared.Validationf("factoryName must not be empty")
		}
		p.FactoryName = name
	}
	if input.EstimatedDeliveryDate != nil {
		p.EstimatedDeliveryDate = input.EstimatedDeliveryDate
	}

	index := make(map[int64]int, len(p.Items))
	for i, it := range p.Items {
		index[it.ID] = i
	}
	changed := map[int]bool{}
	for _, edit := range input.Items {
		i, ok := index[edit.ID]
		if !ok {
			return Purchase{}, fmt.Errorf("%w: id %d", ErrItemNotFound, edit.ID)
		}
		item := p.Items[i]
		if edit.Quantity != nil && *edit.Quantity != item.Quantity {
			if *edit.Quantity <= 0 {
				return Purchase{}, shared.Validationf("quantity for item %d must be positive", edit.ID)
			}
			if p.Status == StatusReceived {
				return Purchase{}, ErrPurchaseLocked
			}
			item.Quantity = *edit.Quantity
		}
		if edit.UnitPrice != nil {
			if edit.UnitPrice.IsNegative() {
				return Purchase{}, shared.Validationf("unit price for item %d must not be negative", edit.ID)
			}
			item.UnitPrice = shared.RoundMoney(*edit.UnitPrice)
		}
		item.TotalPrice = shared.LineTotal(item.UnitPrice, item.Quantity)
		p.Items[i] = item
		changed[i] = true
	}

	previous := p.TotalAmount
	total := decimal.Zero
	for _, it := range p.Items {
		total = total.Add(it.TotalPrice)
	}
	p.TotalAmount = total
	p.UpdatedAt = now

	for i := range p.Items {
		if !changed[i] {
			continue
		}
		if err := tx.UpdateItem(ctx, p.Items[i]); err != nil {
			return Purchase{}, fmt.Errorf("procurement: update purchase item: %w", err)
		}
	}
	if err := tx.UpdatePurchase(ctx, p); err != nil {
		return Purchase{}, fmt.Errorf("procurement: update purchase: %w", err)
	}

	if delta := total.Sub(previous); p.SupplierID != nil && !delta.IsZero() {
		if _, err := tx.Suppliers().AdjustBalance(ctx, *p.SupplierID, delta); err != nil {
			return Purchase{}, fmt.Errorf("procurement: adjust supplier %d: %w", *p.SupplierID, err)
		}
	}
	return p, nil
}

func moveStock(ctx context.Context, ledger products.Ledger, items []PurchaseItem, direction int) ([]int64, error) {
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	locked, err := lockProducts(ctx, ledger, ids)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		stock, err := ledger.AdjustStock(ctx, it.ProductID, direction*it.Quantity)
		if err != nil {
			return nil, fmt.Errorf("procurement: adjust stock for product %d: %w", it.ProductID, err)
		}
		product := locked[it.ProductID]
		product.Stock = stock
		locked[it.ProductID] = product
	}
	var low []int64
	if direction < 0 {
		for _, id := range sortedUnique(ids) {
			if locked[id].IsCritical() {
				low = append(low, id)
			}
		}
	}
	return low, nil
}

func lockProducts(ctx context.Context, ledger products.Ledger, ids []int64) (map[int64]products.Product, error) {
	ids = sortedUnique(ids)
	locked := make(map[int64]products.Product, len(ids))
	for _, id := range ids {
		p, err := ledger.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		locked[id] = p
	}
	return locked, nil
}

func sortedUnique(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
