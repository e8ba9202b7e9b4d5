package suppliers

import (
	"context"
	"strconv"

	"github.com/carpetdist/carpet-erp/internal/masterdata/shared"
	internalShared "github.com/carpetdist/carpet-erp/internal/shared"
)

type Service struct {
	repo  Repository
	hooks internalShared.CommitHooks
}

func NewService(repo Repository, hooks internalShared.CommitHooks) *Service {
	return &Service{repo: repo, hooks: hooks}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Supplier, int, error) {
	return s.repo.List(ctx, filters)
}

// Get returns the supplier with its catalog.
func (s *Service) Get(ctx context.Context, id int64) (Detail, error) {
	if id <= 0 {
		return Detail{}, shared.ErrInvalidID
	}
	supplier, err := s.repo.Get(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	catalog, err := s.repo.ListProducts(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	return Detail{Supplier: supplier, Products: catalog}, nil
}

func (s *Service) Create(ctx context.Context, input CreateInput) (Supplier, error) {
	supplier := Supplier{
		Name:        NormalizeName(input.Name),
		Type:        input.Type,
		Balance:     internalShared.RoundMoney(input.Balance),
		ContactInfo: input.ContactInfo,
		Address:     input.Address,
	}
	if err := s.validate(supplier); err != nil {
		return Supplier{}, err
	}
	created, err := s.repo.Create(ctx, supplier)
	if err != nil {
		return Supplier{}, err
	}
	s.hooks.Committed(ctx, internalShared.AuditLog{
		Action:   "supplier.create",
		Entity:   "supplier",
		EntityID: strconv.FormatInt(created.ID, 10),
		Meta:     map[string]any{"name": created.Name, "opening_balance": created.Balance.String()},
	})
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (Supplier, error) {
	if id <= 0 {
		return Supplier{}, shared.ErrInvalidID
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Supplier{}, err
	}
	updated := input.apply(current)
	if err := s.validate(updated); err != nil {
		return Supplier{}, err
	}
	if err := s.repo.Update(ctx, id, updated); err != nil {
		return Supplier{}, err
	}
	s.hooks.Committed(ctx, internalShared.AuditLog{
		Action:   "supplier.update",
		Entity:   "supplier",
		EntityID: strconv.FormatInt(id, 10),
	})
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.hooks.Committed(ctx, internalShared.AuditLog{
		Action:   "supplier.delete",
		Entity:   "supplier",
		EntityID: strconv.FormatInt(id, 10),
	})
	return nil
}

// AddProduct links a product into the supplier catalog.
func (s *Service) AddProduct(ctx context.Context, supplierID, productID int64) error {
	if supplierID <= 0 || productID <= 0 {
		return shared.ErrInvalidID
	}
	if err := s.repo.AddProduct(ctx, supplierID, productID); err != nil {
		return err
	}
	s.hooks.Committed(ctx, internalShared.AuditLog{
		Action:   "supplier.catalog.add",
		Entity:   "supplier",
		EntityID: strconv.FormatInt(supplierID, 10),
		Meta:     map[string]any{"product_id": productID},
	})
	return nil
}

// RemoveProduct unlinks a product from the supplier catalog.
func (s *Service) RemoveProduct(ctx context.Context, supplierID, productID int64) error {
	if supplierID <= 0 || productID <= 0 {
		return shared.ErrInvalidID
	}
	if err := s.repo.RemoveProduct(ctx, supplierID, productID); err != nil {
		return err
	}
	s.hooks.Committed(ctx, internalShared.AuditLog{
		Action:   "supplier.catalog.remove",
		Entity:   "supplier",
		EntityID: strconv.FormatInt(supplierID, 10),
		Meta:     map[string]any{"product_id": productID},
	})
	return nil
}
