package products

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

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Product, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	if id <= 0 {
		return Product{}, shared.ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, input CreateInput) (Product, error) {
	product := Product{
		Name:          input.Name,
		SKU:           input.SKU,
		Brand:         input.Brand,
		Category:      input.Category,
		Size:          input.Size,
		Stock:         input.Stock,
		CriticalLevel: DefaultCriticalLevel,
		Price:         internalShared.RoundMoney(input.Price),
		ImageURL:      input.ImageURL,
	}
	if input.CriticalLevel != nil {
		product.CriticalLevel = *input.CriticalLevel
	}
	if err := s.validate(product); err != nil {
		return Product{}, err
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return Product{}, err
	}
	s.hooks.Committed(ctx, internalShared.AuditLog{
		Action:   "product.create",
		Entity:   "product",
		EntityID: strconv.FormatInt(created.ID, 10),
		Meta:     map[string]any{"sku": created.SKU, "stock": created.Stock},
	})
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (Product, error) {
	if id <= 0 {
		return Product{}, shared.ErrInvalidID
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	updated := input.apply(current)
	updated.Price = internalShared.RoundMoney(updated.Price)
	if err := s.validate(updated); err != nil {
		return Product{}, err
	}
	if err := s.repo.Update(ctx, id, updated); err != nil {
		return Product{}, err
	}
	meta := map[string]any{"sku": updated.SKU}
	if updated.Stock != current.Stock {
		meta["stock_before"] = current.Stock
		meta["stock_after"] = updated.Stock
	}
	s.hooks.Committed(ctx, internalShared.AuditLog{
		Action:   "product.update",
		Entity:   "product",
		EntityID: strconv.FormatInt(id, 10),
		Meta:     meta,
	})
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.hooks.Committed(ctx, internalShared.AuditLog{
		Action:   "product.delete",
		Entity:   "product",
		EntityID: strconv.FormatInt(id, 10),
	})
	return nil
}
