package orders

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/carpetdist/carpet-erp/internal/shared"
)

const idempotencyModule = "sales.create"

// RepositoryPort describes repository operations used by Service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	Get(ctx context.Context, id uuid.UUID) (Sale, error)
	List(ctx context.Context, filters ListFilters, limit, offset int) ([]Sale, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}

// IdempotencyPort guards request keys.
type IdempotencyPort interface {
	CheckAndInsert(ctx context.Context, key, module string) error
	Delete(ctx context.Context, key string) error
}

// AlertPort schedules low stock notifications.
type AlertPort interface {
	EnqueueLowStockAlert(ctx context.Context, productIDs []int64) error
}

// Service orchestrates sales flows.
type Service struct {
	repo        RepositoryPort
	hooks       shared.CommitHooks
	idempotency IdempotencyPort
	alerts      AlertPort
	logger      *slog.Logger
	now         func() time.Time
}

// NewService constructs the sales service. idem and alerts may be nil.
func NewService(repo RepositoryPort, hooks shared.CommitHooks, idem IdempotencyPort, alerts AlertPort, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, hooks: hooks, idempotency: idem, alerts: alerts, logger: logger, now: time.Now}
}

// Create books a sale atomically. A non-empty key makes the call idempotent.
func (s *Service) Create(ctx context.Context, input CreateSaleInput, key string) (Sale, error) {
	if key != "" && s.idempotency != nil {
		if err := s.idempotency.CheckAndInsert(ctx, key, idempotencyModule); err != nil {
			return Sale{}, err
		}
	}

	var created Created
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		var err error
		created, err = CreateSale(ctx, tx, input, s.now())
		return err
	})
	if err != nil {
		s.releaseKey(ctx, key)
		return Sale{}, err
	}

	sale := created.Sale
	meta := map[string]any{"total": sale.TotalAmount.String(), "items": len(sale.Items)}
	if sale.CustomerID != nil {
		meta["customer_id"] = *sale.CustomerID
	}
	s.hooks.Committed(ctx, shared.AuditLog{Action: "sale.create", Entity: "sale", EntityID: sale.ID.String(), Meta: meta})

	if len(created.LowStock) > 0 && s.alerts != nil {
		if err := s.alerts.EnqueueLowStockAlert(ctx, created.LowStock); err != nil {
			s.logger.Warn("enqueue low stock alert", slog.String("sale_id", sale.ID.String()), slog.Any("error", err))
		}
	}
	return sale, nil
}

// Get returns one sale with its items.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Sale, error) {
	return s.repo.Get(ctx, id)
}

// List returns a filtered page of sales. Status "All" disables the filter.
func (s *Service) List(ctx context.Context, filters ListFilters) (Page, error) {
	if filters.Status == "All" {
		filters.Status = ""
	}
	if filters.Status != "" && !filters.Status.Valid() {
		return Page{}, fmt.Errorf("%w: %q", ErrInvalidStatus, filters.Status)
	}
	pg := shared.NewPagination(filters.Page, filters.Limit, 0)
	sales, total, err := s.repo.List(ctx, filters, pg.Limit, pg.Offset())
	if err != nil {
		return Page{}, err
	}
	return Page{Data: sales, Pagination: shared.NewPagination(pg.Page, pg.Limit, total)}, nil
}

// UpdateStatus changes the fulfilment status without touching stock or balances.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (Sale, error) {
	if !status.Valid() {
		return Sale{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	before, err := s.repo.Get(ctx, id)
	if err != nil {
		return Sale{}, err
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return Sale{}, err
	}
	s.hooks.Committed(ctx, shared.AuditLog{
		Action:   "sale.status",
		Entity:   "sale",
		EntityID: id.String(),
		Meta:     map[string]any{"from": string(before.Status), "to": string(status)},
	})
	before.Status = status
	return before, nil
}

func (s *Service) releaseKey(ctx context.Context, key string) {
	if key == "" || s.idempotency == nil {
		return
	}
	if err := s.idempotency.Delete(context.WithoutCancel(ctx), key); err != nil {
		s.logger.Warn("release idempotency key", slog.String("key", key), slog.Any("error", err))
	}
}
