package procurement

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/carpetdist/carpet-erp/internal/shared"
)

// RepositoryPort describes repository operations used by Service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	Get(ctx context.Context, id uuid.UUID) (Purchase, error)
	List(ctx context.Context, filters ListFilters) ([]Purchase, error)
}

// AlertPort schedules low stock notifications.
type AlertPort interface {
	EnqueueLowStockAlert(ctx context.Context, productIDs []int64) error
}

// Service orchestrates purchase flows.
type Service struct {
	repo     RepositoryPort
	estimate CostEstimator
	hooks    shared.CommitHooks
	alerts   AlertPort
	logger   *slog.Logger
	now      func() time.Time
}

// NewService constructs the procurement service. A nil estimate uses
// DefaultCostEstimator; alerts may be nil.
func NewService(repo RepositoryPort, estimate CostEstimator, hooks shared.CommitHooks, alerts AlertPort, logger *slog.Logger) *Service {
	if estimate == nil {
		estimate = DefaultCostEstimator
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, estimate: estimate, hooks: hooks, alerts: alerts, logger: logger, now: time.Now}
}

// Create records a purchase and credits the matched supplier.
func (s *Service) Create(ctx context.Context, input CreateInput) (Purchase, error) {
	var p Purchase
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		var err error
		p, err = CreatePurchase(ctx, tx, input, s.estimate, s.now())
		return err
	})
	if err != nil {
		return Purchase{}, err
	}

	meta := map[string]any{"total": p.TotalAmount.String(), "factory": p.FactoryName}
	if p.SupplierID != nil {
		meta["supplier_id"] = *p.SupplierID
	} else {
		s.logger.Warn("purchase not attributed to a supplier", slog.String("purchase_id", p.ID.String()), slog.String("factory", p.FactoryName))
	}
	s.hooks.Committed(ctx, shared.AuditLog{Action: "purchase.create", Entity: "purchase", EntityID: p.ID.String(), Meta: meta})
	return p, nil
}

// Get returns one purchase with its items.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Purchase, error) {
	return s.repo.Get(ctx, id)
}

// List returns purchases newest first.
func (s *Service) List(ctx context.Context, filters ListFilters) ([]Purchase, error) {
	if filters.Status != "" && !filters.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, filters.Status)
	}
	return s.repo.List(ctx, filters)
}

// UpdateStatus changes the purchase status, moving stock across RECEIVED.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (Purchase, error) {
	return s.transition(ctx, id, "purchase.status", func(ctx context.Context, tx TxRepository) (Transition, error) {
		return UpdateStatus(ctx, tx, id, status, s.now())
	})
}

// Receive books the goods of a purchase into stock exactly once.
func (s *Service) Receive(ctx context.Context, id uuid.UUID) (Purchase, error) {
	return s.transition(ctx, id, "purchase.receive", func(ctx context.Context, tx TxRepository) (Transition, error) {
		return ReceivePurchase(ctx, tx, id, s.now())
	})
}

// Edit updates header fields and line prices or quantities.
func (s *Service) Edit(ctx context.Context, id uuid.UUID, input EditInput) (Purchase, error) {
	var before, after Purchase
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		var err error
		if before, err = tx.GetForUpdate(ctx, id); err != nil {
			return err
		}
		after, err = EditPurchase(ctx, tx, id, input, s.now())
		return err
	})
	if err != nil {
		return Purchase{}, err
	}
	s.hooks.Committed(ctx, shared.AuditLog{
		Action:   "purchase.edit",
		Entity:   "purchase",
		EntityID: id.String(),
		Meta:     map[string]any{"from_total": before.TotalAmount.String(), "to_total": after.TotalAmount.String()},
	})
	return after, nil
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, action string, fn func(context.Context, TxRepository) (Transition, error)) (Purchase, error) {
	var out Transition
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		var err error
		out, err = fn(ctx, tx)
		return err
	})
	if err != nil {
		return Purchase{}, err
	}
	s.hooks.Committed(ctx, shared.AuditLog{
		Action:   action,
		Entity:   "purchase",
		EntityID: id.String(),
		Meta:     map[string]any{"from": string(out.From), "to": string(out.Purchase.Status), "stock_direction": out.Direction},
	})
	if len(out.LowStock) > 0 && s.alerts != nil {
		if err := s.alerts.EnqueueLowStockAlert(ctx, out.LowStock); err != nil {
			s.logger.Warn("enqueue low stock alert", slog.String("purchase_id", id.String()), slog.Any("error", err))
		}
	}
	return out.Purchase, nil
}
