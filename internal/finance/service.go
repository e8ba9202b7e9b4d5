package finance

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/carpetdist/carpet-erp/internal/shared"
)

const idempotencyModule = "finance.payment"

// RepositoryPort describes repository operations used by Service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	Stats(ctx context.Context) (Stats, error)
	History(ctx context.Context, filters HistoryFilters) ([]Payment, error)
}

// IdempotencyPort guards request keys.
type IdempotencyPort interface {
	CheckAndInsert(ctx context.Context, key, module string) error
	Delete(ctx context.Context, key string) error
}

// Service orchestrates payment flows.
type Service struct {
	repo        RepositoryPort
	hooks       shared.CommitHooks
	idempotency IdempotencyPort
	logger      *slog.Logger
	now         func() time.Time
}

// NewService constructs the finance service. idem may be nil.
func NewService(repo RepositoryPort, hooks shared.CommitHooks, idem IdempotencyPort, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, hooks: hooks, idempotency: idem, logger: logger, now: time.Now}
}

// RecordPayment journals a payment and moves the party balance atomically.
func (s *Service) RecordPayment(ctx context.Context, input PaymentInput, key string) (Payment, error) {
	party, err := NewParty(input.PartyType, input.PartyID)
	if err != nil {
		return Payment{}, err
	}
	if key != "" && s.idempotency != nil {
		if err := s.idempotency.CheckAndInsert(ctx, key, idempotencyModule); err != nil {
			return Payment{}, err
		}
	}

	rec := Record{
		Type:        input.Type,
		Party:       party,
		Amount:      input.Amount,
		Method:      input.Method,
		Description: input.Description,
		Date:        input.Date,
	}
	var p Payment
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		var err error
		p, err = RecordPayment(ctx, tx, rec, s.now())
		return err
	})
	if err != nil {
		if key != "" && s.idempotency != nil {
			if derr := s.idempotency.Delete(context.WithoutCancel(ctx), key); derr != nil {
				s.logger.Warn("release idempotency key", slog.String("key", key), slog.Any("error", derr))
			}
		}
		return Payment{}, err
	}

	s.hooks.Committed(ctx, shared.AuditLog{
		Action:   "payment.record",
		Entity:   "payment",
		EntityID: strconv.FormatInt(p.ID, 10),
		Meta: map[string]any{
			"type":       string(p.Type),
			"party_type": string(p.PartyType),
			"party_id":   p.PartyID,
			"amount":     p.Amount.String(),
		},
	})
	return p, nil
}

// Stats returns total receivables and payables.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}

// History lists payments newest first.
func (s *Service) History(ctx context.Context, filters HistoryFilters) ([]Payment, error) {
	if filters.PartyType != "" {
		if _, err := NewParty(filters.PartyType, 0); err != nil {
			return nil, err
		}
	}
	return s.repo.History(ctx, filters)
}
