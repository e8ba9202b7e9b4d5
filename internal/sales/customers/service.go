package customers

import (
	"context"
	"strconv"
	"strings"

	"github.com/carpetdist/carpet-erp/internal/shared"
)

type Service struct {
	repo  Repository
	hooks shared.CommitHooks
}

func NewService(repo Repository, hooks shared.CommitHooks) *Service {
	return &Service{repo: repo, hooks: hooks}
}

func (s *Service) List(ctx context.Context, filters ListFilters) ([]Customer, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Customer, error) {
	if id <= 0 {
		return Customer{}, ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, input CreateInput) (Customer, error) {
	customer := Customer{
		Type:          input.Type,
		Name:          strings.TrimSpace(input.Name),
		ContactPerson: input.ContactPerson,
		Phone:         input.Phone,
		Email:         input.Email,
		City:          input.City,
		District:      input.District,
		Address:       input.Address,
		TaxOffice:     input.TaxOffice,
		TaxNumber:     input.TaxNumber,
		NationalID:    input.NationalID,
		Balance:       shared.RoundMoney(input.Balance),
	}
	if customer.Type == "" {
		customer.Type = CustomerTypeIndividual
	}
	if err := validate(customer); err != nil {
		return Customer{}, err
	}
	created, err := s.repo.Create(ctx, customer)
	if err != nil {
		return Customer{}, err
	}
	s.hooks.Committed(ctx, shared.AuditLog{
		Action:   "customer.create",
		Entity:   "customer",
		EntityID: strconv.FormatInt(created.ID, 10),
		Meta:     map[string]any{"opening_balance": created.Balance.String()},
	})
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (Customer, error) {
	if id <= 0 {
		return Customer{}, ErrInvalidID
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Customer{}, err
	}
	updated := input.apply(current)
	updated.Name = strings.TrimSpace(updated.Name)
	if err := validate(updated); err != nil {
		return Customer{}, err
	}
	if err := s.repo.Update(ctx, id, updated); err != nil {
		return Customer{}, err
	}
	s.hooks.Committed(ctx, shared.AuditLog{Action: "customer.update", Entity: "customer", EntityID: strconv.FormatInt(id, 10)})
	return updated, nil
}

// Delete removes the customer together with its sales and payments.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.hooks.Committed(ctx, shared.AuditLog{Action: "customer.delete", Entity: "customer", EntityID: strconv.FormatInt(id, 10)})
	return nil
}

// Statement returns the customer's movements with a running balance.
func (s *Service) Statement(ctx context.Context, id int64) (Statement, error) {
	customer, err := s.Get(ctx, id)
	if err != nil {
		return Statement{}, err
	}
	lines, err := s.repo.StatementLines(ctx, id)
	if err != nil {
		return Statement{}, err
	}
	return BuildStatement(customer, lines), nil
}

func validate(c Customer) error {
	if c.Name == "" {
		return shared.Validationf("customer name is required")
	}
	if c.Type != CustomerTypeIndividual && c.Type != CustomerTypeCorporate {
		return ErrInvalidType
	}
	return nil
}
