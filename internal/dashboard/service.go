package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// RepositoryPort lists the aggregates the overview needs.
type RepositoryPort interface {
	Revenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	PendingOrders(ctx context.Context) (int, error)
	CriticalStock(ctx context.Context) (int, error)
	CustomerBalance(ctx context.Context) (decimal.Decimal, error)
	DailySales(ctx context.Context, from, to time.Time, loc *time.Location) (map[string]decimal.Decimal, error)
	BrandCounts(ctx context.Context, limit int) ([]BrandSlice, error)
}

// Service assembles the dashboard overview behind the version cache.
type Service struct {
	repo  RepositoryPort
	cache *Cache
	now   func() time.Time
}

// NewService wires a repository with a cache. cache may be nil.
func NewService(repo RepositoryPort, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache, now: time.Now}
}

// Overview returns the dashboard payload, cached until the next bump or the
// end of the day.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	now := s.now()
	key, err := s.cache.BuildKey(ctx, "dashboard", "overview", now.Format(dayKey))
	if err != nil {
		return Overview{}, err
	}
	var out Overview
	err = s.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (any, error) {
		return s.load(ctx, now)
	})
	return out, err
}

func (s *Service) load(ctx context.Context, now time.Time) (Overview, error) {
	var (
		out    Overview
		totals map[string]decimal.Decimal
	)
	chartFrom := startOfDay(now).AddDate(0, 0, -(chartDays - 1))
	chartTo := startOfDay(now).AddDate(0, 0, 1)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		out.KPI.Revenue, err = s.repo.Revenue(ctx, startOfMonth(now), now)
		return err
	})
	g.Go(func() error {
		var err error
		out.KPI.PendingOrders, err = s.repo.PendingOrders(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		out.KPI.CriticalStock, err = s.repo.CriticalStock(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		out.KPI.Balance, err = s.repo.CustomerBalance(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		totals, err = s.repo.DailySales(ctx, chartFrom, chartTo, now.Location())
		return err
	})
	g.Go(func() error {
		var err error
		out.BrandChart, err = s.repo.BrandCounts(ctx, topBrands)
		return err
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}

	out.SalesChart = buildSalesChart(now, totals)
	if out.BrandChart == nil {
		out.BrandChart = []BrandSlice{}
	}
	return out, nil
}
