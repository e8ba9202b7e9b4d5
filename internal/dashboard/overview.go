package dashboard

import (
	"time"

	"github.com/shopspring/decimal"
)

// Overview is the payload behind GET /dashboard/overview.
type Overview struct {
	KPI        KPI          `json:"kpi"`
	SalesChart []DayPoint   `json:"salesChart"`
	BrandChart []BrandSlice `json:"brandChart"`
}

// KPI holds the headline cards.
type KPI struct {
	Revenue       decimal.Decimal `json:"revenue"`
	PendingOrders int             `json:"pendingOrders"`
	CriticalStock int             `json:"criticalStock"`
	Balance       decimal.Decimal `json:"balance"`
}

// DayPoint is one bar of the daily sales chart.
type DayPoint struct {
	Name string          `json:"name"`
	Date string          `json:"date"`
	UV   decimal.Decimal `json:"uv"`
}

// BrandSlice counts products per brand.
type BrandSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

const (
	chartDays = 7
	topBrands = 5
	dayKey    = "2006-01-02"
	dayLabel  = "2 Jan"
)

// UnbrandedLabel groups products without a brand.
const UnbrandedLabel = "Other"

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// buildSalesChart lays totals onto the chartDays days ending today, oldest
// first. Days without sales are zero.
func buildSalesChart(today time.Time, totals map[string]decimal.Decimal) []DayPoint {
	first := startOfDay(today).AddDate(0, 0, -(chartDays - 1))
	out := make([]DayPoint, 0, chartDays)
	for i := 0; i < chartDays; i++ {
		day := first.AddDate(0, 0, i)
		v, ok := totals[day.Format(dayKey)]
		if !ok {
			v = decimal.Zero
		}
		out = append(out, DayPoint{Name: day.Format(dayLabel), Date: day.Format(dayKey), UV: v})
	}
	return out
}
