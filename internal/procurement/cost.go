package procurement

import (
	"github.com/shopspring/decimal"

	"github.com/carpetdist/carpet-erp/internal/shared"
)

// DefaultCostRatio is the share of the list price assumed as purchase cost.
var DefaultCostRatio = decimal.RequireFromString("0.70")

// CostEstimator prices a purchase line that arrives without a unit price.
type CostEstimator func(listPrice decimal.Decimal) decimal.Decimal

// RatioCostEstimator prices at ratio × list price, rounded to cents.
func RatioCostEstimator(ratio decimal.Decimal) CostEstimator {
	return func(listPrice decimal.Decimal) decimal.Decimal {
		return shared.RoundMoney(listPrice.Mul(ratio))
	}
}

// DefaultCostEstimator applies DefaultCostRatio.
var DefaultCostEstimator = RatioCostEstimator(DefaultCostRatio)
