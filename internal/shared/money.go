package shared

import "github.com/shopspring/decimal"

// MoneyPlaces is the scale of every persisted amount.
const MoneyPlaces = 2

// RoundMoney rounds half away from zero to two decimals.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// LineTotal returns unitPrice × quantity at money scale.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return RoundMoney(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))
}
