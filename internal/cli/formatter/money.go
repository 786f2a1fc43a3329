package formatter

import (
	"math"

	"github.com/Rhymond/go-money"
	"github.com/alexanderramin/bizbook/internal/domain"
	"github.com/shopspring/decimal"
)

// Money renders an amount in the given ISO 4217 currency, for example
// "€1,500.00" or "-$50.00". Amounts are rounded to the currency's minor
// unit. An unknown currency falls back to "1500.00 XYZ", and an amount too
// large for go-money's int64 minor units to "1000000000000000000000.00 USD".
func Money(a domain.Amount, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return a.Decimal().StringFixed(2) + " " + currency
	}
	factor := decimal.New(1, int32(cur.Fraction))
	minor := a.Decimal().Mul(factor).Round(0)
	if minor.Abs().GreaterThan(maxMinorUnits) {
		return a.Decimal().StringFixed(int32(cur.Fraction)) + " " + cur.Code
	}
	return money.New(minor.IntPart(), cur.Code).Display()
}

var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// MoneyStyled is Money colored by sign.
func MoneyStyled(a domain.Amount, currency string) string {
	return AmountStyle(a).Render(Money(a, currency))
}
