// Package tax implements Swedish income tax withholding:
// kommunalskatt at 32% of gross pay and statlig skatt at 20% of the
// portion of annual gross pay above 540 000 SEK.
package tax

import "github.com/shopspring/decimal"

var (
	LocalRate         = decimal.NewFromFloat(0.32)
	NationalRate      = decimal.NewFromFloat(0.20)
	NationalThreshold = decimal.NewFromInt(540_000)

	monthsPerYear = decimal.NewFromInt(12)
)

type Breakdown struct {
	Local    decimal.Decimal `json:"kommunalskatt"`
	National decimal.Decimal `json:"statligSkatt"`
	Total    decimal.Decimal `json:"totalSkatt"`
}

// CalculateAnnual returns the withholding for a full year's gross pay.
func CalculateAnnual(annualGross decimal.Decimal) Breakdown {
	local := annualGross.Mul(LocalRate)
	national := decimal.Zero
	if over := annualGross.Sub(NationalThreshold); over.IsPositive() {
		national = over.Mul(NationalRate)
	}
	return rounded(local, national)
}

// CalculateMonthly returns the withholding for one month's gross pay.
// The pay is annualized only to evaluate the national threshold; the
// national component is then divided back to a monthly amount.
func CalculateMonthly(monthlyGross decimal.Decimal) Breakdown {
	local := monthlyGross.Mul(LocalRate)
	national := decimal.Zero
	annual := monthlyGross.Mul(monthsPerYear)
	if over := annual.Sub(NationalThreshold); over.IsPositive() {
		national = over.Mul(NationalRate).Div(monthsPerYear)
	}
	return rounded(local, national)
}

// Net returns gross minus the rounded total tax, rounded to two decimals.
func Net(gross decimal.Decimal, b Breakdown) decimal.Decimal {
	return gross.Sub(b.Total).Round(2)
}

// rounded rounds every component to two decimals, half away from zero.
// The total is rounded from the unrounded parts; intermediate arithmetic
// is never rounded.
func rounded(local, national decimal.Decimal) Breakdown {
	return Breakdown{
		Local:    local.Round(2),
		National: national.Round(2),
		Total:    local.Add(national).Round(2),
	}
}
