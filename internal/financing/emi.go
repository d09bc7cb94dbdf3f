package financing

import "github.com/shopspring/decimal"

var (
	one            = decimal.NewFromInt(1)
	monthsPerYear  = decimal.NewFromInt(12)
	percentDivisor = decimal.NewFromInt(100)
)

// MonthlyInstallment computes the standard amortized EMI for a loan principal
// at the given annual rate over tenureYears, rounded to two decimal places.
// A zero rate degrades to principal spread evenly across the tenure.
func MonthlyInstallment(principal, annualRate decimal.Decimal, tenureYears int) decimal.Decimal {
	months := int64(tenureYears) * 12
	if months <= 0 || principal.Sign() <= 0 {
		return decimal.Zero
	}
	if annualRate.Sign() == 0 {
		return principal.Div(decimal.NewFromInt(months)).Round(2)
	}

	monthlyRate := annualRate.Div(monthsPerYear).Div(percentDivisor)
	growth := one.Add(monthlyRate).Pow(decimal.NewFromInt(months))
	numerator := principal.Mul(monthlyRate).Mul(growth)
	denominator := growth.Sub(one)
	return numerator.Div(denominator).Round(2)
}

// MeanRate returns the midpoint of a lender's advertised rate band.
func MeanRate(minRate, maxRate decimal.Decimal) decimal.Decimal {
	return minRate.Add(maxRate).Div(decimal.NewFromInt(2))
}
