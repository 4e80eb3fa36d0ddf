package calculator

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DiscountFactors returns 1/(1+rate)^k for k = first .. first+n-1.
func DiscountFactors(rate float64, first, n int) []float64 {
	factors := make([]float64, n)
	for i := range factors {
		factors[i] = math.Pow(1+rate, -float64(first+i))
	}
	return factors
}

// NPV discounts cashFlows at rate with index 0 undiscounted.
func NPV(rate float64, cashFlows []float64) float64 {
	if len(cashFlows) == 0 {
		return 0
	}
	return floats.Dot(cashFlows, DiscountFactors(rate, 0, len(cashFlows)))
}

// PresentValueFromYearOne discounts values whose first element falls at the
// end of year 1.
func PresentValueFromYearOne(rate float64, values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Dot(values, DiscountFactors(rate, 1, len(values)))
}

// Discount returns a single cash flow at year k in present-value terms.
func Discount(cashFlow, rate float64, year int) float64 {
	return cashFlow / math.Pow(1+rate, float64(year))
}
