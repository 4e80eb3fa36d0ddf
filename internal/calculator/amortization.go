package calculator

import (
	"fmt"
	"math"

	"SolarSentinel/internal/model"
)

// Schedule builds a fixed-payment amortization schedule. It returns an empty
// schedule when there is no debt to service (zero tenure or zero principal).
func Schedule(principal, annualRate float64, tenureYears int) ([]model.AmortizationEntry, error) {
	if principal < 0 || math.IsNaN(principal) {
		return nil, fmt.Errorf("%w: principal must be >= 0", model.ErrInvalidParameter)
	}
	if annualRate < 0 || math.IsNaN(annualRate) {
		return nil, fmt.Errorf("%w: annual rate must be >= 0", model.ErrInvalidParameter)
	}
	if tenureYears < 0 {
		return nil, fmt.Errorf("%w: tenure must be >= 0", model.ErrInvalidParameter)
	}
	if tenureYears == 0 || principal == 0 {
		return nil, nil
	}

	payment := Payment(principal, annualRate, tenureYears)
	entries := make([]model.AmortizationEntry, tenureYears)
	balance := principal
	for k := 1; k <= tenureYears; k++ {
		interest := balance * annualRate
		repaid := payment - interest
		if repaid > balance {
			repaid = balance
		}
		closing := balance - repaid
		if k == tenureYears {
			// absorb floating-point drift in the final installment
			repaid = balance
			closing = 0
		}
		entries[k-1] = model.AmortizationEntry{
			Year:      k,
			Opening:   balance,
			Interest:  interest,
			Principal: repaid,
			Closing:   closing,
		}
		balance = closing
	}
	return entries, nil
}

// Payment returns the equated annual installment that fully amortizes
// principal over tenureYears at annualRate.
func Payment(principal, annualRate float64, tenureYears int) float64 {
	if tenureYears <= 0 {
		return 0
	}
	n := float64(tenureYears)
	if annualRate == 0 {
		return principal / n
	}
	return principal * annualRate / (1 - math.Pow(1+annualRate, -n))
}
