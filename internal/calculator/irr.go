package calculator

import (
	"fmt"
	"math"

	"SolarSentinel/internal/model"
)

// Bounds of the IRR search domain and the solver budget.
const (
	IRRLowerBound    = -0.99
	IRRUpperBound    = 10.0
	irrScanSteps     = 2000
	irrMaxIterations = 200
	irrTolerance     = 1e-12
)

// IRR finds the rate at which the NPV of cashFlows is zero using bisection.
// The domain is scanned for a bracketing sign change first; when several
// roots exist the one closest to zero is returned. It fails with
// model.ErrNoConvergence when the stream never changes sign, no bracket is
// found, or the iteration budget runs out.
func IRR(cashFlows []float64) (float64, error) {
	if !hasSignChange(cashFlows) {
		return 0, fmt.Errorf("%w: cash flows do not change sign", model.ErrNoConvergence)
	}

	lo, hi, ok := bracket(cashFlows)
	if !ok {
		return 0, fmt.Errorf("%w: no root in [%.2f, %.2f]", model.ErrNoConvergence, IRRLowerBound, IRRUpperBound)
	}

	fLo := NPV(lo, cashFlows)
	if fLo == 0 {
		return lo, nil
	}
	for i := 0; i < irrMaxIterations; i++ {
		mid := lo + (hi-lo)/2
		fMid := NPV(mid, cashFlows)
		if fMid == 0 || (hi-lo)/2 < irrTolerance {
			return mid, nil
		}
		if math.Signbit(fMid) == math.Signbit(fLo) {
			lo, fLo = mid, fMid
		} else {
			hi = mid
		}
	}
	return 0, fmt.Errorf("%w: iteration budget of %d exhausted", model.ErrNoConvergence, irrMaxIterations)
}

func hasSignChange(cashFlows []float64) bool {
	var pos, neg bool
	for _, cf := range cashFlows {
		switch {
		case cf > 0:
			pos = true
		case cf < 0:
			neg = true
		}
	}
	return pos && neg
}

// bracket scans the search domain on a fixed grid and returns the sub-interval
// containing a sign change nearest to a zero rate.
func bracket(cashFlows []float64) (lo, hi float64, ok bool) {
	step := (IRRUpperBound - IRRLowerBound) / irrScanSteps
	best := math.Inf(1)

	prevRate := IRRLowerBound
	prevVal := NPV(prevRate, cashFlows)
	for i := 1; i <= irrScanSteps; i++ {
		rate := IRRLowerBound + float64(i)*step
		val := NPV(rate, cashFlows)
		if !math.IsNaN(prevVal) && !math.IsNaN(val) {
			if val == 0 || prevVal == 0 || math.Signbit(val) != math.Signbit(prevVal) {
				dist := math.Min(math.Abs(prevRate), math.Abs(rate))
				if prevRate <= 0 && rate >= 0 {
					dist = 0
				}
				if dist < best {
					best, lo, hi, ok = dist, prevRate, rate, true
				}
			}
		}
		prevRate, prevVal = rate, val
	}
	return lo, hi, ok
}
