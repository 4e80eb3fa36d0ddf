package metrics

import (
	"fmt"

	"SolarSentinel/internal/calculator"
	"SolarSentinel/internal/model"
)

// Inputs are the cash-flow arrays and scalars the engine consumes. ProjectCF
// and EquityCF run from year 0 to Life; OMCosts and Energies from year 1.
type Inputs struct {
	ProjectCF    []float64
	EquityCF     []float64
	DiscountRate float64
	CapitalCost  float64
	OMCosts      []float64
	Energies     []float64
	Life         int
}

// Evaluate computes every scalar metric. Metrics without a value are left nil
// and explained in Warnings; a failure in one metric never blocks the others.
func Evaluate(in Inputs) model.Metrics {
	var m model.Metrics

	if irr, err := calculator.IRR(in.ProjectCF); err != nil {
		m.Warnings = append(m.Warnings, fmt.Sprintf("project IRR undefined: %v", err))
	} else {
		m.ProjectIRR = &irr
	}

	if irr, err := calculator.IRR(in.EquityCF); err != nil {
		m.Warnings = append(m.Warnings, fmt.Sprintf("equity IRR undefined: %v", err))
	} else {
		m.EquityIRR = &irr
	}

	m.NPV = calculator.NPV(in.DiscountRate, in.ProjectCF)

	if lcoe, err := LCOE(in.CapitalCost, in.OMCosts, in.Energies, in.DiscountRate, in.Life); err != nil {
		m.Warnings = append(m.Warnings, fmt.Sprintf("LCOE undefined: %v", err))
	} else {
		m.LCOE = &lcoe
	}

	if year, err := Payback(in.ProjectCF, in.CapitalCost, in.Life); err != nil {
		m.Warnings = append(m.Warnings, fmt.Sprintf("payback undefined: %v", err))
	} else {
		m.PaybackYears = &year
	}

	m.Feasibility = Verdict(m.ProjectIRR, in.DiscountRate)
	return m
}

// LCOE is the discounted lifecycle cost per discounted kWh over years 1..life.
func LCOE(capitalCost float64, omCosts, energies []float64, discountRate float64, life int) (float64, error) {
	omCosts = clip(omCosts, life)
	energies = clip(energies, life)

	discountedEnergy := calculator.PresentValueFromYearOne(discountRate, energies)
	if discountedEnergy == 0 {
		return 0, fmt.Errorf("%w: discounted energy is zero", model.ErrUndefinedMetric)
	}
	discountedCost := capitalCost + calculator.PresentValueFromYearOne(discountRate, omCosts)
	return discountedCost / discountedEnergy, nil
}

// Payback returns the first year k whose cumulative undiscounted project cash
// flow over years 1..k reaches capitalCost. The year-0 outlay is the target,
// not part of the running sum.
func Payback(projectCF []float64, capitalCost float64, life int) (int, error) {
	cumulative := 0.0
	for k := 1; k <= life && k < len(projectCF); k++ {
		cumulative += projectCF[k]
		if cumulative >= capitalCost {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: outlay not recovered within %d years", model.ErrUndefinedMetric, life)
}

// Verdict maps the project IRR against the hurdle rate.
func Verdict(projectIRR *float64, discountRate float64) model.Feasibility {
	switch {
	case projectIRR == nil:
		return model.Unknown
	case *projectIRR >= discountRate:
		return model.Feasible
	default:
		return model.NotFeasible
	}
}

func clip(values []float64, life int) []float64 {
	if life >= 0 && len(values) > life {
		return values[:life]
	}
	return values
}
