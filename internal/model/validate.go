package model

import "math"

// Validate checks every field against its documented domain and returns the
// first violation as a *ParamError. Out-of-range values are never clamped.
func (p ProjectParameters) Validate() error {
	checks := []struct {
		field      string
		value      float64
		ok         bool
		constraint string
	}{
		{"capacity_mw", p.CapacityMW, p.CapacityMW > 0, "> 0"},
		{"cuf", p.CUF, p.CUF > 0 && p.CUF < 1, "in (0, 1)"},
		{"capital_cost_per_mw", p.CapitalCostPerMW, p.CapitalCostPerMW >= 0, ">= 0"},
		{"om_cost_per_mw", p.OMCostPerMW, p.OMCostPerMW >= 0, ">= 0"},
		{"om_escalation", p.OMEscalation, p.OMEscalation >= 0, ">= 0"},
		{"tariff", p.Tariff, p.Tariff >= 0, ">= 0"},
		{"discount_rate", p.DiscountRate, p.DiscountRate >= 0, ">= 0"},
		{"degradation", p.Degradation, p.Degradation >= 0 && p.Degradation < 1, "in [0, 1)"},
		{"life_years", float64(p.LifeYears), p.LifeYears >= 1, ">= 1"},
		{"loan_fraction", p.LoanFraction, p.LoanFraction >= 0 && p.LoanFraction <= 1, "in [0, 1]"},
		{"loan_rate", p.LoanRate, p.LoanRate >= 0, ">= 0"},
		{"loan_tenure_years", float64(p.LoanTenureYears), p.LoanTenureYears >= 0 && p.LoanTenureYears <= p.LifeYears, "in [0, life_years]"},
		{"depreciation_rate", p.DepreciationRate, p.DepreciationRate >= 0, ">= 0"},
		{"tax_rate", p.TaxRate, p.TaxRate >= 0 && p.TaxRate <= 1, "in [0, 1]"},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return &ParamError{Field: c.field, Value: c.value, Constraint: "finite"}
		}
		if !c.ok {
			return &ParamError{Field: c.field, Value: c.value, Constraint: c.constraint}
		}
	}
	return nil
}
