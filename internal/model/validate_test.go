package model

import (
	"errors"
	"math"
	"testing"
)

func validParams() ProjectParameters {
	return ProjectParameters{
		CapacityMW:       1,
		CUF:              0.154,
		CapitalCostPerMW: 60_000_000,
		OMCostPerMW:      300_000,
		OMEscalation:     0.05,
		Tariff:           3.5,
		DiscountRate:     0.08,
		Degradation:      0.005,
		LifeYears:        25,
		LoanFraction:     0.7,
		LoanRate:         0.10,
		LoanTenureYears:  10,
		DepreciationRate: 0.0528,
		TaxRate:          0.25,
	}
}

func TestValidate_Valid(t *testing.T) {
	if err := validParams().Validate(); err != nil {
		t.Fatalf("expected valid params, got %v", err)
	}
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *ProjectParameters)
		field  string
	}{
		{"zero capacity", func(p *ProjectParameters) { p.CapacityMW = 0 }, "capacity_mw"},
		{"cuf zero", func(p *ProjectParameters) { p.CUF = 0 }, "cuf"},
		{"cuf one", func(p *ProjectParameters) { p.CUF = 1 }, "cuf"},
		{"negative capital", func(p *ProjectParameters) { p.CapitalCostPerMW = -1 }, "capital_cost_per_mw"},
		{"negative om", func(p *ProjectParameters) { p.OMCostPerMW = -1 }, "om_cost_per_mw"},
		{"negative escalation", func(p *ProjectParameters) { p.OMEscalation = -0.01 }, "om_escalation"},
		{"negative tariff", func(p *ProjectParameters) { p.Tariff = -3 }, "tariff"},
		{"negative discount", func(p *ProjectParameters) { p.DiscountRate = -0.01 }, "discount_rate"},
		{"degradation one", func(p *ProjectParameters) { p.Degradation = 1 }, "degradation"},
		{"zero life", func(p *ProjectParameters) { p.LifeYears = 0 }, "life_years"},
		{"loan above one", func(p *ProjectParameters) { p.LoanFraction = 1.1 }, "loan_fraction"},
		{"negative loan rate", func(p *ProjectParameters) { p.LoanRate = -0.1 }, "loan_rate"},
		{"tenure beyond life", func(p *ProjectParameters) { p.LoanTenureYears = 26 }, "loan_tenure_years"},
		{"negative tenure", func(p *ProjectParameters) { p.LoanTenureYears = -1 }, "loan_tenure_years"},
		{"negative depreciation", func(p *ProjectParameters) { p.DepreciationRate = -0.1 }, "depreciation_rate"},
		{"tax above one", func(p *ProjectParameters) { p.TaxRate = 1.5 }, "tax_rate"},
		{"nan tariff", func(p *ProjectParameters) { p.Tariff = math.NaN() }, "tariff"},
		{"inf capital", func(p *ProjectParameters) { p.CapitalCostPerMW = math.Inf(1) }, "capital_cost_per_mw"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			err := p.Validate()
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("expected ErrInvalidParameter, got %v", err)
			}
			var pe *ParamError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParamError, got %T", err)
			}
			if pe.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, pe.Field)
			}
		})
	}
}

func TestValidate_Boundaries(t *testing.T) {
	p := validParams()
	p.LoanFraction = 1
	p.LoanTenureYears = p.LifeYears
	p.TaxRate = 0
	p.Degradation = 0
	p.DiscountRate = 0
	if err := p.Validate(); err != nil {
		t.Fatalf("boundary values should be valid, got %v", err)
	}
}

func TestDerivedAmounts(t *testing.T) {
	p := validParams()
	p.CapacityMW = 2
	if got := p.CapitalCost(); got != 120_000_000 {
		t.Errorf("CapitalCost = %.0f, expected 120000000", got)
	}
	if got := p.LoanAmount(); math.Abs(got-84_000_000) > 1e-6 {
		t.Errorf("LoanAmount = %.2f, expected 84000000", got)
	}
	if got := p.EquityOutlay(); math.Abs(got-36_000_000) > 1e-6 {
		t.Errorf("EquityOutlay = %.2f, expected 36000000", got)
	}
	if got := p.BaseEnergyKWh(); math.Abs(got-2*1000*8760*0.154) > 1e-6 {
		t.Errorf("BaseEnergyKWh = %.2f", got)
	}
}
