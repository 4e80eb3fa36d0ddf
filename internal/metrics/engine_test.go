package metrics

import (
	"math"
	"strings"
	"testing"

	"SolarSentinel/internal/model"
)

func TestEvaluate_SimpleStream(t *testing.T) {
	m := Evaluate(Inputs{
		ProjectCF:    []float64{-100, 60, 60},
		EquityCF:     []float64{-40, 30, 30},
		DiscountRate: 0.05,
		CapitalCost:  100,
		OMCosts:      []float64{10, 10},
		Energies:     []float64{100, 100},
		Life:         2,
	})
	if m.ProjectIRR == nil || m.EquityIRR == nil {
		t.Fatalf("expected both IRRs defined, warnings: %v", m.Warnings)
	}
	if math.Abs(*m.ProjectIRR-0.1306623) > 1e-6 {
		t.Errorf("project IRR = %.7f, expected 0.1306623", *m.ProjectIRR)
	}
	expectedNPV := -100 + 60/1.05 + 60/(1.05*1.05)
	if math.Abs(m.NPV-expectedNPV) > 1e-9 {
		t.Errorf("NPV = %.6f, expected %.6f", m.NPV, expectedNPV)
	}
	if m.PaybackYears == nil || *m.PaybackYears != 2 {
		t.Errorf("payback = %v, expected 2", m.PaybackYears)
	}
	if m.Feasibility != model.Feasible {
		t.Errorf("feasibility = %q, expected %q", m.Feasibility, model.Feasible)
	}
	if len(m.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", m.Warnings)
	}
}

func TestLCOE_Known(t *testing.T) {
	got, err := LCOE(100, []float64{10, 10}, []float64{100, 100}, 0, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-0.6) > 1e-12 {
		t.Errorf("LCOE = %v, expected 0.6", got)
	}
}

func TestEvaluate_ZeroEnergyLCOEAbsent(t *testing.T) {
	m := Evaluate(Inputs{
		ProjectCF:    []float64{-100, -5, -5},
		EquityCF:     []float64{-100, -5, -5},
		DiscountRate: 0.08,
		CapitalCost:  100,
		OMCosts:      []float64{5, 5},
		Energies:     []float64{0, 0},
		Life:         2,
	})
	if m.LCOE != nil {
		t.Errorf("expected LCOE absent, got %v", *m.LCOE)
	}
	if m.ProjectIRR != nil {
		t.Errorf("expected project IRR undefined for all-negative stream")
	}
	if m.Feasibility != model.Unknown {
		t.Errorf("feasibility = %q, expected %q", m.Feasibility, model.Unknown)
	}
	if !containsWarning(m.Warnings, "LCOE undefined") {
		t.Errorf("expected LCOE warning, got %v", m.Warnings)
	}
}

func TestPayback_NotRecovered(t *testing.T) {
	cfs := []float64{-1e12, 1e6, 1e6, 1e6}
	if _, err := Payback(cfs, 1e12, 3); err == nil {
		t.Fatal("expected payback to be undefined")
	}
	m := Evaluate(Inputs{ProjectCF: cfs, EquityCF: cfs, CapitalCost: 1e12, DiscountRate: 0.08, Life: 3,
		OMCosts: []float64{1, 1, 1}, Energies: []float64{1, 1, 1}})
	if m.PaybackYears != nil {
		t.Errorf("expected payback absent, got %d", *m.PaybackYears)
	}
}

func TestPayback_ComparesInflowAgainstOutlay(t *testing.T) {
	tests := []struct {
		cfs      []float64
		capital  float64
		expected int
	}{
		{[]float64{-100, 40, 40, 40}, 100, 3},
		{[]float64{-100, 100, 1}, 100, 1},
		{[]float64{-100, 30, 30, 30, 30}, 100, 4},
		// the running sum never includes index 0, whatever it holds
		{[]float64{0, 50, 50}, 100, 2},
	}
	for _, tt := range tests {
		got, err := Payback(tt.cfs, tt.capital, len(tt.cfs)-1)
		if err != nil {
			t.Fatalf("Payback(%v): %v", tt.cfs, err)
		}
		if got != tt.expected {
			t.Errorf("Payback(%v) = %d, expected %d", tt.cfs, got, tt.expected)
		}
	}
}

func TestVerdict(t *testing.T) {
	hi, eq, lo := 0.12, 0.08, 0.05
	tests := []struct {
		irr      *float64
		expected model.Feasibility
	}{
		{&hi, model.Feasible},
		{&eq, model.Feasible},
		{&lo, model.NotFeasible},
		{nil, model.Unknown},
	}
	for _, tt := range tests {
		if got := Verdict(tt.irr, 0.08); got != tt.expected {
			t.Errorf("Verdict(%v) = %q, expected %q", tt.irr, got, tt.expected)
		}
	}
}

func containsWarning(warnings []string, prefix string) bool {
	for _, w := range warnings {
		if strings.HasPrefix(w, prefix) {
			return true
		}
	}
	return false
}
