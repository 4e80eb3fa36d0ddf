// Package appraisal chains the amortization, projection and metrics stages
// into a single bankability evaluation.
package appraisal

import (
	"fmt"

	"SolarSentinel/internal/calculator"
	"SolarSentinel/internal/cashflow"
	"SolarSentinel/internal/metrics"
	"SolarSentinel/internal/model"
)

// EvaluateProject validates p and returns the full cash-flow table with its
// metrics. The only error is an invalid parameter; undefined metrics are
// reported inside the result.
func EvaluateProject(p model.ProjectParameters) (*model.ProjectResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	schedule, err := calculator.Schedule(p.LoanAmount(), p.LoanRate, p.LoanTenureYears)
	if err != nil {
		return nil, fmt.Errorf("amortization schedule: %w", err)
	}

	years := cashflow.Table(p, schedule)
	projectCF, equityCF := cashflow.Streams(years)
	omCosts, energies := cashflow.Series(years)

	m := metrics.Evaluate(metrics.Inputs{
		ProjectCF:    projectCF,
		EquityCF:     equityCF,
		DiscountRate: p.DiscountRate,
		CapitalCost:  p.CapitalCost(),
		OMCosts:      omCosts,
		Energies:     energies,
		Life:         p.LifeYears,
	})

	return &model.ProjectResult{Years: years, Metrics: m}, nil
}
