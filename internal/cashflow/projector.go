// Package cashflow projects the year-by-year cash-flow table of a project
// under its financing structure.
package cashflow

import (
	"math"

	"SolarSentinel/internal/model"
)

// debtState is the loan position carried from one operating year to the next.
type debtState struct {
	balance float64
}

// service returns the debt service due in year k and the state after paying it.
func (d debtState) service(schedule []model.AmortizationEntry, year int) (interest, principal float64, next debtState) {
	if year > len(schedule) {
		return 0, 0, d
	}
	e := schedule[year-1]
	next = debtState{balance: d.balance - e.Principal}
	if next.balance < 0 || year == len(schedule) {
		next.balance = math.Max(e.Closing, 0)
	}
	return e.Interest, e.Principal, next
}

// Outlay builds the synthetic year-0 record holding the initial investment.
func Outlay(p model.ProjectParameters) model.YearRecord {
	capital := p.CapitalCost()
	return model.YearRecord{
		Year:            0,
		LoanBalance:     p.LoanAmount(),
		Profit:          -capital,
		ProjectCashFlow: -capital,
		EquityCashFlow:  -p.EquityOutlay(),
	}
}

// Project returns one record per operating year 1..LifeYears. Schedule
// entries beyond the loan tenure are ignored; years past the tenure carry no
// debt service.
func Project(p model.ProjectParameters, schedule []model.AmortizationEntry) []model.YearRecord {
	if p.LifeYears <= 0 {
		return nil
	}
	if len(schedule) > p.LoanTenureYears {
		schedule = schedule[:p.LoanTenureYears]
	}

	baseEnergy := p.BaseEnergyKWh()
	baseOM := p.BaseOMCost()
	depreciation := p.CapitalCost() * p.DepreciationRate

	records := make([]model.YearRecord, 0, p.LifeYears)
	debt := debtState{balance: p.LoanAmount()}
	if len(schedule) == 0 {
		debt.balance = 0
	}
	for k := 1; k <= p.LifeYears; k++ {
		var rec model.YearRecord
		rec, debt = projectYear(p, k, baseEnergy, baseOM, depreciation, schedule, debt)
		records = append(records, rec)
	}
	return records
}

func projectYear(
	p model.ProjectParameters,
	year int,
	baseEnergy, baseOM, depreciation float64,
	schedule []model.AmortizationEntry,
	debt debtState,
) (model.YearRecord, debtState) {
	exp := float64(year - 1)
	energy := baseEnergy * math.Pow(1-p.Degradation, exp)
	omCost := baseOM * math.Pow(1+p.OMEscalation, exp)
	revenue := energy * p.Tariff

	interest, principal, next := debt.service(schedule, year)

	ebitda := revenue - omCost

	// Unlevered: tax on operating profit after depreciation, no debt service.
	taxableProj := ebitda - depreciation
	taxProj := math.Max(taxableProj, 0) * p.TaxRate
	projectCF := ebitda - taxProj

	// Levered: interest is deductible, principal is a cash outflow.
	taxableEq := math.Max(ebitda-depreciation-interest, 0)
	taxEq := taxableEq * p.TaxRate
	netIncomeEq := ebitda - interest - taxEq
	// Depreciation is non-cash and added back; principal is not in net income.
	equityCF := netIncomeEq + depreciation - principal

	return model.YearRecord{
		Year:                 year,
		EnergyKWh:            energy,
		Revenue:              revenue,
		OMCost:               omCost,
		EBITDA:               ebitda,
		Depreciation:         depreciation,
		Interest:             interest,
		Principal:            principal,
		LoanBalance:          next.balance,
		TaxableIncomeProject: taxableProj,
		TaxProject:           taxProj,
		Profit:               taxableProj - taxProj,
		ProjectCashFlow:      projectCF,
		TaxableIncomeEquity:  taxableEq,
		TaxEquity:            taxEq,
		NetIncomeEquity:      netIncomeEq,
		EquityCashFlow:       equityCF,
	}, next
}

// Table returns the full cash-flow table, year 0 through LifeYears.
func Table(p model.ProjectParameters, schedule []model.AmortizationEntry) []model.YearRecord {
	return append([]model.YearRecord{Outlay(p)}, Project(p, schedule)...)
}

// Streams splits a table into the project and equity cash-flow arrays.
func Streams(records []model.YearRecord) (project, equity []float64) {
	project = make([]float64, len(records))
	equity = make([]float64, len(records))
	for i, r := range records {
		project[i] = r.ProjectCashFlow
		equity[i] = r.EquityCashFlow
	}
	return project, equity
}

// Series extracts the operating-year O&M costs and energy outputs (year 0 is
// skipped).
func Series(records []model.YearRecord) (omCosts, energies []float64) {
	for _, r := range records {
		if r.Year == 0 {
			continue
		}
		omCosts = append(omCosts, r.OMCost)
		energies = append(energies, r.EnergyKWh)
	}
	return omCosts, energies
}
