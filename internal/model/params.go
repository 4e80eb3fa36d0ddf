package model

// ProjectParameters is the validated input to an appraisal. Rates and fractions
// are expressed as decimals (0.08 means 8%).
type ProjectParameters struct {
	CapacityMW       float64 `yaml:"capacity_mw" json:"capacity_mw"`
	CUF              float64 `yaml:"cuf" json:"cuf"`
	CapitalCostPerMW float64 `yaml:"capital_cost_per_mw" json:"capital_cost_per_mw"`
	OMCostPerMW      float64 `yaml:"om_cost_per_mw" json:"om_cost_per_mw"` // year 1
	OMEscalation     float64 `yaml:"om_escalation" json:"om_escalation"`
	Tariff           float64 `yaml:"tariff" json:"tariff"` // currency per kWh
	DiscountRate     float64 `yaml:"discount_rate" json:"discount_rate"`
	Degradation      float64 `yaml:"degradation" json:"degradation"`
	LifeYears        int     `yaml:"life_years" json:"life_years"`
	LoanFraction     float64 `yaml:"loan_fraction" json:"loan_fraction"`
	LoanRate         float64 `yaml:"loan_rate" json:"loan_rate"`
	LoanTenureYears  int     `yaml:"loan_tenure_years" json:"loan_tenure_years"`
	DepreciationRate float64 `yaml:"depreciation_rate" json:"depreciation_rate"`
	TaxRate          float64 `yaml:"tax_rate" json:"tax_rate"`
}

// CapitalCost is the total initial outlay.
func (p ProjectParameters) CapitalCost() float64 {
	return p.CapitalCostPerMW * p.CapacityMW
}

// LoanAmount is the debt-financed share of the capital cost.
func (p ProjectParameters) LoanAmount() float64 {
	return p.CapitalCost() * p.LoanFraction
}

// EquityOutlay is the sponsor-financed share of the capital cost.
func (p ProjectParameters) EquityOutlay() float64 {
	return p.CapitalCost() * (1 - p.LoanFraction)
}

// BaseEnergyKWh is the un-degraded year-1 output.
func (p ProjectParameters) BaseEnergyKWh() float64 {
	return p.CapacityMW * 1000 * HoursPerYear * p.CUF
}

// BaseOMCost is the year-1 operations and maintenance cost.
func (p ProjectParameters) BaseOMCost() float64 {
	return p.OMCostPerMW * p.CapacityMW
}

// HoursPerYear is the number of hours used to annualise nameplate capacity.
const HoursPerYear = 8760
