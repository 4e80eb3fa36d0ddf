package model

// AmortizationEntry is one year of a fixed-payment loan schedule.
type AmortizationEntry struct {
	Year      int     `json:"year"`
	Opening   float64 `json:"opening"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Closing   float64 `json:"closing"`
}

// Payment is the equated annual installment for this entry.
func (e AmortizationEntry) Payment() float64 {
	return e.Interest + e.Principal
}

// YearRecord holds one row of the projected cash-flow table. Year 0 is the
// initial outlay; years 1..N are operating years.
type YearRecord struct {
	Year         int     `json:"year"`
	EnergyKWh    float64 `json:"energy_kwh"`
	Revenue      float64 `json:"revenue"`
	OMCost       float64 `json:"om_cost"`
	EBITDA       float64 `json:"ebitda"`
	Depreciation float64 `json:"depreciation"`
	Interest     float64 `json:"interest"`
	Principal    float64 `json:"principal"`
	LoanBalance  float64 `json:"loan_balance"` // closing balance after this year's repayment

	// Unlevered view.
	TaxableIncomeProject float64 `json:"taxable_income_project"`
	TaxProject           float64 `json:"tax_project"`
	Profit               float64 `json:"profit"`
	ProjectCashFlow      float64 `json:"project_cash_flow"`

	// Levered view.
	TaxableIncomeEquity float64 `json:"taxable_income_equity"`
	TaxEquity           float64 `json:"tax_equity"`
	NetIncomeEquity     float64 `json:"net_income_equity"`
	EquityCashFlow      float64 `json:"equity_cash_flow"`
}
