package model

// Feasibility is the bankability verdict derived from the project IRR.
type Feasibility string

const (
	Feasible    Feasibility = "Feasible"
	NotFeasible Feasibility = "Not Feasible"
	Unknown     Feasibility = "Unknown" // project IRR undefined
)

// Metrics are the scalar outputs of the metrics engine. A nil pointer means the
// metric has no value for the given inputs; it is never reported as 0.
type Metrics struct {
	ProjectIRR   *float64    `json:"project_irr"`
	EquityIRR    *float64    `json:"equity_irr"`
	NPV          float64     `json:"npv"`
	LCOE         *float64    `json:"lcoe"`
	PaybackYears *int        `json:"payback_years"`
	Feasibility  Feasibility `json:"feasibility"`
	Warnings     []string    `json:"warnings,omitempty"`
}

// ProjectResult is the full outcome of an appraisal.
type ProjectResult struct {
	Years []YearRecord `json:"years"` // index 0 is the initial outlay
	Metrics
}

// Life returns the number of operating years in the result.
func (r *ProjectResult) Life() int {
	if len(r.Years) == 0 {
		return 0
	}
	return len(r.Years) - 1
}
