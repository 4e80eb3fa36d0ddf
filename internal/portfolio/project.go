package portfolio

import (
	"SolarSentinel/internal/model"
	"SolarSentinel/internal/preset"
)

// Project is a named, fully resolved appraisal input.
type Project struct {
	Name   string
	Panel  string
	State  string
	Land   preset.Land
	Params model.ProjectParameters
}

type document struct {
	Projects []entry `yaml:"projects"`
}

// entry is one project as written in the portfolio file. Every financial field
// is optional and overrides the preset value when present.
type entry struct {
	Name             string   `yaml:"name"`
	PanelType        string   `yaml:"panel_type"`
	State            string   `yaml:"state"`
	IrradiationKWhM2 *float64 `yaml:"irradiation_kwh_m2"`
	LandPerMWAcres   *float64 `yaml:"land_per_mw_acres"`

	CapacityMW       *float64 `yaml:"capacity_mw"`
	CUF              *float64 `yaml:"cuf"`
	CapitalCostPerMW *float64 `yaml:"capital_cost_per_mw"`
	OMCostPerMW      *float64 `yaml:"om_cost_per_mw"`
	OMEscalation     *float64 `yaml:"om_escalation"`
	Tariff           *float64 `yaml:"tariff"`
	DiscountRate     *float64 `yaml:"discount_rate"`
	Degradation      *float64 `yaml:"degradation"`
	LifeYears        *int     `yaml:"life_years"`
	LoanFraction     *float64 `yaml:"loan_fraction"`
	LoanRate         *float64 `yaml:"loan_rate"`
	LoanTenureYears  *int     `yaml:"loan_tenure_years"`
	DepreciationRate *float64 `yaml:"depreciation_rate"`
	TaxRate          *float64 `yaml:"tax_rate"`
}

// resolve applies defaults, then the panel preset, then the irradiation-based
// CUF, then explicit overrides.
func (e entry) resolve() (Project, error) {
	panelName := e.PanelType
	if panelName == "" {
		panelName = preset.DefaultPanel
	}
	panel, err := preset.Panel(panelName)
	if err != nil {
		return Project{}, err
	}

	params := preset.Defaults(panel)
	if e.IrradiationKWhM2 != nil {
		params.CUF = preset.EstimateCUF(*e.IrradiationKWhM2)
	}

	setFloat(&params.CapacityMW, e.CapacityMW)
	setFloat(&params.CUF, e.CUF)
	setFloat(&params.CapitalCostPerMW, e.CapitalCostPerMW)
	setFloat(&params.OMCostPerMW, e.OMCostPerMW)
	setFloat(&params.OMEscalation, e.OMEscalation)
	setFloat(&params.Tariff, e.Tariff)
	setFloat(&params.DiscountRate, e.DiscountRate)
	setFloat(&params.Degradation, e.Degradation)
	setInt(&params.LifeYears, e.LifeYears)
	setFloat(&params.LoanFraction, e.LoanFraction)
	setFloat(&params.LoanRate, e.LoanRate)
	setInt(&params.LoanTenureYears, e.LoanTenureYears)
	setFloat(&params.DepreciationRate, e.DepreciationRate)
	setFloat(&params.TaxRate, e.TaxRate)

	acresPerMW := preset.DefaultLandPerMWAcres
	if e.State != "" {
		if acresPerMW, err = preset.LandPerMW(e.State); err != nil {
			return Project{}, err
		}
	}
	if e.LandPerMWAcres != nil {
		acresPerMW = *e.LandPerMWAcres
	}

	return Project{
		Name:   e.Name,
		Panel:  panel.Name,
		State:  e.State,
		Land:   preset.LandRequirement(params.CapacityMW, acresPerMW),
		Params: params,
	}, nil
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
