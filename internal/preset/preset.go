// Package preset holds the default technology, site and financing figures
// used to fill in parameters a project description leaves out.
package preset

import (
	"fmt"
	"strings"

	"SolarSentinel/internal/model"
)

// PerformanceRatio converts plane-of-array irradiation into delivered energy.
const PerformanceRatio = 0.75

// HectaresPerAcre converts land area.
const HectaresPerAcre = 0.4047

// DefaultLandPerMWAcres applies to every state without a specific figure.
const DefaultLandPerMWAcres = 4.5

// PanelTechnology describes a module type and its installed cost.
type PanelTechnology struct {
	Name             string
	Efficiency       float64
	CapitalCostPerMW float64
}

// Panels lists the supported module technologies.
var Panels = []PanelTechnology{
	{Name: "Monocrystalline", Efficiency: 0.20, CapitalCostPerMW: 60_000_000},
	{Name: "Polycrystalline", Efficiency: 0.17, CapitalCostPerMW: 50_000_000},
	{Name: "Thin Film", Efficiency: 0.12, CapitalCostPerMW: 45_000_000},
}

// DefaultPanel is used when a project names no technology.
const DefaultPanel = "Monocrystalline"

// States lists every Indian state and union territory a site may be in.
var States = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh",
	"Goa", "Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka",
	"Kerala", "Madhya Pradesh", "Maharashtra", "Manipur", "Meghalaya",
	"Mizoram", "Nagaland", "Odisha", "Punjab", "Rajasthan", "Sikkim",
	"Tamil Nadu", "Telangana", "Tripura", "Uttar Pradesh", "Uttarakhand",
	"West Bengal", "Delhi", "Jammu & Kashmir", "Ladakh", "Chandigarh",
	"Andaman & Nicobar", "Dadra & Nagar Haveli", "Daman & Diu", "Lakshadweep",
	"Puducherry",
}

// landPerMWAcres holds the states whose land requirement is known.
var landPerMWAcres = map[string]float64{
	"Rajasthan":      5.0,
	"Gujarat":        4.5,
	"Madhya Pradesh": 4.5,
	"Andhra Pradesh": 4.5,
	"Karnataka":      4.5,
	"Tamil Nadu":     4.5,
	"Maharashtra":    4.5,
	"Uttar Pradesh":  4.5,
}

// Panel looks up a technology by name, case-insensitively.
func Panel(name string) (PanelTechnology, error) {
	for _, p := range Panels {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return PanelTechnology{}, fmt.Errorf("unknown panel type %q", name)
}

// LandPerMW returns the land requirement in acres per MW for a state.
func LandPerMW(state string) (float64, error) {
	canonical, ok := lookupState(state)
	if !ok {
		return 0, fmt.Errorf("unknown state %q", state)
	}
	if acres, ok := landPerMWAcres[canonical]; ok {
		return acres, nil
	}
	return DefaultLandPerMWAcres, nil
}

// Land is the site footprint of a plant.
type Land struct {
	Acres    float64
	Hectares float64
}

// LandRequirement scales a per-MW footprint to the plant size.
func LandRequirement(capacityMW, acresPerMW float64) Land {
	acres := capacityMW * acresPerMW
	return Land{Acres: acres, Hectares: acres * HectaresPerAcre}
}

// EstimateCUF derives a capacity utilization factor from annual irradiation
// in kWh/m²/year.
func EstimateCUF(irradiation float64) float64 {
	return irradiation * PerformanceRatio / model.HoursPerYear
}

// Defaults returns the baseline parameter set for a panel technology.
func Defaults(panel PanelTechnology) model.ProjectParameters {
	return model.ProjectParameters{
		CapacityMW:       1,
		CUF:              EstimateCUF(1800),
		CapitalCostPerMW: panel.CapitalCostPerMW,
		OMCostPerMW:      300_000,
		OMEscalation:     0.05,
		Tariff:           3.50,
		DiscountRate:     0.08,
		Degradation:      0.005,
		LifeYears:        25,
		LoanFraction:     0.70,
		LoanRate:         0.10,
		LoanTenureYears:  10,
		DepreciationRate: 0.0528,
		TaxRate:          0.25,
	}
}

// PanelNames returns the technology names in display order.
func PanelNames() []string {
	names := make([]string, len(Panels))
	for i, p := range Panels {
		names[i] = p.Name
	}
	return names
}

func lookupState(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, s := range States {
		if strings.EqualFold(s, name) {
			return s, true
		}
	}
	return "", false
}
