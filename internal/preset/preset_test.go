package preset

import (
	"math"
	"strings"
	"testing"
)

func TestEstimateCUF(t *testing.T) {
	got := EstimateCUF(1800)
	expected := 1800 * 0.75 / 8760
	if math.Abs(got-expected) > 1e-12 {
		t.Errorf("EstimateCUF(1800) = %v, expected %v", got, expected)
	}
	if math.Abs(got-0.15411) > 1e-5 {
		t.Errorf("EstimateCUF(1800) = %.5f, expected ~0.15411", got)
	}
}

func TestPanel(t *testing.T) {
	tests := []struct {
		name    string
		capital float64
	}{
		{"Monocrystalline", 60_000_000},
		{"polycrystalline", 50_000_000},
		{" Thin Film ", 45_000_000},
	}
	for _, tt := range tests {
		p, err := Panel(tt.name)
		if err != nil {
			t.Fatalf("Panel(%q): %v", tt.name, err)
		}
		if p.CapitalCostPerMW != tt.capital {
			t.Errorf("Panel(%q) capital = %.0f, expected %.0f", tt.name, p.CapitalCostPerMW, tt.capital)
		}
	}
	if _, err := Panel("Perovskite"); err == nil {
		t.Error("expected error for unknown panel")
	}
}

func TestPanelNames(t *testing.T) {
	got := strings.Join(PanelNames(), "|")
	expected := "Monocrystalline|Polycrystalline|Thin Film"
	if got != expected {
		t.Errorf("PanelNames() = %q, expected %q", got, expected)
	}
	for _, name := range PanelNames() {
		if _, err := Panel(name); err != nil {
			t.Errorf("Panel(%q): %v", name, err)
		}
	}
}

func TestLandPerMW(t *testing.T) {
	tests := []struct {
		state string
		acres float64
	}{
		{"Rajasthan", 5.0},
		{"gujarat", 4.5},
		{"Kerala", DefaultLandPerMWAcres},
		{"Ladakh", DefaultLandPerMWAcres},
	}
	for _, tt := range tests {
		got, err := LandPerMW(tt.state)
		if err != nil {
			t.Fatalf("LandPerMW(%q): %v", tt.state, err)
		}
		if got != tt.acres {
			t.Errorf("LandPerMW(%q) = %v, expected %v", tt.state, got, tt.acres)
		}
	}
	if _, err := LandPerMW("Atlantis"); err == nil {
		t.Error("expected error for unknown state")
	}
}

func TestLandRequirement(t *testing.T) {
	land := LandRequirement(2, 5)
	if land.Acres != 10 {
		t.Errorf("acres = %v, expected 10", land.Acres)
	}
	if math.Abs(land.Hectares-4.047) > 1e-9 {
		t.Errorf("hectares = %v, expected 4.047", land.Hectares)
	}
}

func TestDefaultsAreValid(t *testing.T) {
	for _, p := range Panels {
		if err := Defaults(p).Validate(); err != nil {
			t.Errorf("defaults for %s invalid: %v", p.Name, err)
		}
	}
}
