package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"SolarSentinel/internal/appraisal"
	"SolarSentinel/internal/model"
)

func scenarioA(t *testing.T) (*model.ProjectResult, model.ProjectParameters) {
	t.Helper()
	p := model.ProjectParameters{
		CapacityMW:       1,
		CUF:              0.154,
		CapitalCostPerMW: 60_000_000,
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
	res, err := appraisal.EvaluateProject(p)
	if err != nil {
		t.Fatalf("EvaluateProject: %v", err)
	}
	return res, p
}

func TestWriteRead_RoundTrip(t *testing.T) {
	res, p := scenarioA(t)

	var buf bytes.Buffer
	if err := Write(&buf, Rows(res, p.DiscountRate)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	rows, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(rows) != len(res.Years) {
		t.Fatalf("expected %d rows, got %d", len(res.Years), len(rows))
	}

	y0 := rows[0]
	if y0.Year != 0 {
		t.Errorf("first row year = %d, expected 0", y0.Year)
	}
	if y0.DiscountedProjectCF.IntPart() != -60_000_000 || y0.CumulativeProjectCF.IntPart() != -60_000_000 {
		t.Errorf("year 0 project columns = %s/%s, expected -60000000", y0.DiscountedProjectCF, y0.CumulativeProjectCF)
	}
	if y0.Profit.IntPart() != -60_000_000 {
		t.Errorf("year 0 profit = %s, expected -60000000", y0.Profit)
	}
	if !y0.EnergyKWh.IsZero() || !y0.Revenue.IsZero() || !y0.DiscountedEquityCF.IsZero() {
		t.Errorf("year 0 operating columns should be zero: %+v", y0)
	}
	if y0.CumulativeEquityCF.IntPart() != -18_000_000 {
		t.Errorf("year 0 cumulative equity = %s, expected -18000000", y0.CumulativeEquityCF)
	}
	if rows[1].EnergyKWh.StringFixed(2) != "1349040.00" {
		t.Errorf("year 1 energy = %s, expected 1349040.00", rows[1].EnergyKWh.StringFixed(2))
	}
}

func TestWrite_HeaderOrder(t *testing.T) {
	res, p := scenarioA(t)
	var buf bytes.Buffer
	if err := Write(&buf, Rows(res, p.DiscountRate)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	first := strings.SplitN(buf.String(), "\n", 2)[0]
	expected := "Year,Energy Output (kWh),Revenue (₹),O&M Cost (₹),EBITDA (₹),Profit (₹),Discounted CF (Project) (₹),Cumulative CF (Project) (₹),Discounted CF (Equity) (₹),Cumulative CF (Equity) (₹)"
	if first != expected {
		t.Errorf("header = %q\nexpected %q", first, expected)
	}
}

func TestRows_CumulativeAndDiscounting(t *testing.T) {
	res, p := scenarioA(t)
	rows := Rows(res, p.DiscountRate)
	last := rows[len(rows)-1]
	sum := 0.0
	for _, y := range res.Years {
		sum += y.ProjectCashFlow
	}
	if diff := last.CumulativeProjectCF.InexactFloat64() - sum; diff > 0.01 || diff < -0.01 {
		t.Errorf("final cumulative project CF off by %.4f", diff)
	}
	expected := res.Years[1].ProjectCashFlow / 1.08
	if diff := rows[1].DiscountedProjectCF.InexactFloat64() - expected; diff > 0.01 || diff < -0.01 {
		t.Errorf("year 1 discounted CF off by %.4f", diff)
	}
}

func TestRead_RejectsWrongHeader(t *testing.T) {
	doc := "Year,Energy,Revenue,O&M Cost,EBITDA,Profit,a,b,c,d\n"
	if _, err := Read(strings.NewReader(doc)); err == nil {
		t.Error("expected header mismatch error")
	}
}

func TestWriteFile(t *testing.T) {
	res, p := scenarioA(t)
	path := filepath.Join(t.TempDir(), "nested", "plant.csv")
	if err := WriteFile(path, res, p.DiscountRate); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := Read(f)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(rows) != 26 {
		t.Errorf("expected 26 rows, got %d", len(rows))
	}
}

func TestFileStem(t *testing.T) {
	tests := map[string]string{
		"Bhadla Phase 2":    "bhadla-phase-2",
		"  Pavagada / N-3 ": "pavagada-n-3",
		"???":               "project",
		"Ūrja":              "ūrja",
		"../escaped":        "escaped",
		"..":                "project",
		`a\b/../c`:          "a-b-c",
	}
	for in, want := range tests {
		got := FileStem(in)
		if got != want {
			t.Errorf("FileStem(%q) = %q, want %q", in, got, want)
		}
		if strings.ContainsAny(got, `/\.`) {
			t.Errorf("FileStem(%q) = %q contains a path character", in, got)
		}
	}
}
