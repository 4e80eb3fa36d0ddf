// Package export writes and reads the tabular cash-flow export consumed by
// downstream spreadsheets.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"SolarSentinel/internal/calculator"
	"SolarSentinel/internal/model"

	"github.com/shopspring/decimal"
)

// Header is the fixed column order of the export.
var Header = []string{
	"Year",
	"Energy Output (kWh)",
	"Revenue (₹)",
	"O&M Cost (₹)",
	"EBITDA (₹)",
	"Profit (₹)",
	"Discounted CF (Project) (₹)",
	"Cumulative CF (Project) (₹)",
	"Discounted CF (Equity) (₹)",
	"Cumulative CF (Equity) (₹)",
}

// places is the number of decimals every amount is rounded to.
const places = 2

// Row is one line of the export.
type Row struct {
	Year                int
	EnergyKWh           decimal.Decimal
	Revenue             decimal.Decimal
	OMCost              decimal.Decimal
	EBITDA              decimal.Decimal
	Profit              decimal.Decimal
	DiscountedProjectCF decimal.Decimal
	CumulativeProjectCF decimal.Decimal
	DiscountedEquityCF  decimal.Decimal
	CumulativeEquityCF  decimal.Decimal
}

// Rows converts a result into export rows. Year 0 carries the outlay in the
// project columns and the equity outlay in the cumulative equity column.
func Rows(res *model.ProjectResult, discountRate float64) []Row {
	rows := make([]Row, 0, len(res.Years))
	var cumProject, cumEquity float64
	for _, y := range res.Years {
		cumProject += y.ProjectCashFlow
		cumEquity += y.EquityCashFlow

		row := Row{
			Year:                y.Year,
			EnergyKWh:           amount(y.EnergyKWh),
			Revenue:             amount(y.Revenue),
			OMCost:              amount(y.OMCost),
			EBITDA:              amount(y.EBITDA),
			Profit:              amount(y.Profit),
			DiscountedProjectCF: amount(calculator.Discount(y.ProjectCashFlow, discountRate, y.Year)),
			CumulativeProjectCF: amount(cumProject),
			DiscountedEquityCF:  amount(calculator.Discount(y.EquityCashFlow, discountRate, y.Year)),
			CumulativeEquityCF:  amount(cumEquity),
		}
		if y.Year == 0 {
			row.DiscountedEquityCF = decimal.Zero
		}
		rows = append(rows, row)
	}
	return rows
}

// Write emits the header and one record per row.
func Write(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Year),
			r.EnergyKWh.StringFixed(places),
			r.Revenue.StringFixed(places),
			r.OMCost.StringFixed(places),
			r.EBITDA.StringFixed(places),
			r.Profit.StringFixed(places),
			r.DiscountedProjectCF.StringFixed(places),
			r.CumulativeProjectCF.StringFixed(places),
			r.DiscountedEquityCF.StringFixed(places),
			r.CumulativeEquityCF.StringFixed(places),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write year %d: %w", r.Year, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the export for res to path, creating parent directories.
func WriteFile(path string, res *model.ProjectResult, discountRate float64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	if err := Write(f, Rows(res, discountRate)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read parses an export produced by Write.
func Read(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range Header {
		if header[i] != h {
			return nil, fmt.Errorf("column %d: expected %q, got %q", i+1, h, header[i])
		}
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		row, err := parseRow(record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(record []string) (Row, error) {
	year, err := strconv.Atoi(record[0])
	if err != nil {
		return Row{}, fmt.Errorf("year: %w", err)
	}
	values := make([]decimal.Decimal, len(record)-1)
	for i, field := range record[1:] {
		d, err := decimal.NewFromString(field)
		if err != nil {
			return Row{}, fmt.Errorf("%s: %w", Header[i+1], err)
		}
		values[i] = d
	}
	return Row{
		Year:                year,
		EnergyKWh:           values[0],
		Revenue:             values[1],
		OMCost:              values[2],
		EBITDA:              values[3],
		Profit:              values[4],
		DiscountedProjectCF: values[5],
		CumulativeProjectCF: values[6],
		DiscountedEquityCF:  values[7],
		CumulativeEquityCF:  values[8],
	}, nil
}

func amount(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(places)
}

// FileStem turns a project name into a file stem safe to join under an export
// directory. Only letters and digits survive; runs of anything else become a
// single dash, so path separators and dot segments never reach the file system.
func FileStem(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
		} else if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	stem := strings.TrimSuffix(b.String(), "-")
	if stem == "" {
		return "project"
	}
	return stem
}
