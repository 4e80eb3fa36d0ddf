package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"SolarSentinel/internal/model"
	"SolarSentinel/internal/portfolio"
	"SolarSentinel/internal/sweep"

	"github.com/dustin/go-humanize"
)

func printReport(w io.Writer, p portfolio.Project, res *model.ProjectResult) {
	params := p.Params
	fmt.Fprintf(w, "%s (%s, %s MW", p.Name, p.Panel, humanize.Ftoa(params.CapacityMW))
	if p.State != "" {
		fmt.Fprintf(w, ", %s", p.State)
	}
	fmt.Fprintln(w, ")")
	fmt.Fprintf(w, "  land           %.2f acres / %.2f ha\n", p.Land.Acres, p.Land.Hectares)
	fmt.Fprintf(w, "  capital cost   ₹%s (debt ₹%s, equity ₹%s)\n",
		rupees(params.CapitalCost()), rupees(params.LoanAmount()), rupees(params.EquityOutlay()))
	fmt.Fprintf(w, "  project IRR    %s\n", percent(res.ProjectIRR))
	fmt.Fprintf(w, "  equity IRR     %s\n", percent(res.EquityIRR))
	fmt.Fprintf(w, "  NPV @ %.2f%%    ₹%s\n", params.DiscountRate*100, rupees(res.NPV))
	fmt.Fprintf(w, "  LCOE           %s\n", perKWh(res.LCOE))
	fmt.Fprintf(w, "  payback        %s\n", years(res.PaybackYears))
	fmt.Fprintf(w, "  verdict        %s\n", res.Feasibility)
	for _, warn := range res.Warnings {
		fmt.Fprintf(w, "  warning        %s\n", warn)
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Year\tEnergy kWh\tRevenue\tO&M\tEBITDA\tInterest\tProject CF\tEquity CF\t")
	for _, y := range res.Years {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n", y.Year,
			rupees(y.EnergyKWh), rupees(y.Revenue), rupees(y.OMCost), rupees(y.EBITDA),
			rupees(y.Interest), rupees(y.ProjectCashFlow), rupees(y.EquityCashFlow))
	}
	tw.Flush()
}

func printSweep(w io.Writer, axis sweep.Axis, points []sweep.Point) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\tProject IRR\tEquity IRR\tNPV\tLCOE\tPayback\tVerdict\t\n", axis)
	for _, pt := range points {
		if pt.Err != nil {
			fmt.Fprintf(tw, "%s\t%v\t\t\t\t\t\t\n", humanize.Ftoa(pt.Value), pt.Err)
			continue
		}
		m := pt.Result.Metrics
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n", humanize.Ftoa(pt.Value),
			percent(m.ProjectIRR), percent(m.EquityIRR), rupees(m.NPV), perKWh(m.LCOE), years(m.PaybackYears), m.Feasibility)
	}
	tw.Flush()
}

type sweepPoint struct {
	Value   float64        `json:"value"`
	Metrics *model.Metrics `json:"metrics,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func sweepJSON(axis sweep.Axis, points []sweep.Point) map[string]any {
	out := make([]sweepPoint, len(points))
	for i, pt := range points {
		out[i] = sweepPoint{Value: pt.Value}
		if pt.Err != nil {
			out[i].Error = pt.Err.Error()
		} else {
			m := pt.Result.Metrics
			out[i].Metrics = &m
		}
	}
	return map[string]any{"axis": axis, "points": out}
}

func rupees(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}

func percent(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", *v*100)
}

func perKWh(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("₹%.2f/kWh", *v)
}

func years(v *int) string {
	if v == nil {
		return "not within life"
	}
	return fmt.Sprintf("%d yrs", *v)
}
