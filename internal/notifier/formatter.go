package notifier

import (
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	"SolarSentinel/internal/model"
	"SolarSentinel/internal/portfolio"
	"SolarSentinel/internal/verdict"

	"github.com/dustin/go-humanize"
)

// DigestLine is one project's row in the portfolio digest. Err is set when
// the project could not be evaluated.
type DigestLine struct {
	Name   string
	Result *model.ProjectResult
	Err    error
}

// FormatProjectReport formats a single appraisal into a Telegram message.
func FormatProjectReport(p portfolio.Project, res *model.ProjectResult) string {
	var b strings.Builder
	params := p.Params

	b.WriteString(fmt.Sprintf("☀️ <b>%s</b> | %s\n\n", html.EscapeString(p.Name), time.Now().Format("2006-01-02")))

	b.WriteString("🏗 <b>Plant</b>\n")
	b.WriteString(fmt.Sprintf("Panel: %s | Capacity: %s MW\n", html.EscapeString(p.Panel), humanize.Ftoa(params.CapacityMW)))
	if p.State != "" {
		b.WriteString(fmt.Sprintf("State: %s\n", html.EscapeString(p.State)))
	}
	b.WriteString(fmt.Sprintf("Land: %.2f acres (%.2f ha)\n", p.Land.Acres, p.Land.Hectares))
	b.WriteString(fmt.Sprintf("CUF: %.2f%% | Degradation: %.2f%%/yr\n\n", params.CUF*100, params.Degradation*100))

	b.WriteString("💰 <b>Financing</b>\n")
	b.WriteString(fmt.Sprintf("Capital cost: ₹%s\n", rupees(params.CapitalCost())))
	b.WriteString(fmt.Sprintf("Debt: ₹%s at %.2f%% over %d yrs\n", rupees(params.LoanAmount()), params.LoanRate*100, params.LoanTenureYears))
	b.WriteString(fmt.Sprintf("Equity: ₹%s\n", rupees(params.EquityOutlay())))
	b.WriteString(fmt.Sprintf("Tariff: ₹%.2f/kWh | Discount rate: %.2f%%\n\n", params.Tariff, params.DiscountRate*100))

	b.WriteString(formatMetrics(res.Metrics, params.DiscountRate))
	return b.String()
}

func formatMetrics(m model.Metrics, discountRate float64) string {
	var b strings.Builder
	b.WriteString("📈 <b>Metrics</b>\n")
	b.WriteString(fmt.Sprintf("Project IRR: %s\n", percent(m.ProjectIRR)))
	b.WriteString(fmt.Sprintf("Equity IRR: %s\n", percent(m.EquityIRR)))
	b.WriteString(fmt.Sprintf("NPV @ %.2f%%: ₹%s\n", discountRate*100, rupees(m.NPV)))
	if m.LCOE != nil {
		b.WriteString(fmt.Sprintf("LCOE: ₹%.2f/kWh\n", *m.LCOE))
	} else {
		b.WriteString("LCOE: n/a\n")
	}
	if m.PaybackYears != nil {
		b.WriteString(fmt.Sprintf("Payback: %d yrs\n", *m.PaybackYears))
	} else {
		b.WriteString("Payback: not within life\n")
	}
	b.WriteString(fmt.Sprintf("\n%s <b>%s</b>\n", verdictIcon(m.Feasibility), m.Feasibility))

	for _, w := range m.Warnings {
		b.WriteString(fmt.Sprintf("⚠️ %s\n", html.EscapeString(w)))
	}
	return b.String()
}

// FormatPortfolioDigest formats a one-line-per-project summary.
func FormatPortfolioDigest(lines []DigestLine) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📋 <b>Portfolio digest</b> | %s\n\n", time.Now().Format("2006-01-02 15:04")))

	if len(lines) == 0 {
		b.WriteString("No projects configured.\n")
		return b.String()
	}

	feasible := 0
	for _, l := range lines {
		name := html.EscapeString(l.Name)
		if l.Err != nil {
			b.WriteString(fmt.Sprintf("❌ %s: %s\n", name, html.EscapeString(l.Err.Error())))
			continue
		}
		m := l.Result.Metrics
		if m.Feasibility == model.Feasible {
			feasible++
		}
		b.WriteString(fmt.Sprintf("%s %s: IRR %s | NPV ₹%s | LCOE %s\n",
			verdictIcon(m.Feasibility), name, percent(m.ProjectIRR), rupees(m.NPV), lcoe(m.LCOE)))
	}
	b.WriteString(fmt.Sprintf("\n%d of %d projects feasible\n", feasible, len(lines)))
	return b.String()
}

// FormatVerdictChange formats an alert for a verdict flip.
func FormatVerdictChange(c verdict.Change) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔔 <b>Verdict change: %s</b>\n\n", html.EscapeString(c.Project)))
	b.WriteString(fmt.Sprintf("%s %s → %s %s\n",
		verdictIcon(c.Previous.Feasibility), c.Previous.Feasibility,
		verdictIcon(c.Current.Feasibility), c.Current.Feasibility))
	b.WriteString(fmt.Sprintf("Project IRR: %s → %s\n", percent(c.Previous.ProjectIRR), percent(c.Current.ProjectIRR)))
	b.WriteString(fmt.Sprintf("NPV: ₹%s → ₹%s\n", rupees(c.Previous.NPV), rupees(c.Current.NPV)))
	if !c.Previous.EvaluatedAt.IsZero() {
		b.WriteString(fmt.Sprintf("Previous evaluation: %s\n", humanize.Time(c.Previous.EvaluatedAt)))
	}
	return b.String()
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

func lcoe(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("₹%.2f", *v)
}

func verdictIcon(f model.Feasibility) string {
	switch f {
	case model.Feasible:
		return "✅"
	case model.NotFeasible:
		return "🔴"
	default:
		return "❔"
	}
}
