// Package report renders a FullModelOutput as a human-readable markdown
// summary, with optional HTML conversion for the API's report endpoint.
// The renderer only reads the output struct; it never reaches back into
// the engines.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"resort_proforma/pkg/core/pipeline"
)

// Markdown renders the run summary: project KPIs, valuation, annual
// P&L, debt metrics, and per-class waterfall outcomes.
func Markdown(out *pipeline.FullModelOutput) string {
	if out == nil {
		return ""
	}
	var b strings.Builder

	fmt.Fprintf(&b, "# Pro Forma Run %s\n\n", out.RunID)
	fmt.Fprintf(&b, "Computed at %s\n\n", out.ComputedAt.Format("2006-01-02 15:04:05 UTC"))

	if out.Project != nil {
		b.WriteString("## Project KPIs\n\n")
		b.WriteString("| Metric | Value |\n|---|---|\n")
		fmt.Fprintf(&b, "| NPV | %s |\n", money(out.Project.Kpis.Npv))
		fmt.Fprintf(&b, "| Unlevered IRR | %s |\n", pctOrNull(out.Project.Kpis.UnleveredIrr))
		fmt.Fprintf(&b, "| Equity Multiple | %.2fx |\n", out.Project.Kpis.EquityMultiple)
		fmt.Fprintf(&b, "| Payback Period | %s |\n", yearOrNull(out.Project.Kpis.PaybackPeriod))
		fmt.Fprintf(&b, "| WACC | %.2f%% |\n", out.Project.Kpis.Wacc*100)
		fmt.Fprintf(&b, "| Enterprise Value | %s |\n\n", money(out.Project.Dcf.EnterpriseValue))
	}

	if out.Scenario != nil {
		b.WriteString("## Consolidated Annual P&L\n\n")
		b.WriteString("| Year | Revenue | GOP | EBITDA | NOI |\n|---|---|---|---|---|\n")
		for _, p := range out.Scenario.ConsolidatedAnnual {
			fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n",
				p.YearIndex+1, money(p.TotalRevenue), money(p.Gop), money(p.Ebitda), money(p.Noi))
		}
		b.WriteString("\n")
	}

	if out.Capital != nil {
		b.WriteString("## Capital Structure\n\n")
		fmt.Fprintf(&b, "Equity investment: %s\n\n", money(out.Capital.EquityInvestment))
		if len(out.Capital.TrancheSchedules) > 0 {
			b.WriteString("| Year | Debt Service | Levered FCF | DSCR | LTV |\n|---|---|---|---|---|\n")
			for i := range out.Capital.LeveredFcf {
				dscr := "null"
				if i < len(out.Capital.DebtKpis.Dscr) && out.Capital.DebtKpis.Dscr[i] != nil {
					dscr = fmt.Sprintf("%.2fx", *out.Capital.DebtKpis.Dscr[i])
				}
				ltv := ""
				if i < len(out.Capital.DebtKpis.Ltv) {
					ltv = fmt.Sprintf("%.1f%%", out.Capital.DebtKpis.Ltv[i]*100)
				}
				fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n",
					i+1, money(out.Capital.AnnualDebtService[i]), money(out.Capital.LeveredFcf[i]), dscr, ltv)
			}
			b.WriteString("\n")
		}
	}

	if out.Waterfall != nil && len(out.Waterfall.Classes) > 0 {
		b.WriteString("## Equity Waterfall\n\n")
		b.WriteString("| Class | Contributed | Distributed | IRR | MOIC |\n|---|---|---|---|---|\n")
		for _, c := range out.Waterfall.Classes {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				c.ClassID, money(c.TotalContributed), money(c.TotalDistributed),
				pctOrNull(c.Irr), multipleOrNull(c.Moic))
		}
		b.WriteString("\n")
	}

	if len(out.CacheHits) > 0 {
		fmt.Fprintf(&b, "Stages served from cache: %s\n", strings.Join(out.CacheHits, ", "))
	}
	return b.String()
}

// Html converts the markdown summary to HTML via goldmark.
func Html(out *pipeline.FullModelOutput) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(Markdown(out)), &buf); err != nil {
		return "", fmt.Errorf("failed to render report html: %w", err)
	}
	return buf.String(), nil
}

func money(v float64) string {
	return fmt.Sprintf("$%.0f", v)
}

func pctOrNull(v *float64) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%.2f%%", *v*100)
}

func multipleOrNull(v *float64) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%.2fx", *v)
}

func yearOrNull(v *int) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("year %d", *v)
}
