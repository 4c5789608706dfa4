// Package project converts the consolidated portfolio P&L into unlevered
// free cash flow, a DCF valuation and the project-level KPI set.
package project

import (
	"fmt"
	"math"

	"resort_proforma/pkg/core/finmath"
	"resort_proforma/pkg/models"
)

// AnnualCashFlow is the unlevered cash flow build for one year.
// NOI already nets maintenance capex (it is subtracted once, inside the
// operation engines), so the FCF bridge only adjusts for working capital:
//
//	UFCF(t) = NOI(t) - dWC(t) == EBITDA(t) - maintCapex(t) - dWC(t)
type AnnualCashFlow struct {
	YearIndex           int     `json:"yearIndex"`
	Noi                 float64 `json:"noi"`
	DeltaWorkingCapital float64 `json:"deltaWorkingCapital"`
	UnleveredFcf        float64 `json:"unleveredFcf"`
}

// DcfValuation is the two-stage Gordon-growth valuation.
type DcfValuation struct {
	PvFcf           float64 `json:"pvFcf"`
	TerminalValue   float64 `json:"terminalValue"`
	PvTerminal      float64 `json:"pvTerminal"`
	EnterpriseValue float64 `json:"enterpriseValue"`
}

// ProjectKpis are the headline return metrics. IRR and payback are nil
// (not zero, not an error) when numerically undefined.
type ProjectKpis struct {
	Npv            float64  `json:"npv"`
	UnleveredIrr   *float64 `json:"unleveredIrr"`
	EquityMultiple float64  `json:"equityMultiple"`
	PaybackPeriod  *int     `json:"paybackPeriod"` // first 1-based year, nil if never
	Wacc           float64  `json:"wacc"`
}

// Result is the full project-stage output.
type Result struct {
	UnleveredFcf []AnnualCashFlow `json:"unleveredFcf"`
	Dcf          DcfValuation     `json:"dcf"`
	Kpis         ProjectKpis      `json:"kpis"`
}

// Run builds the unlevered cash-flow series and valuation from the
// consolidated annual P&L. The capital structure only feeds the WACC;
// debt cash flows belong to the capital stage.
func Run(consolidated []models.AnnualPnl, pc models.ProjectConfig, cs models.CapitalStructureConfig) (*Result, error) {
	if len(consolidated) == 0 {
		return nil, fmt.Errorf("project engine: empty consolidated P&L")
	}
	if pc.DiscountRate <= pc.TerminalGrowthRate {
		return nil, fmt.Errorf("project engine: discount rate %f must exceed terminal growth %f",
			pc.DiscountRate, pc.TerminalGrowthRate)
	}

	horizon := len(consolidated)
	fcf := make([]AnnualCashFlow, horizon)
	prevRevenue := 0.0
	for t, year := range consolidated {
		deltaWC := pc.WorkingCapitalPct * (year.TotalRevenue - prevRevenue)
		fcf[t] = AnnualCashFlow{
			YearIndex:           year.YearIndex,
			Noi:                 year.Noi,
			DeltaWorkingCapital: deltaWC,
			UnleveredFcf:        year.Noi - deltaWC,
		}
		prevRevenue = year.TotalRevenue
	}

	// --- DCF ---
	r := pc.DiscountRate
	g := pc.TerminalGrowthRate
	pvFcf := 0.0
	for t := range fcf {
		pvFcf += fcf[t].UnleveredFcf / math.Pow(1+r, float64(t+1))
	}
	terminal := fcf[horizon-1].UnleveredFcf * (1 + g) / (r - g)
	pvTerminal := terminal / math.Pow(1+r, float64(horizon))
	dcf := DcfValuation{
		PvFcf:           pvFcf,
		TerminalValue:   terminal,
		PvTerminal:      pvTerminal,
		EnterpriseValue: pvFcf + pvTerminal,
	}

	// --- KPIs ---
	// Flow series for IRR/payback: year-0 investment out, then H years in.
	flows := make([]float64, 0, horizon+1)
	flows = append(flows, -pc.InitialInvestment)
	totalInflows := 0.0
	for _, cf := range fcf {
		flows = append(flows, cf.UnleveredFcf)
		if cf.UnleveredFcf > 0 {
			totalInflows += cf.UnleveredFcf
		}
	}

	kpis := ProjectKpis{
		Npv:            dcf.EnterpriseValue - pc.InitialInvestment,
		UnleveredIrr:   finmath.IRR(flows),
		EquityMultiple: totalInflows / pc.InitialInvestment,
		PaybackPeriod:  payback(fcf, pc.InitialInvestment),
		Wacc:           CalculateWacc(pc, cs),
	}

	return &Result{UnleveredFcf: fcf, Dcf: dcf, Kpis: kpis}, nil
}

// payback returns the first 1-based year where cumulative FCF covers the
// initial investment, nil if it never does over the horizon.
func payback(fcf []AnnualCashFlow, investment float64) *int {
	cum := 0.0
	for t, cf := range fcf {
		cum += cf.UnleveredFcf
		if cum >= investment {
			year := t + 1
			return &year
		}
	}
	return nil
}
