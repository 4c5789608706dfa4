// Package capital builds per-tranche debt amortization schedules, levered
// free cash flow and the debt KPI set (DSCR, LTV), and assembles the
// owner-level cash-flow series the waterfall distributes.
package capital

import (
	"fmt"

	"resort_proforma/pkg/models"
)

// TrancheSchedule pairs a tranche with its annual and monthly tables.
type TrancheSchedule struct {
	Name    string                     `json:"name"`
	Annual  []models.DebtScheduleEntry `json:"annual"`  // horizonYears entries
	Monthly []models.DebtScheduleEntry `json:"monthly"` // horizonYears*12 entries
}

// DebtKpis carries coverage and leverage series. DSCR is nil for periods
// with no debt service; LTV's denominator is always the configured initial
// investment, never a debt-derived approximation.
type DebtKpis struct {
	Dscr               []*float64 `json:"dscr"`
	Ltv                []float64  `json:"ltv"`
	MonthlyDscr        []*float64 `json:"monthlyDscr"`
	MonthlyLtv         []float64  `json:"monthlyLtv"`
	MonthlyCashBalance []float64  `json:"monthlyCashBalance"` // cumulative NOI - debt service
}

// Result is the full capital-stage output.
type Result struct {
	TrancheSchedules   []TrancheSchedule `json:"trancheSchedules"`
	AnnualDebtService  []float64         `json:"annualDebtService"`
	MonthlyDebtService []float64         `json:"monthlyDebtService"`
	LeveredFcf         []float64         `json:"leveredFcf"` // horizonYears entries
	DebtKpis           DebtKpis          `json:"debtKpis"`

	// OwnerLeveredCashFlows is the year-0 equity check (negative) followed
	// by horizonYears of levered FCF: always horizonYears+1 entries.
	OwnerLeveredCashFlows []float64 `json:"ownerLeveredCashFlows"`
	EquityInvestment      float64   `json:"equityInvestment"`
}

// Run builds schedules for every tranche and derives levered cash flows.
//
// Funding timing: tranches with startYear 0 fund alongside the initial
// investment, so their net proceeds (principal less origination fee)
// reduce the year-0 equity check. Tranches funded in later years add net
// proceeds to that year's levered FCF instead.
func Run(consolidatedAnnual []models.AnnualPnl, unleveredFcf []float64, cs models.CapitalStructureConfig, pc models.ProjectConfig, consolidatedMonthly []models.MonthlyPnl) (*Result, error) {
	horizon := len(consolidatedAnnual)
	if horizon == 0 {
		return nil, fmt.Errorf("capital engine: empty consolidated P&L")
	}
	if len(unleveredFcf) != horizon {
		return nil, fmt.Errorf("capital engine: unlevered FCF has %d entries, expected %d", len(unleveredFcf), horizon)
	}
	months := horizon * 12
	if consolidatedMonthly != nil && len(consolidatedMonthly) != months {
		return nil, fmt.Errorf("capital engine: monthly P&L has %d entries, expected %d", len(consolidatedMonthly), months)
	}

	res := &Result{
		AnnualDebtService:  make([]float64, horizon),
		MonthlyDebtService: make([]float64, months),
		LeveredFcf:         make([]float64, horizon),
	}
	annualBalance := make([]float64, horizon)  // total beginning balance per year
	monthlyBalance := make([]float64, months)
	proceeds := make([]float64, horizon) // net draw proceeds per funding year
	proceedsYear0 := 0.0

	for _, tr := range cs.Tranches {
		sched := TrancheSchedule{
			Name:    tr.Name,
			Annual:  buildSchedule(tr, horizon, 1),
			Monthly: buildSchedule(tr, horizon, 12),
		}
		for t, e := range sched.Annual {
			res.AnnualDebtService[t] += e.DebtService
			annualBalance[t] += e.BeginningBalance
		}
		for m, e := range sched.Monthly {
			res.MonthlyDebtService[m] += e.DebtService
			monthlyBalance[m] += e.BeginningBalance
		}

		net := tr.Principal * (1 - tr.OriginationFeePct)
		if tr.StartYear == 0 {
			proceedsYear0 += net
		} else if tr.StartYear < horizon {
			proceeds[tr.StartYear] += net
		}
		res.TrancheSchedules = append(res.TrancheSchedules, sched)
	}

	// --- Levered FCF and owner flows ---
	for t := 0; t < horizon; t++ {
		res.LeveredFcf[t] = unleveredFcf[t] - res.AnnualDebtService[t] + proceeds[t]
	}
	res.EquityInvestment = pc.InitialInvestment - proceedsYear0
	res.OwnerLeveredCashFlows = make([]float64, 0, horizon+1)
	res.OwnerLeveredCashFlows = append(res.OwnerLeveredCashFlows, -res.EquityInvestment)
	res.OwnerLeveredCashFlows = append(res.OwnerLeveredCashFlows, res.LeveredFcf...)

	// --- Debt KPIs ---
	res.DebtKpis.Dscr = make([]*float64, horizon)
	res.DebtKpis.Ltv = make([]float64, horizon)
	for t := 0; t < horizon; t++ {
		if res.AnnualDebtService[t] != 0 {
			dscr := consolidatedAnnual[t].Noi / res.AnnualDebtService[t]
			res.DebtKpis.Dscr[t] = &dscr
		}
		res.DebtKpis.Ltv[t] = annualBalance[t] / pc.InitialInvestment
	}

	if consolidatedMonthly != nil {
		res.DebtKpis.MonthlyDscr = make([]*float64, months)
		res.DebtKpis.MonthlyLtv = make([]float64, months)
		res.DebtKpis.MonthlyCashBalance = make([]float64, months)
		cash := 0.0
		for m := 0; m < months; m++ {
			if res.MonthlyDebtService[m] != 0 {
				dscr := consolidatedMonthly[m].Noi / res.MonthlyDebtService[m]
				res.DebtKpis.MonthlyDscr[m] = &dscr
			}
			res.DebtKpis.MonthlyLtv[m] = monthlyBalance[m] / pc.InitialInvestment
			cash += consolidatedMonthly[m].Noi - res.MonthlyDebtService[m]
			res.DebtKpis.MonthlyCashBalance[m] = cash
		}
	}

	return res, nil
}
