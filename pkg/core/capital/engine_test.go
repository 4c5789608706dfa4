package capital

import (
	"math"
	"testing"

	"resort_proforma/pkg/models"
)

func flatAnnual(horizon int, noi float64) []models.AnnualPnl {
	out := make([]models.AnnualPnl, horizon)
	for y := range out {
		out[y] = models.AnnualPnl{YearIndex: y, TotalRevenue: noi * 2, Noi: noi}
	}
	return out
}

func flatMonthly(horizon int, noi float64) []models.MonthlyPnl {
	out := make([]models.MonthlyPnl, horizon*12)
	for m := range out {
		out[m] = models.MonthlyPnl{MonthIndex: m, YearIndex: m / 12, Noi: noi / 12}
	}
	return out
}

func flatUfcf(horizon int, v float64) []float64 {
	out := make([]float64, horizon)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestRun_OwnerFlowsShapeAndEquity(t *testing.T) {
	const horizon = 5
	pc := models.ProjectConfig{InitialInvestment: 10_000, DiscountRate: 0.1, TerminalGrowthRate: 0.02}
	cs := models.CapitalStructureConfig{Tranches: []models.DebtTranche{
		{Name: "senior", Principal: 6_000, InterestRate: 0.05, TermYears: 10, AmortType: models.AmortBullet, OriginationFeePct: 0.01},
	}}

	res, err := Run(flatAnnual(horizon, 1_500), flatUfcf(horizon, 1_500), cs, pc, flatMonthly(horizon, 1_500))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(res.OwnerLeveredCashFlows) != horizon+1 {
		t.Fatalf("Owner flows must have horizon+1 entries, got %d", len(res.OwnerLeveredCashFlows))
	}
	// Equity check = 10000 - 6000*(1-0.01) = 4060
	if math.Abs(res.EquityInvestment-4060) > 1e-9 {
		t.Errorf("Expected equity 4060, got %f", res.EquityInvestment)
	}
	if math.Abs(res.OwnerLeveredCashFlows[0]-(-4060)) > 1e-9 {
		t.Errorf("Owner flow[0] should be -equity, got %f", res.OwnerLeveredCashFlows[0])
	}
	// Levered FCF = 1500 - 300 interest = 1200 per year
	for y := 0; y < horizon; y++ {
		if math.Abs(res.LeveredFcf[y]-1200) > 1e-9 {
			t.Errorf("Year %d: levered FCF %f, expected 1200", y, res.LeveredFcf[y])
		}
	}
}

func TestRun_DscrAndLtv(t *testing.T) {
	const horizon = 4
	pc := models.ProjectConfig{InitialInvestment: 10_000, DiscountRate: 0.1}
	cs := models.CapitalStructureConfig{Tranches: []models.DebtTranche{
		{Name: "senior", Principal: 5_000, InterestRate: 0.06, TermYears: 4, AmortType: models.AmortBullet},
	}}

	res, err := Run(flatAnnual(horizon, 900), flatUfcf(horizon, 900), cs, pc, flatMonthly(horizon, 900))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// DSCR year 0 = 900 / 300 = 3.0
	if res.DebtKpis.Dscr[0] == nil || math.Abs(*res.DebtKpis.Dscr[0]-3.0) > 1e-9 {
		t.Errorf("Expected DSCR 3.0, got %v", res.DebtKpis.Dscr[0])
	}
	// LTV year 0 = 5000/10000 per the configured initial investment
	if math.Abs(res.DebtKpis.Ltv[0]-0.5) > 1e-9 {
		t.Errorf("Expected LTV 0.5, got %f", res.DebtKpis.Ltv[0])
	}
	if len(res.DebtKpis.MonthlyDscr) != horizon*12 {
		t.Fatalf("Expected %d monthly DSCR entries, got %d", horizon*12, len(res.DebtKpis.MonthlyDscr))
	}
	// Monthly cash balance accumulates NOI - debt service
	first := res.DebtKpis.MonthlyCashBalance[0]
	want := 900.0/12 - 5000*0.06/12
	if math.Abs(first-want) > 1e-9 {
		t.Errorf("Expected first monthly cash %f, got %f", want, first)
	}
}

func TestRun_NoDebtMeansNilDscr(t *testing.T) {
	const horizon = 3
	pc := models.ProjectConfig{InitialInvestment: 5_000, DiscountRate: 0.1}
	res, err := Run(flatAnnual(horizon, 800), flatUfcf(horizon, 800), models.CapitalStructureConfig{}, pc, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for y, d := range res.DebtKpis.Dscr {
		if d != nil {
			t.Errorf("Year %d: DSCR should be nil with no debt service, got %f", y, *d)
		}
	}
	if res.EquityInvestment != 5_000 {
		t.Errorf("Unlevered equity should equal initial investment, got %f", res.EquityInvestment)
	}
	for y := range res.LeveredFcf {
		if res.LeveredFcf[y] != 800 {
			t.Errorf("Unlevered project: levered FCF should equal UFCF, got %f", res.LeveredFcf[y])
		}
	}
}

func TestRun_LaterFundingAddsProceeds(t *testing.T) {
	const horizon = 5
	pc := models.ProjectConfig{InitialInvestment: 10_000, DiscountRate: 0.1}
	cs := models.CapitalStructureConfig{Tranches: []models.DebtTranche{
		{Name: "expansion", Principal: 2_000, InterestRate: 0.05, TermYears: 10, AmortType: models.AmortBullet, StartYear: 2, OriginationFeePct: 0.02},
	}}

	res, err := Run(flatAnnual(horizon, 1_000), flatUfcf(horizon, 1_000), cs, pc, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Year-2 draw: +2000*0.98 proceeds less 100 first-year interest
	want := 1_000 + 2_000*0.98 - 100
	if math.Abs(res.LeveredFcf[2]-want) > 1e-9 {
		t.Errorf("Expected year-2 levered FCF %f, got %f", want, res.LeveredFcf[2])
	}
	// Equity check untouched by later draws
	if res.EquityInvestment != 10_000 {
		t.Errorf("Expected equity 10000, got %f", res.EquityInvestment)
	}
}

func TestRun_ContractChecks(t *testing.T) {
	pc := models.ProjectConfig{InitialInvestment: 1_000}
	if _, err := Run(nil, nil, models.CapitalStructureConfig{}, pc, nil); err == nil {
		t.Error("Expected error for empty P&L")
	}
	if _, err := Run(flatAnnual(3, 100), flatUfcf(2, 100), models.CapitalStructureConfig{}, pc, nil); err == nil {
		t.Error("Expected error for UFCF length mismatch")
	}
	if _, err := Run(flatAnnual(3, 100), flatUfcf(3, 100), models.CapitalStructureConfig{}, pc, flatMonthly(2, 100)); err == nil {
		t.Error("Expected error for monthly length mismatch")
	}
}
