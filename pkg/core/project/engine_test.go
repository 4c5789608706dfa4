package project

import (
	"math"
	"testing"

	"resort_proforma/pkg/models"
)

// flatPnl builds a consolidated series with constant NOI and revenue.
func flatPnl(horizon int, revenue, noi float64) []models.AnnualPnl {
	out := make([]models.AnnualPnl, horizon)
	for y := range out {
		out[y] = models.AnnualPnl{YearIndex: y, TotalRevenue: revenue, Noi: noi}
	}
	return out
}

func baseConfig() models.ProjectConfig {
	return models.ProjectConfig{
		DiscountRate:       0.10,
		TerminalGrowthRate: 0.02,
		InitialInvestment:  10_000_000,
		WorkingCapitalPct:  0.0,
	}
}

func TestRun_FlatPerpetuityHandWorked(t *testing.T) {
	// Constant 1,000,000 NOI over 5 years, r=10%, g=2%, no working capital.
	// PV(FCF) = 1M * annuity(10%,5) = 1M * 3.790787 = 3,790,786.77
	// TV = 1M*1.02/0.08 = 12,750,000; PV(TV) = 12.75M/1.1^5 = 7,916,746.95
	pnl := flatPnl(5, 4_000_000, 1_000_000)
	res, err := Run(pnl, baseConfig(), models.CapitalStructureConfig{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if math.Abs(res.Dcf.PvFcf-3790786.769) > 1 {
		t.Errorf("Expected PV(FCF) ~3790787, got %f", res.Dcf.PvFcf)
	}
	if math.Abs(res.Dcf.TerminalValue-12750000) > 1 {
		t.Errorf("Expected TV 12750000, got %f", res.Dcf.TerminalValue)
	}
	if math.Abs(res.Dcf.PvTerminal-7916746.95) > 1 {
		t.Errorf("Expected PV(TV) ~7916747, got %f", res.Dcf.PvTerminal)
	}
	wantNpv := res.Dcf.EnterpriseValue - 10_000_000
	if math.Abs(res.Kpis.Npv-wantNpv) > 1e-6 {
		t.Errorf("NPV should be EV - initial investment")
	}
}

func TestRun_WorkingCapitalOnlyOnRevenueChange(t *testing.T) {
	pc := baseConfig()
	pc.WorkingCapitalPct = 0.05
	pnl := flatPnl(3, 4_000_000, 1_000_000)
	pnl[1].TotalRevenue = 5_000_000 // +1M revenue in year 1

	res, err := Run(pnl, pc, models.CapitalStructureConfig{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Year 0: revenue steps from 0 to 4M -> dWC = 200,000
	if math.Abs(res.UnleveredFcf[0].DeltaWorkingCapital-200000) > 1e-6 {
		t.Errorf("Expected year-0 dWC 200000, got %f", res.UnleveredFcf[0].DeltaWorkingCapital)
	}
	// Year 1: +1M revenue -> dWC = 50,000
	if math.Abs(res.UnleveredFcf[1].DeltaWorkingCapital-50000) > 1e-6 {
		t.Errorf("Expected year-1 dWC 50000, got %f", res.UnleveredFcf[1].DeltaWorkingCapital)
	}
	// Year 2: revenue falls back -> dWC released
	if math.Abs(res.UnleveredFcf[2].DeltaWorkingCapital-(-50000)) > 1e-6 {
		t.Errorf("Expected year-2 dWC -50000, got %f", res.UnleveredFcf[2].DeltaWorkingCapital)
	}
	// UFCF = NOI - dWC
	if math.Abs(res.UnleveredFcf[1].UnleveredFcf-(1_000_000-50000)) > 1e-6 {
		t.Errorf("UFCF bridge broken: got %f", res.UnleveredFcf[1].UnleveredFcf)
	}
}

func TestRun_HigherDiscountLowersNpv(t *testing.T) {
	pnl := flatPnl(5, 4_000_000, 1_000_000)
	at10, err := Run(pnl, baseConfig(), models.CapitalStructureConfig{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	pc := baseConfig()
	pc.DiscountRate = 0.12
	at12, err := Run(pnl, pc, models.CapitalStructureConfig{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if at12.Kpis.Npv >= at10.Kpis.Npv {
		t.Errorf("NPV must strictly decrease with discount rate: %f vs %f", at12.Kpis.Npv, at10.Kpis.Npv)
	}
}

func TestRun_IrrAndPaybackNilWithoutSignChange(t *testing.T) {
	// All-negative NOI: cash never comes back.
	pnl := flatPnl(4, 1_000_000, -100_000)
	res, err := Run(pnl, baseConfig(), models.CapitalStructureConfig{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Kpis.UnleveredIrr != nil {
		t.Errorf("Expected nil IRR, got %f", *res.Kpis.UnleveredIrr)
	}
	if res.Kpis.PaybackPeriod != nil {
		t.Errorf("Expected nil payback, got %d", *res.Kpis.PaybackPeriod)
	}
}

func TestRun_Payback(t *testing.T) {
	pc := baseConfig()
	pc.InitialInvestment = 2_500_000
	pnl := flatPnl(5, 4_000_000, 1_000_000)
	res, err := Run(pnl, pc, models.CapitalStructureConfig{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	// Cumulative FCF crosses 2.5M during year 3.
	if res.Kpis.PaybackPeriod == nil || *res.Kpis.PaybackPeriod != 3 {
		t.Errorf("Expected payback year 3, got %v", res.Kpis.PaybackPeriod)
	}
}

func TestCalculateWacc(t *testing.T) {
	pc := models.ProjectConfig{DiscountRate: 0.12, InitialInvestment: 100, TaxRate: 0.25}
	cs := models.CapitalStructureConfig{Tranches: []models.DebtTranche{
		{Principal: 60, InterestRate: 0.06, StartYear: 0},
	}}
	// wd=0.6, kd=0.06*0.75=0.045, we=0.4, ke=0.12 -> 0.4*0.12 + 0.6*0.045 = 0.075
	got := CalculateWacc(pc, cs)
	if math.Abs(got-0.075) > 1e-9 {
		t.Errorf("Expected WACC 0.075, got %f", got)
	}

	// No day-one debt: WACC is the cost of equity.
	cs.Tranches[0].StartYear = 2
	if got := CalculateWacc(pc, cs); got != 0.12 {
		t.Errorf("Expected all-equity WACC 0.12, got %f", got)
	}
}
