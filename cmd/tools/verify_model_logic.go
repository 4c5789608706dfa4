// Standalone verification harness: runs the pipeline on a reference
// scenario and cross-checks the accounting identities against
// independent derivations. Exits non-zero on any failed check, so it
// doubles as a smoke test in CI.
package main

import (
	"context"
	"fmt"
	"math"
	"os"

	"resort_proforma/pkg/core/pipeline"
	"resort_proforma/pkg/models"
)

const tolerance = 1e-6

var failures int

func check(name string, ok bool, detail string) {
	if ok {
		fmt.Printf("[PASS] %s\n", name)
	} else {
		failures++
		fmt.Printf("[FAIL] %s: %s\n", name, detail)
	}
}

func main() {
	in := referenceInput()
	out, err := pipeline.New(nil).Run(context.Background(), in)
	if err != nil {
		fmt.Printf("[FAIL] pipeline run: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("--- Operating Identities ---")
	verifyAnnualIsSumOfMonths(out)
	verifyNoiIdentity(out)

	fmt.Println("--- Cash Flow Identities ---")
	verifyUfcfIdentity(out, in)

	fmt.Println("--- Debt Identities ---")
	verifyDebtRollforward(out)

	fmt.Println("--- Waterfall Identities ---")
	verifyCashConservation(out)

	if failures > 0 {
		fmt.Printf("\n%d check(s) failed\n", failures)
		os.Exit(1)
	}
	fmt.Println("\nAll checks passed")
}

// Annual P&L must equal the sum of its 12 months, exactly.
func verifyAnnualIsSumOfMonths(out *pipeline.FullModelOutput) {
	for y, annual := range out.Scenario.ConsolidatedAnnual {
		var rev, noi float64
		for m := y * 12; m < (y+1)*12; m++ {
			rev += out.Scenario.ConsolidatedMonthly[m].TotalRevenue
			noi += out.Scenario.ConsolidatedMonthly[m].Noi
		}
		check(fmt.Sprintf("year %d annual == sum of months (revenue)", y),
			annual.TotalRevenue == rev,
			fmt.Sprintf("annual %.6f vs monthly sum %.6f", annual.TotalRevenue, rev))
		check(fmt.Sprintf("year %d annual == sum of months (NOI)", y),
			annual.Noi == noi,
			fmt.Sprintf("annual %.6f vs monthly sum %.6f", annual.Noi, noi))
	}
}

// NOI nets maintenance capex exactly once: NOI == EBITDA - maintCapex.
func verifyNoiIdentity(out *pipeline.FullModelOutput) {
	for _, p := range out.Scenario.ConsolidatedAnnual {
		want := p.Ebitda - p.MaintenanceCapex
		check(fmt.Sprintf("year %d NOI == EBITDA - maintenance capex", p.YearIndex),
			math.Abs(p.Noi-want) < tolerance,
			fmt.Sprintf("NOI %.6f vs %.6f", p.Noi, want))
	}
}

// UFCF derived independently from the P&L: EBITDA - maintCapex - dWC.
// Matching the project stage proves maintenance capex is not
// double-counted on the path through NOI.
func verifyUfcfIdentity(out *pipeline.FullModelOutput, in models.FullModelInput) {
	prevRev := 0.0
	for i, cf := range out.Project.UnleveredFcf {
		p := out.Scenario.ConsolidatedAnnual[i]
		dwc := in.ProjectConfig.WorkingCapitalPct * (p.TotalRevenue - prevRev)
		want := p.Ebitda - p.MaintenanceCapex - dwc
		check(fmt.Sprintf("year %d UFCF == EBITDA - capex - dWC", i),
			math.Abs(cf.UnleveredFcf-want) < tolerance,
			fmt.Sprintf("UFCF %.6f vs independent %.6f", cf.UnleveredFcf, want))
		prevRev = p.TotalRevenue
	}
}

// Both schedule invariants, every period of every tranche.
func verifyDebtRollforward(out *pipeline.FullModelOutput) {
	for _, ts := range out.Capital.TrancheSchedules {
		for i, e := range ts.Annual {
			check(fmt.Sprintf("tranche %s year %d beginning - principal == ending", ts.Name, i),
				math.Abs(e.BeginningBalance-e.Principal-e.EndingBalance) < tolerance,
				fmt.Sprintf("%.6f - %.6f != %.6f", e.BeginningBalance, e.Principal, e.EndingBalance))
			if i+1 < len(ts.Annual) {
				next := ts.Annual[i+1]
				check(fmt.Sprintf("tranche %s year %d ending == next beginning", ts.Name, i),
					math.Abs(e.EndingBalance-next.BeginningBalance) < tolerance,
					fmt.Sprintf("%.6f vs %.6f", e.EndingBalance, next.BeginningBalance))
			}
		}
	}
}

// Class flows must sum to the owner flow in every period.
func verifyCashConservation(out *pipeline.FullModelOutput) {
	for t, ownerFlow := range out.Capital.OwnerLeveredCashFlows {
		var sum float64
		for _, class := range out.Waterfall.Classes {
			sum += class.CashFlows[t]
		}
		check(fmt.Sprintf("period %d class flows == owner flow", t),
			math.Abs(sum-ownerFlow) < tolerance,
			fmt.Sprintf("classes %.6f vs owner %.6f", sum, ownerFlow))
	}
}

// referenceInput is a two-asset resort with debt, working capital, and
// a two-class waterfall, so every identity has something to bite on.
func referenceInput() models.FullModelInput {
	util := make([]float64, 12)
	for i := range util {
		util[i] = 0.68
	}
	return models.FullModelInput{
		Scenario: models.ProjectScenario{
			Name:         "verify-reference",
			HorizonYears: 5,
			Operations: []models.OperationConfig{
				{
					ID:                  "hotel-1",
					Name:                "Hotel",
					OperationType:       models.OpHotel,
					HorizonYears:        5,
					Capacity:            100,
					Price:               250,
					PriceGrowthRate:     0.03,
					MonthlyUtilization:  util,
					RevenueMix:          models.RevenueMix{Rooms: 0.7, Food: 0.2, Beverage: 0.1},
					CogsPct:             0.25,
					OpexPct:             0.35,
					MaintenanceCapexPct: 0.04,
				},
				{
					ID:                  "restaurant-1",
					Name:                "Restaurant",
					OperationType:       models.OpRestaurant,
					HorizonYears:        5,
					StartYear:           1,
					Capacity:            80,
					Price:               45,
					MonthlyUtilization:  flatTurns(1.5),
					RevenueMix:          models.RevenueMix{Food: 0.7, Beverage: 0.3},
					CogsPct:             0.30,
					OpexPct:             0.30,
					MaintenanceCapexPct: 0.02,
				},
			},
		},
		ProjectConfig: models.ProjectConfig{
			DiscountRate:       0.10,
			TerminalGrowthRate: 0.02,
			InitialInvestment:  25_000_000,
			WorkingCapitalPct:  0.05,
			TaxRate:            0.25,
		},
		CapitalConfig: models.CapitalStructureConfig{
			Tranches: []models.DebtTranche{
				{Name: "senior", Principal: 12_000_000, InterestRate: 0.06, TermYears: 5, AmortType: models.AmortAnnuity},
				{Name: "mezz", Principal: 3_000_000, InterestRate: 0.10, TermYears: 5, AmortType: models.AmortBullet},
			},
		},
		WaterfallConfig: models.WaterfallConfig{
			Classes: []models.EquityClass{
				{ID: "lp", ContributionPct: 0.9},
				{ID: "gp", ContributionPct: 0.1},
			},
			Tiers: []models.WaterfallTier{
				{Type: models.TierReturnOfCapital},
				{Type: models.TierPreferred, HurdleRate: 0.08},
				{Type: models.TierPromote, DistributionSplits: map[string]float64{"lp": 0.8, "gp": 0.2}},
			},
		},
	}
}

func flatTurns(t float64) []float64 {
	out := make([]float64, 12)
	for i := range out {
		out[i] = t
	}
	return out
}
