package e2e_test

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"resort_proforma/pkg/core/cache"
	"resort_proforma/pkg/core/pipeline"
	"resort_proforma/pkg/models"
)

// referenceInput is the benchmark scenario: a single 100-key hotel at
// $250 ADR and 70% flat occupancy over 5 years, 10% discount rate, 2%
// terminal growth.
func referenceInput() models.FullModelInput {
	util := make([]float64, 12)
	for i := range util {
		util[i] = 0.70
	}
	return models.FullModelInput{
		Scenario: models.ProjectScenario{
			Name:         "benchmark-hotel",
			HorizonYears: 5,
			Operations: []models.OperationConfig{
				{
					ID:                  "hotel-1",
					Name:                "Hotel",
					OperationType:       models.OpHotel,
					HorizonYears:        5,
					Capacity:            100,
					Price:               250,
					MonthlyUtilization:  util,
					RevenueMix:          models.RevenueMix{Rooms: 1.0},
					CogsPct:             0.25,
					OpexPct:             0.35,
					MaintenanceCapexPct: 0.04,
				},
			},
		},
		ProjectConfig: models.ProjectConfig{
			DiscountRate:       0.10,
			TerminalGrowthRate: 0.02,
			InitialInvestment:  20_000_000,
			WorkingCapitalPct:  0.05,
		},
		CapitalConfig: models.CapitalStructureConfig{
			Tranches: []models.DebtTranche{
				{Name: "senior", Principal: 10_000_000, InterestRate: 0.06, TermYears: 5, AmortType: models.AmortAnnuity},
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

func TestE2E_ReferenceHotel(t *testing.T) {
	out, err := pipeline.New(nil).Run(context.Background(), referenceInput())
	if err != nil {
		t.Fatalf("Pipeline failed: %v", err)
	}

	// Annual rooms revenue: 100 keys x 0.70 x $250 x 365 = 6,387,500.
	rev := out.Scenario.ConsolidatedAnnual[0].TotalRevenue
	if math.Abs(rev-6_387_500) > 1e-6 {
		t.Errorf("Expected year-1 revenue 6,387,500, got %f", rev)
	}

	// Finite, reproducible valuation figures.
	if math.IsNaN(out.Project.Kpis.Npv) || math.IsInf(out.Project.Kpis.Npv, 0) {
		t.Error("NPV must be finite")
	}
	if out.Project.Dcf.EnterpriseValue <= 0 {
		t.Error("Flat profitable hotel must carry a positive enterprise value")
	}
	if out.Project.Kpis.UnleveredIrr == nil {
		t.Error("Reference scenario has a sign crossing, IRR must be defined")
	}

	// Owner flow vector shape and equity check.
	if len(out.Capital.OwnerLeveredCashFlows) != 6 {
		t.Fatalf("Expected 6 owner flows, got %d", len(out.Capital.OwnerLeveredCashFlows))
	}
	if out.Capital.OwnerLeveredCashFlows[0] >= 0 {
		t.Error("Year-0 owner flow is the negative equity check")
	}
}

func TestE2E_HigherDiscountStrictlyLowersNpv(t *testing.T) {
	ctx := context.Background()

	base, err := pipeline.New(nil).Run(ctx, referenceInput())
	if err != nil {
		t.Fatalf("Pipeline failed: %v", err)
	}
	raised := referenceInput()
	raised.ProjectConfig.DiscountRate = 0.12
	out, err := pipeline.New(nil).Run(ctx, raised)
	if err != nil {
		t.Fatalf("Pipeline failed: %v", err)
	}

	if out.Project.Kpis.Npv >= base.Project.Kpis.Npv {
		t.Errorf("NPV at 12%% (%f) must be strictly below NPV at 10%% (%f)",
			out.Project.Kpis.Npv, base.Project.Kpis.Npv)
	}
}

func TestE2E_JsonRoundTripBitIdenticalKpis(t *testing.T) {
	ctx := context.Background()
	original := referenceInput()

	raw, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var decoded models.FullModelInput
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	a, err := pipeline.New(nil).Run(ctx, original)
	if err != nil {
		t.Fatalf("Pipeline failed: %v", err)
	}
	b, err := pipeline.New(nil).Run(ctx, decoded)
	if err != nil {
		t.Fatalf("Pipeline failed on round-tripped input: %v", err)
	}

	// Bit-identical, not merely close.
	if a.Project.Kpis.Npv != b.Project.Kpis.Npv {
		t.Errorf("NPV differs after round trip: %v vs %v", a.Project.Kpis.Npv, b.Project.Kpis.Npv)
	}
	if *a.Project.Kpis.UnleveredIrr != *b.Project.Kpis.UnleveredIrr {
		t.Error("IRR differs after round trip")
	}
	if a.Capital.EquityInvestment != b.Capital.EquityInvestment {
		t.Error("Equity investment differs after round trip")
	}
	for i, class := range a.Waterfall.Classes {
		if class.TotalDistributed != b.Waterfall.Classes[i].TotalDistributed {
			t.Errorf("Class %s distributions differ after round trip", class.ClassID)
		}
	}
}

func TestE2E_CacheIdempotence(t *testing.T) {
	ctx := context.Background()

	// Without cache, two runs agree.
	first, err := pipeline.New(nil).Run(ctx, referenceInput())
	if err != nil {
		t.Fatalf("Pipeline failed: %v", err)
	}
	second, err := pipeline.New(nil).Run(ctx, referenceInput())
	if err != nil {
		t.Fatalf("Pipeline failed: %v", err)
	}
	if first.Project.Kpis.Npv != second.Project.Kpis.Npv {
		t.Error("Uncached runs must be identical")
	}

	// With a shared cache, the second run is served from cache and still
	// matches the uncached result.
	orch := pipeline.New(cache.New(cache.NewMemoryStore()))
	warm, err := orch.Run(ctx, referenceInput())
	if err != nil {
		t.Fatalf("Pipeline failed: %v", err)
	}
	cached, err := orch.Run(ctx, referenceInput())
	if err != nil {
		t.Fatalf("Pipeline failed: %v", err)
	}
	if len(cached.CacheHits) != 4 {
		t.Errorf("Expected all 4 stages cached, got %v", cached.CacheHits)
	}
	if cached.Project.Kpis.Npv != warm.Project.Kpis.Npv ||
		cached.Project.Kpis.Npv != first.Project.Kpis.Npv {
		t.Error("Cached results must match uncached results exactly")
	}
}

func TestE2E_ZeroOccupancyAllZero(t *testing.T) {
	in := referenceInput()
	for i := range in.Scenario.Operations[0].MonthlyUtilization {
		in.Scenario.Operations[0].MonthlyUtilization[i] = 0
	}
	out, err := pipeline.New(nil).Run(context.Background(), in)
	if err != nil {
		t.Fatalf("Pipeline failed: %v", err)
	}
	for _, p := range out.Scenario.ConsolidatedAnnual {
		if p.TotalRevenue != 0 || p.Cogs != 0 || p.Noi != 0 || p.CashFlow != 0 {
			t.Fatalf("Year %d: zero occupancy must produce exactly zero P&L", p.YearIndex)
		}
	}
}
