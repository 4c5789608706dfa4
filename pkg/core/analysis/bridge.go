package analysis

import (
	"context"
	"fmt"

	"resort_proforma/pkg/core/pipeline"
	"resort_proforma/pkg/models"
)

// Bridge step merge order. Each merge copies only its field group from
// the target into the working input, so the NPV movement after each
// re-run is attributable to that group alone.

// mergeOperational brings over the target's operating assumptions: the
// operation set with its pricing/cost drivers, plus working capital and
// tax. Timing fields (start years, horizons) stay at the working copy's
// values until the timing step.
func mergeOperational(work, target models.FullModelInput) models.FullModelInput {
	out := work.Clone()

	baseStartYears := make(map[string]int, len(work.Scenario.Operations))
	for _, op := range work.Scenario.Operations {
		baseStartYears[op.ID] = op.StartYear
	}

	merged := make([]models.OperationConfig, 0, len(target.Scenario.Operations))
	for _, op := range target.Scenario.Operations {
		m := op.Clone()
		m.HorizonYears = out.Scenario.HorizonYears
		if start, ok := baseStartYears[m.ID]; ok {
			m.StartYear = start
		}
		merged = append(merged, m)
	}
	out.Scenario.Operations = merged
	out.ProjectConfig.WorkingCapitalPct = target.ProjectConfig.WorkingCapitalPct
	out.ProjectConfig.TaxRate = target.ProjectConfig.TaxRate
	return out
}

// mergeCapital brings over the target's financing assumptions: tranches
// and the valuation rates.
func mergeCapital(work, target models.FullModelInput) models.FullModelInput {
	out := work.Clone()
	out.CapitalConfig = target.CapitalConfig.Clone()
	out.ProjectConfig.DiscountRate = target.ProjectConfig.DiscountRate
	out.ProjectConfig.TerminalGrowthRate = target.ProjectConfig.TerminalGrowthRate
	return out
}

// mergeTiming brings over the target's construction/timing fields:
// initial investment, horizon, and per-operation start years.
func mergeTiming(work, target models.FullModelInput) models.FullModelInput {
	out := work.Clone()
	out.ProjectConfig.InitialInvestment = target.ProjectConfig.InitialInvestment
	out.Scenario.HorizonYears = target.Scenario.HorizonYears

	targetStartYears := make(map[string]int, len(target.Scenario.Operations))
	for _, op := range target.Scenario.Operations {
		targetStartYears[op.ID] = op.StartYear
	}
	for i := range out.Scenario.Operations {
		op := &out.Scenario.Operations[i]
		op.HorizonYears = out.Scenario.HorizonYears
		if start, ok := targetStartYears[op.ID]; ok {
			op.StartYear = start
		}
	}
	return out
}

// CalculateVarianceBridge attributes the NPV movement from base to
// target across three sequential merges: operational, capital, then
// timing. The residual step captures whatever gap remains after all
// three (expected to be about zero; a large residual signals field
// groups interacting in ways the decomposition cannot separate).
func CalculateVarianceBridge(ctx context.Context, base, target models.FullModelInput) ([]BridgeStep, error) {
	orch := pipeline.New(nil)

	npvOf := func(in models.FullModelInput) (float64, error) {
		out, err := orch.Run(ctx, in)
		if err != nil {
			return 0, err
		}
		return out.Project.Kpis.Npv, nil
	}

	baseNpv, err := npvOf(base)
	if err != nil {
		return nil, fmt.Errorf("bridge base run failed: %w", err)
	}
	targetNpv, err := npvOf(target)
	if err != nil {
		return nil, fmt.Errorf("bridge target run failed: %w", err)
	}

	steps := []BridgeStep{{Name: "base", Npv: baseNpv, Delta: 0}}
	work := base.Clone()
	prevNpv := baseNpv

	for _, stage := range []struct {
		name  string
		merge func(work, target models.FullModelInput) models.FullModelInput
	}{
		{"operational", mergeOperational},
		{"capital", mergeCapital},
		{"timing", mergeTiming},
	} {
		work = stage.merge(work, target)
		npv, err := npvOf(work)
		if err != nil {
			return nil, fmt.Errorf("bridge %s step failed: %w", stage.name, err)
		}
		steps = append(steps, BridgeStep{Name: stage.name, Npv: npv, Delta: npv - prevNpv})
		prevNpv = npv
	}

	steps = append(steps, BridgeStep{
		Name:  "residual",
		Npv:   targetNpv,
		Delta: targetNpv - prevNpv,
	})
	return steps, nil
}
