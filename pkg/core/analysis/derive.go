package analysis

import (
	"fmt"

	"resort_proforma/pkg/models"
)

// The builders below derive a new input from a base plus one override.
// They always operate on a deep clone: the shared base is never mutated
// in place, so concurrent sweeps over the same base are safe.

func withOccupancyFactor(base models.FullModelInput, factor float64) models.FullModelInput {
	out := base.Clone()
	for i := range out.Scenario.Operations {
		op := &out.Scenario.Operations[i]
		for m := range op.MonthlyUtilization {
			op.MonthlyUtilization[m] *= factor
		}
	}
	return out
}

func withPriceFactor(base models.FullModelInput, factor float64) models.FullModelInput {
	out := base.Clone()
	for i := range out.Scenario.Operations {
		out.Scenario.Operations[i].Price *= factor
	}
	return out
}

func withInterestRateFactor(base models.FullModelInput, factor float64) models.FullModelInput {
	out := base.Clone()
	for i := range out.CapitalConfig.Tranches {
		tr := &out.CapitalConfig.Tranches[i]
		tr.InterestRate *= factor
		tr.RefinanceRate *= factor
	}
	return out
}

func withDiscountRate(base models.FullModelInput, rate float64) models.FullModelInput {
	out := base.Clone()
	out.ProjectConfig.DiscountRate = rate
	return out
}

func withTerminalGrowth(base models.FullModelInput, rate float64) models.FullModelInput {
	out := base.Clone()
	out.ProjectConfig.TerminalGrowthRate = rate
	return out
}

func withInitialInvestment(base models.FullModelInput, amount float64) models.FullModelInput {
	out := base.Clone()
	out.ProjectConfig.InitialInvestment = amount
	return out
}

// withDebtAmount rescales every tranche so total principal equals the
// target while tranche proportions are preserved.
func withDebtAmount(base models.FullModelInput, amount float64) models.FullModelInput {
	out := base.Clone()
	var total float64
	for _, tr := range out.CapitalConfig.Tranches {
		total += tr.Principal
	}
	if total <= 0 {
		return out
	}
	scale := amount / total
	for i := range out.CapitalConfig.Tranches {
		out.CapitalConfig.Tranches[i].Principal *= scale
	}
	return out
}

// applyVariable derives a variant of base with one variable set to value.
func applyVariable(base models.FullModelInput, v Variable, value float64) (models.FullModelInput, error) {
	switch v {
	case VarOccupancy:
		return withOccupancyFactor(base, value), nil
	case VarAdr:
		return withPriceFactor(base, value), nil
	case VarInterestRate:
		return withInterestRateFactor(base, value), nil
	case VarDiscountRate:
		return withDiscountRate(base, value), nil
	case VarTerminalGrowth:
		return withTerminalGrowth(base, value), nil
	case VarInitialInvestment:
		return withInitialInvestment(base, value), nil
	case VarDebtAmount:
		return withDebtAmount(base, value), nil
	}
	return models.FullModelInput{}, fmt.Errorf("unknown sensitivity variable %q", v)
}
