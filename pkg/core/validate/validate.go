// Package validate performs typed configuration validation before any
// engine runs. Engines assume validated input; everything a user can get
// wrong is caught here, with machine-readable codes.
package validate

import (
	"fmt"
	"math"

	"resort_proforma/pkg/core/operations"
	"resort_proforma/pkg/models"
)

// ValidationError is a single typed configuration failure.
type ValidationError struct {
	Field  string `json:"field"`
	Code   Code   `json:"code"`
	Detail string `json:"detail"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Detail, e.Code)
}

func errf(field string, code Code, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Code: code, Detail: fmt.Sprintf(format, args...)}
}

// mixSumTolerance absorbs float literals like 0.6+0.2+0.1+0.1.
const mixSumTolerance = 1e-9

// Input validates the entire model input. The first failure is returned.
func Input(in models.FullModelInput) error {
	if err := Scenario(in.Scenario); err != nil {
		return err
	}
	if err := ProjectConfig(in.ProjectConfig); err != nil {
		return err
	}
	if err := CapitalStructure(in.CapitalConfig, in.Scenario.HorizonYears); err != nil {
		return err
	}
	if err := Waterfall(in.WaterfallConfig); err != nil {
		return err
	}
	return nil
}

// Scenario validates the scenario and every operation in it.
func Scenario(s models.ProjectScenario) error {
	if s.HorizonYears <= 0 {
		return errf("scenario.horizonYears", CodeScenarioHorizonInvalid,
			"horizonYears must be positive, got %d", s.HorizonYears)
	}
	for i, op := range s.Operations {
		field := fmt.Sprintf("scenario.operations[%d]", i)
		if op.HorizonYears != s.HorizonYears {
			return errf(field+".horizonYears", CodeOperationHorizonMismatch,
				"operation horizon %d does not match scenario horizon %d", op.HorizonYears, s.HorizonYears)
		}
		if err := Operation(op, field); err != nil {
			return err
		}
	}
	return nil
}

// Operation validates a single operation config. field prefixes error paths.
func Operation(op models.OperationConfig, field string) error {
	known := false
	for _, t := range models.AllOperationTypes {
		if op.OperationType == t {
			known = true
			break
		}
	}
	if !known {
		return errf(field+".operationType", CodeOperationTypeUnknown,
			"unknown operation type %q", op.OperationType)
	}

	if op.Capacity <= 0 {
		return errf(field+".capacity", CodeOperationCapacityInvalid,
			"capacity must be positive, got %f", op.Capacity)
	}
	if op.StartYear < 0 || op.StartYear >= op.HorizonYears {
		return errf(field+".startYear", CodeOperationStartYearInvalid,
			"startYear %d must be within [0, horizonYears)", op.StartYear)
	}

	if len(op.MonthlyUtilization) != 12 {
		return errf(field+".monthlyUtilization", CodeOperationUtilizationLength,
			"monthlyUtilization must have 12 entries, got %d", len(op.MonthlyUtilization))
	}
	occBased := operations.OccupancyBased(op.OperationType)
	for m, u := range op.MonthlyUtilization {
		if u < 0 || (occBased && u > 1) {
			legal := ">= 0"
			if occBased {
				legal = "in [0,1]"
			}
			return errf(fmt.Sprintf("%s.monthlyUtilization[%d]", field, m), CodeOperationUtilizationRange,
				"utilization %f must be %s for %s", u, legal, op.OperationType)
		}
	}

	if op.Seasonality != nil && len(op.Seasonality) != 12 {
		return errf(field+".seasonality", CodeOperationSeasonalityLength,
			"seasonality must have 12 entries, got %d", len(op.Seasonality))
	}

	pcts := map[string]float64{
		".cogsPct":             op.CogsPct,
		".opexPct":             op.OpexPct,
		".maintenanceCapexPct": op.MaintenanceCapexPct,
		".cogsFixedMonthly":    op.CogsFixedMonthly,
		".opexFixedMonthly":    op.OpexFixedMonthly,
	}
	for name, v := range pcts {
		if v < 0 {
			return errf(field+name, CodeOperationNegativePct, "must be >= 0, got %f", v)
		}
	}

	mix := op.RevenueMix
	if mix.Rooms < 0 || mix.Food < 0 || mix.Beverage < 0 || mix.Other < 0 {
		return errf(field+".revenueMix", CodeOperationRevenueMixInvalid, "mix shares must be >= 0")
	}
	if sum := mix.Rooms + mix.Food + mix.Beverage + mix.Other; math.Abs(sum-1) > mixSumTolerance {
		return errf(field+".revenueMix", CodeOperationRevenueMixInvalid,
			"mix shares must sum to 1.0, got %f", sum)
	}

	if op.RampUp != nil && op.RampUp.Months < 0 {
		return errf(field+".rampUp.months", CodeOperationRampUpInvalid,
			"ramp-up months must be >= 0, got %d", op.RampUp.Months)
	}
	return nil
}

// ProjectConfig validates the valuation assumptions.
func ProjectConfig(pc models.ProjectConfig) error {
	if pc.DiscountRate <= pc.TerminalGrowthRate {
		return errf("projectConfig.discountRate", CodeProjectDiscountBelowGrowth,
			"discountRate %f must exceed terminalGrowthRate %f for a finite terminal value",
			pc.DiscountRate, pc.TerminalGrowthRate)
	}
	if pc.InitialInvestment <= 0 {
		return errf("projectConfig.initialInvestment", CodeProjectInvestmentInvalid,
			"initialInvestment must be positive, got %f", pc.InitialInvestment)
	}
	if pc.WorkingCapitalPct < 0 {
		return errf("projectConfig.workingCapitalPct", CodeProjectNegativePct,
			"must be >= 0, got %f", pc.WorkingCapitalPct)
	}
	if pc.TaxRate < 0 || pc.TaxRate >= 1 {
		return errf("projectConfig.taxRate", CodeProjectNegativePct,
			"must be in [0,1), got %f", pc.TaxRate)
	}
	return nil
}

// CapitalStructure validates every tranche against the model horizon.
func CapitalStructure(cs models.CapitalStructureConfig, horizonYears int) error {
	for i, tr := range cs.Tranches {
		field := fmt.Sprintf("capitalConfig.tranches[%d]", i)
		if tr.Principal <= 0 {
			return errf(field+".principal", CodeTranchePrincipalInvalid,
				"principal must be positive, got %f", tr.Principal)
		}
		if tr.InterestRate < 0 {
			return errf(field+".interestRate", CodeTrancheRateInvalid,
				"interestRate must be >= 0, got %f", tr.InterestRate)
		}
		if tr.TermYears <= 0 || tr.InterestOnlyYears < 0 {
			return errf(field+".termYears", CodeTrancheTermInvalid,
				"term %d / IO %d combination is invalid", tr.TermYears, tr.InterestOnlyYears)
		}
		// Bullet tranches are interest-only by construction, so the IO
		// period only constrains amortizing types.
		if tr.AmortType != models.AmortBullet && tr.InterestOnlyYears >= tr.TermYears {
			return errf(field+".interestOnlyYears", CodeTrancheTermInvalid,
				"IO period %d leaves no amortizing years in term %d", tr.InterestOnlyYears, tr.TermYears)
		}
		if tr.StartYear < 0 || tr.StartYear >= horizonYears {
			return errf(field+".startYear", CodeTrancheTermInvalid,
				"startYear %d must be within [0, horizonYears)", tr.StartYear)
		}
		switch tr.AmortType {
		case models.AmortLinear, models.AmortAnnuity, models.AmortBullet:
		default:
			return errf(field+".amortType", CodeTrancheAmortTypeUnknown,
				"unknown amortization type %q", tr.AmortType)
		}
		if tr.RefinanceYear != nil {
			if *tr.RefinanceYear <= tr.StartYear {
				return errf(field+".refinanceYear", CodeTrancheRefinanceInvalid,
					"refinanceYear %d must be after startYear %d", *tr.RefinanceYear, tr.StartYear)
			}
			if tr.RefinanceTermYears <= 0 {
				return errf(field+".refinanceTermYears", CodeTrancheRefinanceInvalid,
					"refinanceTermYears must be positive when refinancing, got %d", tr.RefinanceTermYears)
			}
			if tr.RefinanceRate < 0 {
				return errf(field+".refinanceRate", CodeTrancheRefinanceInvalid,
					"refinanceRate must be >= 0, got %f", tr.RefinanceRate)
			}
		}
		if tr.OriginationFeePct < 0 || tr.ExitFeePct < 0 {
			return errf(field+".fees", CodeTrancheRateInvalid, "fee percentages must be >= 0")
		}
	}
	return nil
}

// Waterfall validates equity classes and tier ordering inputs.
func Waterfall(wc models.WaterfallConfig) error {
	if len(wc.Classes) == 0 {
		if len(wc.Tiers) == 0 {
			return nil // no waterfall configured at all is legal
		}
		return errf("waterfallConfig.classes", CodeWaterfallNoClasses,
			"tiers configured without equity classes")
	}

	classIDs := make(map[string]bool, len(wc.Classes))
	contribSum := 0.0
	for i, cls := range wc.Classes {
		field := fmt.Sprintf("waterfallConfig.classes[%d]", i)
		if cls.ContributionPct < 0 {
			return errf(field+".contributionPct", CodeWaterfallContributionSum,
				"contribution share must be >= 0, got %f", cls.ContributionPct)
		}
		classIDs[cls.ID] = true
		contribSum += cls.ContributionPct
	}
	if math.Abs(contribSum-1) > mixSumTolerance {
		return errf("waterfallConfig.classes", CodeWaterfallContributionSum,
			"contribution shares must sum to 1.0, got %f", contribSum)
	}

	for i, tier := range wc.Tiers {
		field := fmt.Sprintf("waterfallConfig.tiers[%d]", i)
		switch tier.Type {
		case models.TierReturnOfCapital, models.TierPreferred:
		case models.TierPromote:
			if err := checkSplits(tier.DistributionSplits, classIDs, field); err != nil {
				return err
			}
		case models.TierCatchUp:
			if !classIDs[tier.PromoteClass] {
				return errf(field+".promoteClass", CodeWaterfallUnknownClass,
					"catch-up promote class %q is not a configured equity class", tier.PromoteClass)
			}
			if tier.CatchUpTargetSplit <= 0 || tier.CatchUpTargetSplit >= 1 {
				return errf(field+".catchUpTargetSplit", CodeWaterfallCatchUpInvalid,
					"target split must be in (0,1), got %f", tier.CatchUpTargetSplit)
			}
			rate := tier.CatchUpRate
			if rate == 0 {
				rate = 1
			}
			if rate <= tier.CatchUpTargetSplit || rate > 1 {
				return errf(field+".catchUpRate", CodeWaterfallCatchUpInvalid,
					"catch-up rate %f must exceed the target split and be <= 1", rate)
			}
		default:
			return errf(field+".type", CodeWaterfallTierTypeUnknown,
				"unknown tier type %q", tier.Type)
		}
		if tier.Clawback != nil {
			if tier.Type != models.TierPromote {
				return errf(field+".clawback", CodeWaterfallClawbackInvalid,
					"clawback is only valid on a promote tier")
			}
			if tier.Clawback.Method != models.ClawbackImmediate && tier.Clawback.Method != models.ClawbackEscrow {
				return errf(field+".clawback.method", CodeWaterfallClawbackInvalid,
					"unknown clawback method %q", tier.Clawback.Method)
			}
			if !classIDs[tier.PromoteClass] {
				return errf(field+".promoteClass", CodeWaterfallClawbackInvalid,
					"clawback requires promoteClass to name a configured equity class")
			}
		}
	}
	return nil
}

func checkSplits(splits map[string]float64, classIDs map[string]bool, field string) error {
	if len(splits) == 0 {
		return errf(field+".distributionSplits", CodeWaterfallSplitsInvalid,
			"promote tier requires distribution splits")
	}
	sum := 0.0
	for id, share := range splits {
		if !classIDs[id] {
			return errf(field+".distributionSplits", CodeWaterfallUnknownClass,
				"split references unknown class %q", id)
		}
		if share < 0 {
			return errf(field+".distributionSplits", CodeWaterfallSplitsInvalid,
				"split share for %q must be >= 0, got %f", id, share)
		}
		sum += share
	}
	if math.Abs(sum-1) > mixSumTolerance {
		return errf(field+".distributionSplits", CodeWaterfallSplitsInvalid,
			"splits must sum to 1.0, got %f", sum)
	}
	return nil
}

// Covenants validates the covenant monitor configuration.
func Covenants(covs []models.Covenant) error {
	for i, c := range covs {
		field := fmt.Sprintf("covenants[%d]", i)
		switch c.Type {
		case models.CovenantMinDscr, models.CovenantMaxLtv, models.CovenantMinCash:
		default:
			return errf(field+".type", CodeCovenantTypeUnknown, "unknown covenant type %q", c.Type)
		}
		if c.GraceMonths < 0 {
			return errf(field+".graceMonths", CodeCovenantGraceInvalid,
				"graceMonths must be >= 0, got %d", c.GraceMonths)
		}
	}
	return nil
}
