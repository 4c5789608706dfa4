package validate

// Code is a machine-readable validation error code.
type Code string

const (
	CodeUnknown Code = "UNKNOWN"

	// Scenario / operation errors
	CodeScenarioHorizonInvalid     Code = "SCENARIO_HORIZON_INVALID"
	CodeOperationHorizonMismatch   Code = "OPERATION_HORIZON_MISMATCH"
	CodeOperationTypeUnknown       Code = "OPERATION_TYPE_UNKNOWN"
	CodeOperationUtilizationLength Code = "OPERATION_UTILIZATION_LENGTH"
	CodeOperationUtilizationRange  Code = "OPERATION_UTILIZATION_RANGE"
	CodeOperationSeasonalityLength Code = "OPERATION_SEASONALITY_LENGTH"
	CodeOperationNegativePct       Code = "OPERATION_NEGATIVE_PERCENTAGE"
	CodeOperationCapacityInvalid   Code = "OPERATION_CAPACITY_INVALID"
	CodeOperationStartYearInvalid  Code = "OPERATION_START_YEAR_INVALID"
	CodeOperationRevenueMixInvalid Code = "OPERATION_REVENUE_MIX_INVALID"
	CodeOperationRampUpInvalid     Code = "OPERATION_RAMP_UP_INVALID"

	// Project config errors
	CodeProjectDiscountBelowGrowth Code = "PROJECT_DISCOUNT_BELOW_GROWTH"
	CodeProjectInvestmentInvalid   Code = "PROJECT_INVESTMENT_INVALID"
	CodeProjectNegativePct         Code = "PROJECT_NEGATIVE_PERCENTAGE"

	// Capital structure errors
	CodeTranchePrincipalInvalid Code = "TRANCHE_PRINCIPAL_INVALID"
	CodeTrancheRateInvalid      Code = "TRANCHE_RATE_INVALID"
	CodeTrancheTermInvalid      Code = "TRANCHE_TERM_INVALID"
	CodeTrancheAmortTypeUnknown Code = "TRANCHE_AMORT_TYPE_UNKNOWN"
	CodeTrancheRefinanceInvalid Code = "TRANCHE_REFINANCE_INVALID"

	// Waterfall errors
	CodeWaterfallNoClasses         Code = "WATERFALL_NO_CLASSES"
	CodeWaterfallContributionSum   Code = "WATERFALL_CONTRIBUTION_SUM"
	CodeWaterfallTierTypeUnknown   Code = "WATERFALL_TIER_TYPE_UNKNOWN"
	CodeWaterfallSplitsInvalid     Code = "WATERFALL_SPLITS_INVALID"
	CodeWaterfallUnknownClass      Code = "WATERFALL_UNKNOWN_CLASS"
	CodeWaterfallCatchUpInvalid    Code = "WATERFALL_CATCH_UP_INVALID"
	CodeWaterfallClawbackInvalid   Code = "WATERFALL_CLAWBACK_INVALID"

	// Covenant errors
	CodeCovenantTypeUnknown  Code = "COVENANT_TYPE_UNKNOWN"
	CodeCovenantGraceInvalid Code = "COVENANT_GRACE_INVALID"
)
