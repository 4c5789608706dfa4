package models

// EquityClass is one equity holder group (e.g. "lp", "gp").
// ContributionPct is its share of the equity check; shares sum to 1.0.
type EquityClass struct {
	ID              string  `json:"id"`
	ContributionPct float64 `json:"contributionPct"`
}

// TierType identifies a waterfall tier.
type TierType string

const (
	TierReturnOfCapital TierType = "returnOfCapital"
	TierPreferred       TierType = "preferred"
	TierCatchUp         TierType = "catchUp"
	TierPromote         TierType = "promote"
)

// ClawbackMethod selects how an excess promote is reversed.
type ClawbackMethod string

const (
	ClawbackImmediate ClawbackMethod = "immediate" // reversed in the final-period flows
	ClawbackEscrow    ClawbackMethod = "escrow"    // flows untouched, reported as due
)

// ClawbackConfig gates the final-period promote true-up.
// Trigger is the IRR the non-promote classes must have realized for the
// promote to be entitled; 0 means "use the preferred tier's hurdle".
type ClawbackConfig struct {
	Trigger float64        `json:"trigger,omitempty"`
	Method  ClawbackMethod `json:"method"`
}

// WaterfallTier is one step of the distribution waterfall, processed
// strictly in configured order every period.
type WaterfallTier struct {
	Type        TierType `json:"type"`
	HurdleRate  float64  `json:"hurdleRate,omitempty"`  // preferred accrual rate
	Compounding bool     `json:"compounding,omitempty"` // preferred: compound unpaid accruals

	// DistributionSplits maps class ID -> share of cash allocated in this
	// tier (promote/residual tiers). Shares sum to 1.0.
	DistributionSplits map[string]float64 `json:"distributionSplits,omitempty"`

	// Catch-up controls. CatchUpRate is the share of catch-up dollars
	// routed to the promote class (default 1.0); CatchUpTargetSplit is the
	// promote class's target share of cumulative profit.
	CatchUpRate        float64 `json:"catchUpRate,omitempty"`
	CatchUpTargetSplit float64 `json:"catchUpTargetSplit,omitempty"`
	PromoteClass       string  `json:"promoteClass,omitempty"`

	Clawback *ClawbackConfig `json:"clawback,omitempty"`
}

// WaterfallConfig is the full equity waterfall definition.
type WaterfallConfig struct {
	Classes []EquityClass   `json:"classes"`
	Tiers   []WaterfallTier `json:"tiers"`
}
