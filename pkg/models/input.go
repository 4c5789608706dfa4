package models

// FullModelInput is the single immutable configuration object consumed by
// the pipeline orchestrator. Engines never mutate it; derived variants are
// produced through Clone plus builder functions.
type FullModelInput struct {
	Scenario        ProjectScenario        `json:"scenario"`
	ProjectConfig   ProjectConfig          `json:"projectConfig"`
	CapitalConfig   CapitalStructureConfig `json:"capitalConfig"`
	WaterfallConfig WaterfallConfig        `json:"waterfallConfig"`
}

// Clone returns a deep copy. All slices, maps and optional pointers are
// duplicated so the copy can be adjusted without touching the base.
func (in FullModelInput) Clone() FullModelInput {
	out := in
	out.Scenario = in.Scenario.Clone()
	out.CapitalConfig = in.CapitalConfig.Clone()
	out.WaterfallConfig = in.WaterfallConfig.Clone()
	return out
}

// Clone returns a deep copy of the scenario.
func (s ProjectScenario) Clone() ProjectScenario {
	out := s
	out.Operations = make([]OperationConfig, len(s.Operations))
	for i, op := range s.Operations {
		out.Operations[i] = op.Clone()
	}
	return out
}

// Clone returns a deep copy of one operation config.
func (o OperationConfig) Clone() OperationConfig {
	out := o
	out.MonthlyUtilization = append([]float64(nil), o.MonthlyUtilization...)
	if o.Seasonality != nil {
		out.Seasonality = append([]float64(nil), o.Seasonality...)
	}
	if o.RampUp != nil {
		r := *o.RampUp
		out.RampUp = &r
	}
	return out
}

// Clone returns a deep copy of the capital structure.
func (c CapitalStructureConfig) Clone() CapitalStructureConfig {
	out := c
	out.Tranches = make([]DebtTranche, len(c.Tranches))
	for i, t := range c.Tranches {
		out.Tranches[i] = t
		if t.RefinanceYear != nil {
			y := *t.RefinanceYear
			out.Tranches[i].RefinanceYear = &y
		}
	}
	return out
}

// Clone returns a deep copy of the waterfall config.
func (w WaterfallConfig) Clone() WaterfallConfig {
	out := w
	out.Classes = append([]EquityClass(nil), w.Classes...)
	out.Tiers = make([]WaterfallTier, len(w.Tiers))
	for i, tier := range w.Tiers {
		out.Tiers[i] = tier
		if tier.DistributionSplits != nil {
			splits := make(map[string]float64, len(tier.DistributionSplits))
			for k, v := range tier.DistributionSplits {
				splits[k] = v
			}
			out.Tiers[i].DistributionSplits = splits
		}
		if tier.Clawback != nil {
			cb := *tier.Clawback
			out.Tiers[i].Clawback = &cb
		}
	}
	return out
}
