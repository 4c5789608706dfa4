package waterfall

import (
	"resort_proforma/pkg/core/finmath"
	"resort_proforma/pkg/models"
)

// allocateTier runs one tier for one period and returns the cash left for
// the next tier.
func allocateTier(states []*classState, tier models.WaterfallTier, remaining float64, t int) float64 {
	switch tier.Type {
	case models.TierReturnOfCapital:
		return allocateByNeed(states, remaining, t, func(st *classState) float64 {
			return st.unreturned()
		}, func(st *classState, amount float64) {
			st.returned += amount
		})

	case models.TierPreferred:
		return allocateByNeed(states, remaining, t, func(st *classState) float64 {
			return st.prefAccrued
		}, func(st *classState, amount float64) {
			st.prefAccrued -= amount
		})

	case models.TierCatchUp:
		return allocateCatchUp(states, tier, remaining, t)

	case models.TierPromote:
		for _, st := range states {
			pay(st, remaining*tier.DistributionSplits[st.id], t)
		}
		return 0

	default:
		return remaining
	}
}

// allocateByNeed distributes up to each class's outstanding need,
// pro-rata to the needs, and applies the settle callback per payment.
func allocateByNeed(states []*classState, remaining float64, t int, need func(*classState) float64, settle func(*classState, float64)) float64 {
	total := 0.0
	for _, st := range states {
		total += need(st)
	}
	if total <= 1e-12 {
		return remaining
	}
	alloc := remaining
	if total < alloc {
		alloc = total
	}
	for _, st := range states {
		share := alloc * need(st) / total
		if share <= 0 {
			continue
		}
		pay(st, share, t)
		settle(st, share)
	}
	return remaining - alloc
}

// allocateCatchUp redirects cash disproportionately to the promote class
// until its cumulative profit reaches the target share of all profit
// distributed so far. Closed form for the tier size x (rate r to the
// promote, target share s, current profit P, promote profit pp):
//
//	pp + r*x == s*(P + x)  =>  x = (s*P - pp) / (r - s)
func allocateCatchUp(states []*classState, tier models.WaterfallTier, remaining float64, t int) float64 {
	var promote *classState
	totalProfit := 0.0
	othersContrib := 0.0
	for _, st := range states {
		totalProfit += st.profit()
		if st.id == tier.PromoteClass {
			promote = st
		} else {
			othersContrib += st.contributed
		}
	}
	if promote == nil {
		return remaining
	}

	rate := tier.CatchUpRate
	if rate == 0 {
		rate = 1
	}
	target := tier.CatchUpTargetSplit
	if rate <= target {
		return remaining // degenerate config, validation rejects it upstream
	}

	x := (target*totalProfit - promote.profit()) / (rate - target)
	if x <= 0 {
		return remaining // already caught up
	}
	alloc := remaining
	if x < alloc {
		alloc = x
	}

	pay(promote, alloc*rate, t)
	leftover := alloc * (1 - rate)
	if leftover > 0 {
		for _, st := range states {
			if st.id == promote.id {
				continue
			}
			if othersContrib > 0 {
				pay(st, leftover*st.contributed/othersContrib, t)
			}
		}
	}
	return remaining - alloc
}

// applyClawback runs the final-period promote true-up. The promote class's
// entitlement is recomputed from the non-promote classes' realized
// outcome: when their aggregate IRR missed the trigger hurdle, the
// entitled promote profit is zero and the excess is reversed.
func applyClawback(states []*classState, wc models.WaterfallConfig, finalPeriod int) {
	var tier *models.WaterfallTier
	for i := range wc.Tiers {
		if wc.Tiers[i].Clawback != nil {
			tier = &wc.Tiers[i]
			break
		}
	}
	if tier == nil || tier.PromoteClass == "" {
		return
	}

	var promote *classState
	aggOthers := make([]float64, finalPeriod+1)
	othersContrib := 0.0
	for _, st := range states {
		if st.id == tier.PromoteClass {
			promote = st
			continue
		}
		for t, cf := range st.flows {
			aggOthers[t] += cf
		}
		othersContrib += st.contributed
	}
	if promote == nil {
		return
	}

	hurdle := tier.Clawback.Trigger
	if hurdle == 0 {
		for _, tr := range wc.Tiers {
			if tr.Type == models.TierPreferred {
				hurdle = tr.HurdleRate
				break
			}
		}
	}

	entitled := promote.profit()
	irr := finmath.IRR(aggOthers)
	if irr == nil || *irr < hurdle {
		entitled = 0
	}

	excess := promote.profit() - entitled
	if excess <= 1e-12 {
		return
	}

	switch tier.Clawback.Method {
	case models.ClawbackEscrow:
		promote.clawbackDue = excess
	default: // immediate
		promote.flows[finalPeriod] -= excess
		promote.distributed -= excess
		for _, st := range states {
			if st.id == promote.id || othersContrib <= 0 {
				continue
			}
			back := excess * st.contributed / othersContrib
			st.flows[finalPeriod] += back
			st.distributed += back
		}
	}
}

// clawbackDue reads the escrowed amount off the state ledger.
func clawbackDue(st *classState) float64 {
	return st.clawbackDue
}
