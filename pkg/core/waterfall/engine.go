// Package waterfall allocates the owner levered cash-flow series across
// equity classes through tiered return-of-capital / preferred / catch-up /
// promote logic, with an optional final-period clawback true-up.
package waterfall

import (
	"fmt"

	"resort_proforma/pkg/core/finmath"
	"resort_proforma/pkg/models"
)

// ClassResult is the realized outcome for one equity class.
// Irr is nil when the class's flows never change sign; Moic is nil when
// the class contributed nothing.
type ClassResult struct {
	ClassID          string    `json:"classId"`
	CashFlows        []float64 `json:"cashFlows"` // horizon+1 entries, contributions negative
	TotalContributed float64   `json:"totalContributed"`
	TotalDistributed float64   `json:"totalDistributed"`
	Irr              *float64  `json:"irr"`
	Moic             *float64  `json:"moic"`
	ClawbackDue      float64   `json:"clawbackDue,omitempty"` // escrow method only
}

// Result is the full waterfall-stage output.
type Result struct {
	Classes []ClassResult `json:"classes"`
}

// classState is the running ledger for one class during the period loop.
type classState struct {
	id          string
	pct         float64 // contribution share
	contributed float64
	returned    float64 // capital returned so far
	prefAccrued float64 // accrued, unpaid preferred
	distributed float64
	clawbackDue float64
	flows       []float64
}

// profit is the cumulative distributions beyond returned capital.
func (s *classState) profit() float64 {
	return s.distributed - s.returned
}

// unreturned is the capital not yet recovered.
func (s *classState) unreturned() float64 {
	c := s.contributed - s.returned
	if c < 0 {
		return 0
	}
	return c
}

// Run distributes the owner flows. ownerFlows[0] is the (negative) equity
// check; periods 1..H carry distributable cash. Tiers are processed
// strictly in configured order each period. Zero or negative distributable
// cash passes every tier with zero allocation; negative periods are borne
// pro-rata to contribution shares as additional contributions.
func Run(ownerFlows []float64, wc models.WaterfallConfig) (*Result, error) {
	if len(ownerFlows) < 1 {
		return nil, fmt.Errorf("waterfall engine: owner cash-flow series is empty")
	}
	if len(wc.Classes) == 0 {
		return &Result{}, nil // no waterfall configured
	}

	equity := -ownerFlows[0]
	if equity < 0 {
		equity = 0
	}

	states := make([]*classState, len(wc.Classes))
	for i, cls := range wc.Classes {
		contribution := equity * cls.ContributionPct
		st := &classState{
			id:          cls.ID,
			pct:         cls.ContributionPct,
			contributed: contribution,
			flows:       make([]float64, len(ownerFlows)),
		}
		st.flows[0] = -contribution
		states[i] = st
	}

	for t := 1; t < len(ownerFlows); t++ {
		accruePreferred(states, wc.Tiers)

		cash := ownerFlows[t]
		if cash < 0 {
			// Capital call: borne pro-rata to contribution shares.
			for _, st := range states {
				call := -cash * st.pct
				st.flows[t] -= call
				st.contributed += call
			}
			continue
		}
		if cash == 0 {
			continue
		}

		remaining := cash
		for _, tier := range wc.Tiers {
			if remaining <= 1e-12 {
				break
			}
			remaining = allocateTier(states, tier, remaining, t)
		}
		// No residual tier configured: fall back to contribution shares so
		// every distributable dollar lands somewhere.
		if remaining > 1e-12 {
			for _, st := range states {
				pay(st, remaining*st.pct, t)
			}
		}
	}

	applyClawback(states, wc, len(ownerFlows)-1)

	res := &Result{Classes: make([]ClassResult, len(states))}
	for i, st := range states {
		cr := ClassResult{
			ClassID:          st.id,
			CashFlows:        st.flows,
			TotalContributed: st.contributed,
			TotalDistributed: st.distributed,
			Irr:              finmath.IRR(st.flows),
			ClawbackDue:      clawbackDue(st),
		}
		if st.contributed > 0 {
			moic := st.distributed / st.contributed
			cr.Moic = &moic
		}
		res.Classes[i] = cr
	}
	return res, nil
}

// pay books a distribution to a class in period t.
func pay(st *classState, amount float64, t int) {
	if amount <= 0 {
		return
	}
	st.flows[t] += amount
	st.distributed += amount
}

// accruePreferred adds one period of preferred accrual per preferred tier.
// Simple accrual runs on unreturned capital; compounding also accrues on
// the unpaid balance.
func accruePreferred(states []*classState, tiers []models.WaterfallTier) {
	for _, tier := range tiers {
		if tier.Type != models.TierPreferred || tier.HurdleRate == 0 {
			continue
		}
		for _, st := range states {
			base := st.unreturned()
			if tier.Compounding {
				base += st.prefAccrued
			}
			st.prefAccrued += base * tier.HurdleRate
		}
	}
}
