// Package finmath holds the numeric primitives shared by the valuation
// stages: NPV, IRR root finding, annuity payments and grid interpolation.
// Everything operates on plain float64 series with flows[0] at t=0.
package finmath

import "math"

// NPV discounts a cash-flow series at the given rate.
// flows[0] lands at t=0 and is not discounted.
func NPV(rate float64, flows []float64) float64 {
	npv := 0.0
	for t, cf := range flows {
		npv += cf / math.Pow(1+rate, float64(t))
	}
	return npv
}

// npvDerivative is d(NPV)/d(rate), used by the Newton step.
func npvDerivative(rate float64, flows []float64) float64 {
	d := 0.0
	for t, cf := range flows {
		if t == 0 {
			continue
		}
		d -= float64(t) * cf / math.Pow(1+rate, float64(t+1))
	}
	return d
}

// IRR solves NPV(r) = 0 over the series. Returns nil when the flows never
// change sign (the root is undefined, not an error). Strategy: Newton from
// 10%, falling back to bisection over a bracket scanned in (-0.9999, 10].
func IRR(flows []float64) *float64 {
	if !hasSignChange(flows) {
		return nil
	}

	// --- A. Newton-Raphson ---
	r := 0.1
	for i := 0; i < 100; i++ {
		f := NPV(r, flows)
		if math.Abs(f) < 1e-9 {
			return &r
		}
		df := npvDerivative(r, flows)
		if df == 0 {
			break
		}
		next := r - f/df
		if next <= -0.9999 || next > 10 || math.IsNaN(next) || math.IsInf(next, 0) {
			break // diverged, fall back to bisection
		}
		if math.Abs(next-r) < 1e-12 {
			r = next
			return &r
		}
		r = next
	}

	// --- B. Bracketed bisection ---
	lo, hi, ok := bracketRoot(flows)
	if !ok {
		return nil
	}
	fLo := NPV(lo, flows)
	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		fMid := NPV(mid, flows)
		if math.Abs(fMid) < 1e-9 || (hi-lo)/2 < 1e-12 {
			return &mid
		}
		if (fLo < 0) == (fMid < 0) {
			lo, fLo = mid, fMid
		} else {
			hi = mid
		}
	}
	mid := (lo + hi) / 2
	return &mid
}

// bracketRoot scans (-0.99, 10] for an interval where NPV changes sign.
func bracketRoot(flows []float64) (lo, hi float64, ok bool) {
	grid := []float64{-0.99, -0.9, -0.5, -0.2, -0.05, 0, 0.05, 0.1, 0.2, 0.35, 0.5, 0.75, 1, 2, 5, 10}
	prev := grid[0]
	fPrev := NPV(prev, flows)
	for _, r := range grid[1:] {
		f := NPV(r, flows)
		if (fPrev < 0) != (f < 0) {
			return prev, r, true
		}
		prev, fPrev = r, f
	}
	return 0, 0, false
}

// hasSignChange reports whether the series contains both a positive and a
// negative flow. Without one, NPV(r)=0 has no root.
func hasSignChange(flows []float64) bool {
	hasPos, hasNeg := false, false
	for _, cf := range flows {
		if cf > 0 {
			hasPos = true
		}
		if cf < 0 {
			hasNeg = true
		}
	}
	return hasPos && hasNeg
}

// AnnuityPayment is the constant per-period payment amortizing principal
// over n periods at the per-period rate: P*r / (1 - (1+r)^-n).
// A zero rate degrades to straight-line principal.
func AnnuityPayment(principal, rate float64, n int) float64 {
	if n <= 0 {
		return principal
	}
	if rate == 0 {
		return principal / float64(n)
	}
	return principal * rate / (1 - math.Pow(1+rate, -float64(n)))
}

// Linspace returns steps evenly spaced values from min to max inclusive.
// steps == 1 returns just min.
func Linspace(min, max float64, steps int) []float64 {
	if steps <= 1 {
		return []float64{min}
	}
	out := make([]float64, steps)
	delta := (max - min) / float64(steps-1)
	for i := range out {
		out[i] = min + float64(i)*delta
	}
	out[steps-1] = max // exact endpoint, no accumulation drift
	return out
}
