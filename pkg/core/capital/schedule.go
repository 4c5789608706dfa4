package capital

import (
	"resort_proforma/pkg/core/finmath"
	"resort_proforma/pkg/models"
)

// buildSchedule produces the amortization table for one tranche over the
// model horizon, at the requested cadence (periodsPerYear 1 or 12).
//
// Mechanics per period:
//   - beginning balance carries from the prior ending balance, so
//     ending(p) == beginning(p+1) holds across every boundary. A delayed
//     tranche (startYear > 0) draws at the end of the period before its
//     funding period: that period records the draw as negative principal
//     with zero debt service, bridging the balance from 0 to the
//     principal without breaking the rollforward;
//   - interest = beginningBalance * rate / periodsPerYear;
//   - scheduled principal: 0 during IO, then per the amortization type,
//     always capped at the remaining balance;
//   - refinancing replaces the outstanding balance with a new schedule at
//     the refinance rate/term; exit fee on the payoff and origination fee
//     on the new proceeds both cash-settle in that period's debt service;
//   - a scheduled final payoff carries the exit fee in its debt service.
//
// Origination fees at initial funding are netted out of the proceeds by
// the engine, not charged here.
func buildSchedule(t models.DebtTranche, horizonYears, periodsPerYear int) []models.DebtScheduleEntry {
	n := horizonYears * periodsPerYear
	entries := make([]models.DebtScheduleEntry, n)
	ppy := float64(periodsPerYear)

	fundingPeriod := t.StartYear * periodsPerYear
	refinancePeriod := -1
	if t.RefinanceYear != nil {
		refinancePeriod = *t.RefinanceYear * periodsPerYear
	}

	balance := 0.0
	rate := t.InterestRate / ppy
	ioLeft := 0
	amortLeft := 0
	termLeft := 0
	payment := 0.0
	paymentSet := false

	for p := 0; p < n; p++ {
		e := &entries[p]
		e.PeriodIndex = p
		fees := 0.0

		// End-of-period draw for a delayed tranche. The proceeds are
		// funding cash, not debt service, so the entry carries none.
		if fundingPeriod > 0 && fundingPeriod < n && p == fundingPeriod-1 {
			e.BeginningBalance = balance
			e.Principal = -t.Principal
			e.EndingBalance = balance + t.Principal
			balance = e.EndingBalance
			continue
		}

		if p == fundingPeriod {
			balance = t.Principal
			ioLeft = t.InterestOnlyYears * periodsPerYear
			amortLeft = (t.TermYears - t.InterestOnlyYears) * periodsPerYear
			termLeft = t.TermYears * periodsPerYear
		}

		refinancedNow := false
		if p == refinancePeriod && balance > 0 {
			// Pay off the old loan and redraw the balance on new terms.
			fees += balance * (t.ExitFeePct + t.OriginationFeePct)
			rate = t.RefinanceRate / ppy
			ioLeft = 0
			amortLeft = t.RefinanceTermYears * periodsPerYear
			termLeft = t.RefinanceTermYears * periodsPerYear
			payment = 0
			paymentSet = false
			refinancedNow = true
		}

		e.BeginningBalance = balance
		if balance > 0 {
			e.Interest = balance * rate

			scheduled := 0.0
			switch t.AmortType {
			case models.AmortBullet:
				termLeft--
				if termLeft == 0 {
					scheduled = balance
				}
			default: // linear and annuity share the IO gate
				if ioLeft > 0 {
					ioLeft--
				} else if amortLeft > 0 {
					if t.AmortType == models.AmortAnnuity {
						if !paymentSet {
							payment = finmath.AnnuityPayment(balance, rate, amortLeft)
							paymentSet = true
						}
						scheduled = payment - e.Interest
					} else {
						scheduled = balance / float64(amortLeft)
					}
					amortLeft--
				}
			}

			if scheduled < 0 {
				scheduled = 0
			}
			if scheduled > balance {
				scheduled = balance
			}
			e.Principal = scheduled
			e.EndingBalance = balance - scheduled

			// Exit fee on the scheduled final payoff (the refinance payoff
			// already charged it above).
			if e.EndingBalance <= 1e-9 && e.Principal > 0 && !refinancedNow {
				e.EndingBalance = 0
				fees += e.Principal * t.ExitFeePct
			}
		}

		e.DebtService = e.Interest + e.Principal + fees
		balance = e.EndingBalance
	}

	return entries
}
