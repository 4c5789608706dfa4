package capital

import (
	"math"
	"testing"

	"resort_proforma/pkg/models"
)

// checkIdentities asserts the two hard schedule invariants:
// beginning(t) - principal(t) == ending(t) and ending(t) == beginning(t+1).
func checkIdentities(t *testing.T, entries []models.DebtScheduleEntry) {
	t.Helper()
	for i, e := range entries {
		if math.Abs(e.BeginningBalance-e.Principal-e.EndingBalance) > 1e-9 {
			t.Errorf("Period %d: beginning %f - principal %f != ending %f",
				i, e.BeginningBalance, e.Principal, e.EndingBalance)
		}
		if i+1 < len(entries) {
			if math.Abs(e.EndingBalance-entries[i+1].BeginningBalance) > 1e-9 {
				t.Errorf("Period %d: ending %f != next beginning %f",
					i, e.EndingBalance, entries[i+1].BeginningBalance)
			}
		}
	}
}

func TestBuildSchedule_Linear(t *testing.T) {
	tr := models.DebtTranche{
		Name: "senior", Principal: 1000, InterestRate: 0.05,
		TermYears: 5, AmortType: models.AmortLinear,
	}
	sched := buildSchedule(tr, 5, 1)
	checkIdentities(t, sched)

	// Year 0: beg 1000, interest 50, principal 200, end 800, DS 250
	if math.Abs(sched[0].Interest-50) > 1e-9 || math.Abs(sched[0].Principal-200) > 1e-9 {
		t.Errorf("Year 0: got interest %f principal %f", sched[0].Interest, sched[0].Principal)
	}
	// Year 1: beg 800, interest 40
	if math.Abs(sched[1].Interest-40) > 1e-9 {
		t.Errorf("Year 1: got interest %f", sched[1].Interest)
	}
	// Fully repaid at the end of the term
	if math.Abs(sched[4].EndingBalance) > 1e-9 {
		t.Errorf("Expected zero balance after term, got %f", sched[4].EndingBalance)
	}
}

func TestBuildSchedule_Annuity(t *testing.T) {
	tr := models.DebtTranche{
		Name: "annuity", Principal: 1000, InterestRate: 0.05,
		TermYears: 5, AmortType: models.AmortAnnuity,
	}
	sched := buildSchedule(tr, 5, 1)
	checkIdentities(t, sched)

	// Payment = 1000*0.05/(1-1.05^-5) = 230.9748
	wantPay := 230.9748
	for y := 0; y < 5; y++ {
		pay := sched[y].Interest + sched[y].Principal
		if math.Abs(pay-wantPay) > 0.001 {
			t.Errorf("Year %d: payment %f, expected %f", y, pay, wantPay)
		}
	}
	if math.Abs(sched[4].EndingBalance) > 1e-6 {
		t.Errorf("Expected zero balance after term, got %f", sched[4].EndingBalance)
	}
}

func TestBuildSchedule_BulletAndIO(t *testing.T) {
	bullet := models.DebtTranche{
		Name: "bullet", Principal: 1000, InterestRate: 0.06,
		TermYears: 4, AmortType: models.AmortBullet,
	}
	sched := buildSchedule(bullet, 6, 1)
	checkIdentities(t, sched)
	for y := 0; y < 3; y++ {
		if sched[y].Principal != 0 {
			t.Errorf("Bullet year %d should be interest only", y)
		}
		if math.Abs(sched[y].Interest-60) > 1e-9 {
			t.Errorf("Bullet year %d: interest %f", y, sched[y].Interest)
		}
	}
	if math.Abs(sched[3].Principal-1000) > 1e-9 {
		t.Errorf("Bullet maturity should repay full principal, got %f", sched[3].Principal)
	}
	if sched[4].BeginningBalance != 0 {
		t.Error("Balance should be zero after maturity")
	}

	io := models.DebtTranche{
		Name: "io-linear", Principal: 900, InterestRate: 0.05,
		TermYears: 5, InterestOnlyYears: 2, AmortType: models.AmortLinear,
	}
	sched = buildSchedule(io, 5, 1)
	checkIdentities(t, sched)
	if sched[0].Principal != 0 || sched[1].Principal != 0 {
		t.Error("IO years should have zero principal")
	}
	// Amortizing years: 900 over 3 years = 300/year
	for y := 2; y < 5; y++ {
		if math.Abs(sched[y].Principal-300) > 1e-9 {
			t.Errorf("Year %d: principal %f, expected 300", y, sched[y].Principal)
		}
	}
}

func TestBuildSchedule_DelayedFunding(t *testing.T) {
	tr := models.DebtTranche{
		Name: "construction", Principal: 500, InterestRate: 0.07,
		TermYears: 3, AmortType: models.AmortLinear, StartYear: 2,
	}
	sched := buildSchedule(tr, 6, 1)
	checkIdentities(t, sched)
	if sched[0].BeginningBalance != 0 || sched[1].BeginningBalance != 0 {
		t.Error("Balance before funding year should be zero")
	}
	// The draw lands at the end of year 1 as negative principal, so the
	// rollforward bridges 0 -> 500 across the funding boundary.
	if math.Abs(sched[1].Principal+500) > 1e-9 {
		t.Errorf("Draw year should record principal -500, got %f", sched[1].Principal)
	}
	if math.Abs(sched[1].EndingBalance-500) > 1e-9 {
		t.Errorf("Draw year should end at principal, got %f", sched[1].EndingBalance)
	}
	if sched[1].DebtService != 0 || sched[1].Interest != 0 {
		t.Errorf("Draw is proceeds, not debt service: DS %f, interest %f",
			sched[1].DebtService, sched[1].Interest)
	}
	if sched[2].BeginningBalance != 500 {
		t.Errorf("Funding year should open at principal, got %f", sched[2].BeginningBalance)
	}
	// Interest starts in the funding year: 500 * 7% = 35.
	if math.Abs(sched[2].Interest-35) > 1e-9 {
		t.Errorf("Funding-year interest: got %f", sched[2].Interest)
	}
	// Linear over 3 years retires the tranche by the end of year 4.
	if math.Abs(sched[4].EndingBalance) > 1e-9 {
		t.Errorf("Expected zero balance after term, got %f", sched[4].EndingBalance)
	}

	// Monthly cadence bridges the same boundary: draw at month 23, funded
	// open at month 24.
	monthly := buildSchedule(tr, 6, 12)
	checkIdentities(t, monthly)
	if math.Abs(monthly[23].Principal+500) > 1e-9 {
		t.Errorf("Monthly draw should record principal -500, got %f", monthly[23].Principal)
	}
	if math.Abs(monthly[24].BeginningBalance-500) > 1e-9 {
		t.Errorf("Funding month should open at principal, got %f", monthly[24].BeginningBalance)
	}
}

func TestBuildSchedule_MonthlyMatchesAnnualBoundaries(t *testing.T) {
	tr := models.DebtTranche{
		Name: "senior", Principal: 1200, InterestRate: 0.06,
		TermYears: 5, AmortType: models.AmortLinear,
	}
	annual := buildSchedule(tr, 5, 1)
	monthly := buildSchedule(tr, 5, 12)
	checkIdentities(t, monthly)

	// Linear amortization retires the same principal per year on both
	// cadences, so year-boundary balances agree.
	for y := 0; y < 5; y++ {
		if math.Abs(annual[y].BeginningBalance-monthly[y*12].BeginningBalance) > 1e-6 {
			t.Errorf("Year %d: annual opens %f, monthly opens %f",
				y, annual[y].BeginningBalance, monthly[y*12].BeginningBalance)
		}
	}
}

func TestBuildSchedule_Refinance(t *testing.T) {
	refiYear := 2
	tr := models.DebtTranche{
		Name: "refi", Principal: 1000, InterestRate: 0.08,
		TermYears: 10, AmortType: models.AmortBullet,
		RefinanceYear: &refiYear, RefinanceRate: 0.05, RefinanceTermYears: 3,
		OriginationFeePct: 0.01, ExitFeePct: 0.02,
	}
	sched := buildSchedule(tr, 6, 1)
	checkIdentities(t, sched)

	// Years 0-1 at 8% on 1000
	if math.Abs(sched[0].Interest-80) > 1e-9 {
		t.Errorf("Pre-refi interest: got %f", sched[0].Interest)
	}
	// Refi year: interest drops to 5%, fees (1% + 2% of 1000 = 30) land in DS
	if math.Abs(sched[2].Interest-50) > 1e-9 {
		t.Errorf("Post-refi interest: got %f", sched[2].Interest)
	}
	wantDS := sched[2].Interest + sched[2].Principal + 30
	if math.Abs(sched[2].DebtService-wantDS) > 1e-9 {
		t.Errorf("Refi-year debt service should include 30 of fees: got %f, want %f",
			sched[2].DebtService, wantDS)
	}
	// New bullet term of 3 years: payoff in year 4
	if math.Abs(sched[4].Principal-1000) > 1e-9 {
		t.Errorf("Refinanced bullet should mature in year 4, principal %f", sched[4].Principal)
	}
}
