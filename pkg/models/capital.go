package models

// ProjectConfig carries the valuation-level assumptions.
// Invariant: DiscountRate > TerminalGrowthRate (finite terminal value).
type ProjectConfig struct {
	DiscountRate       float64 `json:"discountRate"`
	TerminalGrowthRate float64 `json:"terminalGrowthRate"`
	InitialInvestment  float64 `json:"initialInvestment"`
	WorkingCapitalPct  float64 `json:"workingCapitalPct"`
	TaxRate            float64 `json:"taxRate,omitempty"`
}

// AmortType selects the principal repayment profile of a tranche.
type AmortType string

const (
	AmortLinear  AmortType = "linear"  // equal principal over the amortizing term
	AmortAnnuity AmortType = "annuity" // constant payment, P*r/(1-(1+r)^-n)
	AmortBullet  AmortType = "bullet"  // interest only, principal at maturity
)

// DebtTranche is one discrete debt instrument in the capital structure.
type DebtTranche struct {
	Name              string    `json:"name"`
	Principal         float64   `json:"principal"`
	InterestRate      float64   `json:"interestRate"` // annual
	TermYears         int       `json:"termYears"`
	AmortType         AmortType `json:"amortType"`
	InterestOnlyYears int       `json:"interestOnlyYears,omitempty"`
	StartYear         int       `json:"startYear"` // project-relative funding year

	RefinanceYear      *int    `json:"refinanceYear,omitempty"` // must be > StartYear
	RefinanceRate      float64 `json:"refinanceRate,omitempty"`
	RefinanceTermYears int     `json:"refinanceTermYears,omitempty"`

	OriginationFeePct float64 `json:"originationFeePct,omitempty"`
	ExitFeePct        float64 `json:"exitFeePct,omitempty"`
}

// CapitalStructureConfig is the ordered list of debt tranches.
type CapitalStructureConfig struct {
	Tranches []DebtTranche `json:"tranches"`
}

// DebtScheduleEntry is one period of an amortization table.
// Invariants for every period t:
//
//	beginningBalance(t) - principal(t) == endingBalance(t)
//	endingBalance(t) == beginningBalance(t+1)
//
// Principal is reported as a positive repayment. DebtService includes
// interest, principal and any fees cash-settled in the period.
type DebtScheduleEntry struct {
	PeriodIndex      int     `json:"periodIndex"`
	BeginningBalance float64 `json:"beginningBalance"`
	Interest         float64 `json:"interest"`
	Principal        float64 `json:"principal"`
	EndingBalance    float64 `json:"endingBalance"`
	DebtService      float64 `json:"debtService"`
}
