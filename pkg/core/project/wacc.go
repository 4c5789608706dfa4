package project

import "resort_proforma/pkg/models"

// CalculateWacc weights the cost of capital by the year-0 debt vs equity
// share of the initial investment. Cost of equity is the configured
// discount rate; cost of debt is the principal-weighted tranche coupon,
// tax-adjusted:
//
//	WACC = we*ke + wd*kd*(1-t)
//
// Tranches funded after year 0 do not change the day-one structure.
func CalculateWacc(pc models.ProjectConfig, cs models.CapitalStructureConfig) float64 {
	if pc.InitialInvestment <= 0 {
		return pc.DiscountRate
	}

	debt := 0.0
	weightedCoupon := 0.0
	for _, tr := range cs.Tranches {
		if tr.StartYear != 0 {
			continue
		}
		debt += tr.Principal
		weightedCoupon += tr.Principal * tr.InterestRate
	}
	if debt <= 0 {
		return pc.DiscountRate
	}

	preTaxKd := weightedCoupon / debt
	kd := preTaxKd * (1 - pc.TaxRate)

	wd := debt / pc.InitialInvestment
	if wd > 1 {
		wd = 1 // over-levered day one: no equity weight left
	}
	we := 1 - wd

	return we*pc.DiscountRate + wd*kd
}
