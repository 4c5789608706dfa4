package analysis

import (
	"fmt"

	"resort_proforma/pkg/core/capital"
	"resort_proforma/pkg/models"
)

// CheckCovenants evaluates every covenant against each month in order.
// min_dscr tests the monthly DSCR series, max_ltv the monthly LTV, and
// min_cash the cumulative cash balance (falling back to a running sum of
// monthlyFlows when the capital stage produced no balance series). A nil
// metric value passes: no debt service means no DSCR to breach.
//
// Breaches within a covenant's grace window are warnings; once the
// consecutive-breach count exceeds graceMonths they turn critical. A
// single passing month resets the counter.
func CheckCovenants(monthlyFlows []float64, kpis capital.DebtKpis, covenants []models.Covenant) ([]models.BreachEvent, error) {
	var events []models.BreachEvent

	for _, cov := range covenants {
		values, breached, err := covenantSeries(cov, monthlyFlows, kpis)
		if err != nil {
			return nil, err
		}

		consecutive := 0
		for m, v := range values {
			if v == nil || !breached(*v) {
				consecutive = 0
				continue
			}
			consecutive++
			severity := models.SeverityWarning
			if consecutive > cov.GraceMonths {
				severity = models.SeverityCritical
			}
			events = append(events, models.BreachEvent{
				CovenantID:  cov.ID,
				MonthIndex:  m,
				Value:       v,
				Threshold:   cov.Threshold,
				Consecutive: consecutive,
				Severity:    severity,
			})
		}
	}
	return events, nil
}

// covenantSeries picks the metric series and breach predicate for one
// covenant type.
func covenantSeries(cov models.Covenant, monthlyFlows []float64, kpis capital.DebtKpis) ([]*float64, func(float64) bool, error) {
	switch cov.Type {
	case models.CovenantMinDscr:
		return kpis.MonthlyDscr, func(v float64) bool { return v < cov.Threshold }, nil
	case models.CovenantMaxLtv:
		return toPtrSeries(kpis.MonthlyLtv), func(v float64) bool { return v > cov.Threshold }, nil
	case models.CovenantMinCash:
		balance := kpis.MonthlyCashBalance
		if len(balance) == 0 {
			balance = cumulative(monthlyFlows)
		}
		return toPtrSeries(balance), func(v float64) bool { return v < cov.Threshold }, nil
	}
	return nil, nil, fmt.Errorf("covenant %s: unknown type %q", cov.ID, cov.Type)
}

func toPtrSeries(vals []float64) []*float64 {
	out := make([]*float64, len(vals))
	for i := range vals {
		v := vals[i]
		out[i] = &v
	}
	return out
}

func cumulative(vals []float64) []float64 {
	out := make([]float64, len(vals))
	var sum float64
	for i, v := range vals {
		sum += v
		out[i] = sum
	}
	return out
}
