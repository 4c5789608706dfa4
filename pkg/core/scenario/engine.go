// Package scenario runs every operation engine for a project and
// consolidates the per-asset P&L into one portfolio series.
package scenario

import (
	"fmt"

	"resort_proforma/pkg/core/operations"
	"resort_proforma/pkg/models"
)

// Result holds the consolidated portfolio P&L plus the per-operation
// outputs it was summed from.
type Result struct {
	HorizonYears        int                 `json:"horizonYears"`
	ConsolidatedAnnual  []models.AnnualPnl  `json:"consolidatedAnnual"`  // exactly horizonYears entries
	ConsolidatedMonthly []models.MonthlyPnl `json:"consolidatedMonthly"` // exactly horizonYears*12 entries
	Operations          []operations.Result `json:"operations"`
}

// Run executes every operation engine and sums same-period lines across
// operations. Errors are returned, never panicked, so batch analysis can
// decide whether to continue past a failing variant.
func Run(s models.ProjectScenario) (*Result, error) {
	if s.HorizonYears <= 0 {
		return nil, fmt.Errorf("scenario %q: horizonYears must be positive", s.Name)
	}

	months := s.HorizonYears * 12
	annual := make([]models.AnnualPnl, s.HorizonYears)
	for y := range annual {
		annual[y].YearIndex = y
	}
	monthly := make([]models.MonthlyPnl, months)
	for m := range monthly {
		monthly[m].MonthIndex = m
		monthly[m].YearIndex = m / 12
	}

	opResults := make([]operations.Result, 0, len(s.Operations))
	for _, opCfg := range s.Operations {
		if opCfg.HorizonYears != s.HorizonYears {
			return nil, fmt.Errorf("operation %s: horizon %d does not match scenario horizon %d",
				opCfg.ID, opCfg.HorizonYears, s.HorizonYears)
		}
		res, err := operations.Run(opCfg)
		if err != nil {
			return nil, fmt.Errorf("operation %s failed: %w", opCfg.ID, err)
		}
		for i, row := range res.Monthly {
			monthly[i].Add(row)
		}
		for i, row := range res.Annual {
			annual[i].Add(row)
		}
		opResults = append(opResults, *res)
	}

	return &Result{
		HorizonYears:        s.HorizonYears,
		ConsolidatedAnnual:  annual,
		ConsolidatedMonthly: monthly,
		Operations:          opResults,
	}, nil
}
