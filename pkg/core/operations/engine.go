// Package operations generates monthly and annual operating P&L for a
// single asset from its driver set. Nine asset kinds share one month loop;
// the kind profiles encode what differs (pricing cadence, throughput
// factor, utilization semantics).
package operations

import (
	"fmt"
	"math"

	"resort_proforma/pkg/models"
)

// profile captures the per-kind mechanics of the revenue build.
type profile struct {
	// dailyPriced kinds earn capacity*u*price per day; monthly-priced
	// kinds earn capacity*u*price per month.
	dailyPriced bool
	// unitsPerDay is the sellable slots per capacity unit per day
	// (court-hours, treatment slots). 1 for everything else.
	unitsPerDay float64
	// occupancyBased utilization is clamped to [0,1]; turnover-based
	// (turns/day) only to >= 0.
	occupancyBased bool
}

// daysInMonth is the non-leap calendar used for daily-priced revenue.
var daysInMonth = [12]float64{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Result is the full P&L output of one operation run.
type Result struct {
	Config  models.OperationConfig `json:"config"`
	Monthly []models.MonthlyPnl    `json:"monthly"` // horizonYears*12 entries
	Annual  []models.AnnualPnl     `json:"annual"`  // horizonYears entries
}

// profileFor dispatches on the kind tag.
func profileFor(t models.OperationType) (profile, error) {
	switch t {
	case models.OpHotel:
		return hotelProfile(), nil
	case models.OpVillas:
		return villasProfile(), nil
	case models.OpRestaurant:
		return restaurantProfile(), nil
	case models.OpBeachClub:
		return beachClubProfile(), nil
	case models.OpRacquet:
		return racquetProfile(), nil
	case models.OpRetail:
		return retailProfile(), nil
	case models.OpFlex:
		return flexProfile(), nil
	case models.OpWellness:
		return wellnessProfile(), nil
	case models.OpSeniorLiving:
		return seniorLivingProfile(), nil
	default:
		return profile{}, fmt.Errorf("unknown operation type %q", t)
	}
}

// OccupancyBased reports whether the kind's utilization curve is an
// occupancy share in [0,1] (vs. turns/day for turnover kinds). Used by
// config validation to pick the legal range.
func OccupancyBased(t models.OperationType) bool {
	p, err := profileFor(t)
	if err != nil {
		return true // unknown kinds validated elsewhere
	}
	return p.occupancyBased
}

// Run produces the monthly and annual P&L for one operation.
// The config is assumed validated (see pkg/core/validate); the engine only
// clamps derived utilization values.
func Run(cfg models.OperationConfig) (*Result, error) {
	p, err := profileFor(cfg.OperationType)
	if err != nil {
		return nil, err
	}
	if len(cfg.MonthlyUtilization) != 12 {
		return nil, fmt.Errorf("operation %s: monthlyUtilization must have 12 entries, got %d", cfg.ID, len(cfg.MonthlyUtilization))
	}
	if cfg.HorizonYears <= 0 {
		return nil, fmt.Errorf("operation %s: horizonYears must be positive", cfg.ID)
	}

	seasonal, err := normalizeSeasonality(cfg.Seasonality)
	if err != nil {
		return nil, fmt.Errorf("operation %s: %w", cfg.ID, err)
	}

	months := cfg.HorizonYears * 12
	openingMonth := cfg.StartYear * 12
	monthly := make([]models.MonthlyPnl, 0, months)

	for m := 0; m < months; m++ {
		year := m / 12
		cal := m % 12
		row := models.MonthlyPnl{MonthIndex: m, YearIndex: year}

		if m >= openingMonth {
			// 1. Seasonality on the base curve
			u := cfg.MonthlyUtilization[cal] * seasonal[cal]

			// 2. Ramp-up, occupancy and revenue legs independent
			revScale := 1.0
			if cfg.RampUp != nil && cfg.RampUp.Months > 0 {
				s := rampScale(m-openingMonth, cfg.RampUp.Months)
				if cfg.RampUp.ApplyToOccupancy {
					u *= s
				}
				if cfg.RampUp.ApplyToRevenue {
					revScale = s
				}
			}

			// 3. Clamp to the kind's legal range
			if p.occupancyBased {
				u = clamp(u, 0, 1)
			} else if u < 0 {
				u = 0
			}

			// 4. Price with annual escalation
			price := cfg.Price * math.Pow(1+cfg.PriceGrowthRate, float64(year))

			// 5. Gross revenue
			periodFactor := 1.0
			if p.dailyPriced {
				periodFactor = daysInMonth[cal]
			}
			gross := cfg.Capacity * u * p.unitsPerDay * price * periodFactor * revScale

			// 6. Split into reporting lines by configured mix
			row.RoomsRevenue = gross * cfg.RevenueMix.Rooms
			row.FoodRevenue = gross * cfg.RevenueMix.Food
			row.BeverageRevenue = gross * cfg.RevenueMix.Beverage
			row.OtherRevenue = gross * cfg.RevenueMix.Other
			row.TotalRevenue = gross

			// 7. Costs: variable on revenue plus fixed while open
			row.Cogs = gross*cfg.CogsPct + cfg.CogsFixedMonthly
			row.Opex = gross*cfg.OpexPct + cfg.OpexFixedMonthly
			row.MaintenanceCapex = gross * cfg.MaintenanceCapexPct
		}

		row.Gop = row.TotalRevenue - row.Cogs
		row.Ebitda = row.Gop - row.Opex
		row.Noi = row.Ebitda - row.MaintenanceCapex
		row.CashFlow = row.Noi
		monthly = append(monthly, row)
	}

	return &Result{
		Config:  cfg,
		Monthly: monthly,
		Annual:  AggregateAnnual(monthly, cfg.HorizonYears),
	}, nil
}

// AggregateAnnual sums monthly P&L into annual rows. Exported so callers
// can re-derive and verify the annual series independently.
func AggregateAnnual(monthly []models.MonthlyPnl, horizonYears int) []models.AnnualPnl {
	annual := make([]models.AnnualPnl, horizonYears)
	for y := range annual {
		annual[y].YearIndex = y
	}
	for _, row := range monthly {
		if row.YearIndex >= 0 && row.YearIndex < horizonYears {
			annual[row.YearIndex].AddMonthly(row)
		}
	}
	return annual
}

// normalizeSeasonality scales a 12-weight curve to mean 1.0 so seasonality
// reshapes the year without changing its total. nil means flat.
func normalizeSeasonality(curve []float64) ([]float64, error) {
	if curve == nil {
		flat := make([]float64, 12)
		for i := range flat {
			flat[i] = 1
		}
		return flat, nil
	}
	if len(curve) != 12 {
		return nil, fmt.Errorf("seasonality must have 12 entries, got %d", len(curve))
	}
	sum := 0.0
	for _, w := range curve {
		sum += w
	}
	if sum <= 0 {
		return nil, fmt.Errorf("seasonality weights must sum to a positive value")
	}
	mean := sum / 12
	out := make([]float64, 12)
	for i, w := range curve {
		out[i] = w / mean
	}
	return out, nil
}

// rampScale is the linear 0->1 scale-up, reaching 1.0 once monthsOpen+1
// equals the configured ramp length.
func rampScale(monthsOpen, rampMonths int) float64 {
	s := float64(monthsOpen+1) / float64(rampMonths)
	if s > 1 {
		return 1
	}
	return s
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
