package models

// OperationType discriminates the tagged union of operating assets.
// Engine dispatch is a switch over this tag.
type OperationType string

const (
	OpHotel        OperationType = "hotel"
	OpVillas       OperationType = "villas"
	OpRestaurant   OperationType = "restaurant"
	OpBeachClub    OperationType = "beach_club"
	OpRacquet      OperationType = "racquet"
	OpRetail       OperationType = "retail"
	OpFlex         OperationType = "flex"
	OpWellness     OperationType = "wellness"
	OpSeniorLiving OperationType = "senior_living"
)

// AllOperationTypes lists every supported kind, in a stable order.
var AllOperationTypes = []OperationType{
	OpHotel, OpVillas, OpRestaurant, OpBeachClub, OpRacquet,
	OpRetail, OpFlex, OpWellness, OpSeniorLiving,
}

// RevenueMix allocates gross revenue into reporting lines.
// The four shares are expected to sum to 1.0.
type RevenueMix struct {
	Rooms    float64 `json:"rooms"`
	Food     float64 `json:"food"`
	Beverage float64 `json:"beverage"`
	Other    float64 `json:"other"`
}

// RampUpConfig models the linear scale-up of a newly opened asset.
// Occupancy and revenue ramps are applied independently.
type RampUpConfig struct {
	Months           int  `json:"months"`
	ApplyToOccupancy bool `json:"applyToOccupancy"`
	ApplyToRevenue   bool `json:"applyToRevenue"`
}

// OperationConfig is the full driver set for one operating asset.
//
// Capacity and Price units are implied by the kind:
//
//	hotel          keys            ADR (per key-night)
//	villas         units           nightly rate
//	restaurant     covers (seats)  average check
//	beach_club     daybeds         day rate
//	racquet        courts          court-hour rate
//	retail         sqm             rent per sqm per month
//	flex           desks           desk rate per month
//	wellness       treatment rooms treatment price
//	senior_living  units           monthly fee per unit
//
// MonthlyUtilization is a 12-element calendar curve: occupancy in [0,1]
// for occupancy kinds, turns per day >= 0 for restaurant/beach_club.
type OperationConfig struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	OperationType OperationType `json:"operationType"`

	StartYear    int `json:"startYear"` // project-relative opening year, 0-based
	HorizonYears int `json:"horizonYears"`

	Capacity        float64 `json:"capacity"`
	Price           float64 `json:"price"`
	PriceGrowthRate float64 `json:"priceGrowthRate,omitempty"` // annual escalation

	MonthlyUtilization []float64  `json:"monthlyUtilization"` // always 12 entries
	RevenueMix         RevenueMix `json:"revenueMix"`

	CogsPct          float64 `json:"cogsPct"`
	CogsFixedMonthly float64 `json:"cogsFixedMonthly,omitempty"` // applies only while open
	OpexPct          float64 `json:"opexPct"`
	OpexFixedMonthly float64 `json:"opexFixedMonthly,omitempty"` // applies only while open

	MaintenanceCapexPct float64 `json:"maintenanceCapexPct"`

	Seasonality []float64     `json:"seasonality,omitempty"` // 12 weights, normalized to mean 1.0 before use
	RampUp      *RampUpConfig `json:"rampUp,omitempty"`
}

// ProjectScenario groups the operating assets modeled together.
// Every operation's HorizonYears must equal the scenario's.
type ProjectScenario struct {
	Name         string            `json:"name"`
	HorizonYears int               `json:"horizonYears"`
	Operations   []OperationConfig `json:"operations"`
}
