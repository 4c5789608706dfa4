package models

// MonthlyPnl is one month of operating P&L for a single asset, or one
// consolidated month across all assets. MonthIndex is absolute
// (0 .. horizonYears*12-1), YearIndex = MonthIndex / 12.
type MonthlyPnl struct {
	MonthIndex int `json:"monthIndex"`
	YearIndex  int `json:"yearIndex"`

	RoomsRevenue    float64 `json:"roomsRevenue"`
	FoodRevenue     float64 `json:"foodRevenue"`
	BeverageRevenue float64 `json:"beverageRevenue"`
	OtherRevenue    float64 `json:"otherRevenue"`
	TotalRevenue    float64 `json:"totalRevenue"`

	Cogs             float64 `json:"cogs"`
	Opex             float64 `json:"opex"`
	Gop              float64 `json:"gop"`    // revenue - COGS
	Ebitda           float64 `json:"ebitda"` // GOP - opex
	MaintenanceCapex float64 `json:"maintenanceCapex"`
	Noi              float64 `json:"noi"` // EBITDA - maintenance capex
	CashFlow         float64 `json:"cashFlow"`
}

// AnnualPnl is the exact sum of the 12 MonthlyPnl entries of one year.
// Annual-to-monthly reconciliation is a hard invariant: no tolerance.
type AnnualPnl struct {
	YearIndex int `json:"yearIndex"`

	RoomsRevenue    float64 `json:"roomsRevenue"`
	FoodRevenue     float64 `json:"foodRevenue"`
	BeverageRevenue float64 `json:"beverageRevenue"`
	OtherRevenue    float64 `json:"otherRevenue"`
	TotalRevenue    float64 `json:"totalRevenue"`

	Cogs             float64 `json:"cogs"`
	Opex             float64 `json:"opex"`
	Gop              float64 `json:"gop"`
	Ebitda           float64 `json:"ebitda"`
	MaintenanceCapex float64 `json:"maintenanceCapex"`
	Noi              float64 `json:"noi"`
	CashFlow         float64 `json:"cashFlow"`
}

// AddMonthly accumulates a monthly line into the annual row.
func (a *AnnualPnl) AddMonthly(m MonthlyPnl) {
	a.RoomsRevenue += m.RoomsRevenue
	a.FoodRevenue += m.FoodRevenue
	a.BeverageRevenue += m.BeverageRevenue
	a.OtherRevenue += m.OtherRevenue
	a.TotalRevenue += m.TotalRevenue
	a.Cogs += m.Cogs
	a.Opex += m.Opex
	a.Gop += m.Gop
	a.Ebitda += m.Ebitda
	a.MaintenanceCapex += m.MaintenanceCapex
	a.Noi += m.Noi
	a.CashFlow += m.CashFlow
}

// Add accumulates another monthly row into this one (consolidation).
func (m *MonthlyPnl) Add(other MonthlyPnl) {
	m.RoomsRevenue += other.RoomsRevenue
	m.FoodRevenue += other.FoodRevenue
	m.BeverageRevenue += other.BeverageRevenue
	m.OtherRevenue += other.OtherRevenue
	m.TotalRevenue += other.TotalRevenue
	m.Cogs += other.Cogs
	m.Opex += other.Opex
	m.Gop += other.Gop
	m.Ebitda += other.Ebitda
	m.MaintenanceCapex += other.MaintenanceCapex
	m.Noi += other.Noi
	m.CashFlow += other.CashFlow
}

// Add accumulates another annual row into this one (consolidation).
func (a *AnnualPnl) Add(other AnnualPnl) {
	a.RoomsRevenue += other.RoomsRevenue
	a.FoodRevenue += other.FoodRevenue
	a.BeverageRevenue += other.BeverageRevenue
	a.OtherRevenue += other.OtherRevenue
	a.TotalRevenue += other.TotalRevenue
	a.Cogs += other.Cogs
	a.Opex += other.Opex
	a.Gop += other.Gop
	a.Ebitda += other.Ebitda
	a.MaintenanceCapex += other.MaintenanceCapex
	a.Noi += other.Noi
	a.CashFlow += other.CashFlow
}
