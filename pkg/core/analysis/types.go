// Package analysis hosts the engines built on top of the pipeline:
// sensitivity grid search, variance-bridge attribution, and covenant
// monitoring. Each engine treats the base input as immutable and derives
// per-run variants through the builders in derive.go.
package analysis

import (
	"resort_proforma/pkg/core/project"
)

// Variable names an input driver the sensitivity engine can sweep.
type Variable string

const (
	VarOccupancy         Variable = "occupancy"
	VarAdr               Variable = "adr"
	VarDiscountRate      Variable = "discount_rate"
	VarInitialInvestment Variable = "initial_investment"
	VarDebtAmount        Variable = "debt_amount"
	VarInterestRate      Variable = "interest_rate"
	VarTerminalGrowth    Variable = "terminal_growth"
)

// multiplicative reports whether the axis values scale the base input
// rather than replace it. Occupancy, ADR, and interest rate sweep as
// factors (0.9 = 10% haircut); the level variables sweep as absolute
// replacements.
func (v Variable) multiplicative() bool {
	switch v {
	case VarOccupancy, VarAdr, VarInterestRate:
		return true
	}
	return false
}

func knownVariable(v Variable) bool {
	switch v {
	case VarOccupancy, VarAdr, VarDiscountRate, VarInitialInvestment,
		VarDebtAmount, VarInterestRate, VarTerminalGrowth:
		return true
	}
	return false
}

// Axis is one swept dimension of a sensitivity grid.
type Axis struct {
	Variable Variable `json:"variable"`
	Min      float64  `json:"min"`
	Max      float64  `json:"max"`
	Steps    int      `json:"steps"`
}

// SensitivityConfig describes a 1- or 2-dimensional grid. Secondary nil
// means a one-way sweep.
type SensitivityConfig struct {
	Primary   Axis  `json:"primary"`
	Secondary *Axis `json:"secondary,omitempty"`
}

// Cell is one grid point: the applied axis values and the resulting
// project KPIs. A cell whose variant failed to run carries the error
// text instead of KPIs; the sweep continues past it.
type Cell struct {
	PrimaryValue   float64              `json:"primaryValue"`
	SecondaryValue *float64             `json:"secondaryValue,omitempty"`
	Kpis           *project.ProjectKpis `json:"kpis,omitempty"`
	Error          string               `json:"error,omitempty"`
}

// SensitivityResult is the full grid in row-major order (primary axis
// outer, secondary inner).
type SensitivityResult struct {
	Config SensitivityConfig `json:"config"`
	Cells  []Cell            `json:"cells"`
}

// BridgeStep is one rung of the variance bridge: the NPV after merging
// the step's field group and the delta attributed to it.
type BridgeStep struct {
	Name  string  `json:"name"`
	Npv   float64 `json:"npv"`
	Delta float64 `json:"delta"`
}
