package models

// CovenantType identifies the monitored debt metric.
type CovenantType string

const (
	CovenantMinDscr CovenantType = "min_dscr"
	CovenantMaxLtv  CovenantType = "max_ltv"
	CovenantMinCash CovenantType = "min_cash"
)

// BreachSeverity classifies a covenant failure.
type BreachSeverity string

const (
	SeverityWarning  BreachSeverity = "warning"  // within the grace period
	SeverityCritical BreachSeverity = "critical" // grace period exhausted
)

// Covenant is one monitored threshold. The consecutive-breach counter is
// tracked per covenant and resets to zero on any passing month.
type Covenant struct {
	ID          string       `json:"id"`
	Type        CovenantType `json:"type"`
	Threshold   float64      `json:"threshold"`
	GraceMonths int          `json:"graceMonths"`
}

// BreachEvent records one failing month for one covenant.
// Value is the observed metric; nil means the metric was undefined that
// month (and undefined metrics never breach, so Value is only nil on
// events synthesized by callers).
type BreachEvent struct {
	CovenantID  string         `json:"covenantId"`
	MonthIndex  int            `json:"monthIndex"`
	Value       *float64       `json:"value"`
	Threshold   float64        `json:"threshold"`
	Consecutive int            `json:"consecutive"`
	Severity    BreachSeverity `json:"severity"`
}
