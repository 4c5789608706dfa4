package pipeline

import (
	"fmt"

	"resort_proforma/pkg/core/capital"
	"resort_proforma/pkg/core/project"
	"resort_proforma/pkg/core/scenario"
	"resort_proforma/pkg/core/waterfall"
)

// ContractError reports a malformed stage result. These are programming
// errors in an engine, not user input problems, and abort the run.
type ContractError struct {
	Stage  string
	Detail string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("stage contract violation [%s]: %s", e.Stage, e.Detail)
}

func contractf(stage, format string, args ...interface{}) error {
	return &ContractError{Stage: stage, Detail: fmt.Sprintf(format, args...)}
}

func checkScenarioContract(res *scenario.Result, horizon int) error {
	if len(res.ConsolidatedAnnual) != horizon {
		return contractf("scenario", "expected %d annual periods, got %d",
			horizon, len(res.ConsolidatedAnnual))
	}
	if len(res.ConsolidatedMonthly) != horizon*12 {
		return contractf("scenario", "expected %d monthly periods, got %d",
			horizon*12, len(res.ConsolidatedMonthly))
	}
	for i, p := range res.ConsolidatedAnnual {
		if p.YearIndex != i {
			return contractf("scenario", "annual period %d carries yearIndex %d", i, p.YearIndex)
		}
	}
	for i, p := range res.ConsolidatedMonthly {
		if p.MonthIndex != i {
			return contractf("scenario", "monthly period %d carries monthIndex %d", i, p.MonthIndex)
		}
	}
	return nil
}

func checkProjectContract(res *project.Result, horizon int) error {
	if len(res.UnleveredFcf) != horizon {
		return contractf("project", "expected %d cash-flow years, got %d",
			horizon, len(res.UnleveredFcf))
	}
	for i, cf := range res.UnleveredFcf {
		if cf.YearIndex != i {
			return contractf("project", "cash-flow year %d carries yearIndex %d", i, cf.YearIndex)
		}
	}
	return nil
}

func checkCapitalContract(res *capital.Result, horizon int) error {
	if len(res.LeveredFcf) != horizon {
		return contractf("capital", "expected %d levered cash-flow years, got %d",
			horizon, len(res.LeveredFcf))
	}
	// The owner flow vector prepends the year-0 equity check.
	if len(res.OwnerLeveredCashFlows) != horizon+1 {
		return contractf("capital", "expected %d owner cash flows, got %d",
			horizon+1, len(res.OwnerLeveredCashFlows))
	}
	return nil
}

func checkWaterfallContract(res *waterfall.Result, horizon int) error {
	for _, class := range res.Classes {
		if len(class.CashFlows) != horizon+1 {
			return contractf("waterfall", "class %s has %d cash flows, expected %d",
				class.ClassID, len(class.CashFlows), horizon+1)
		}
	}
	return nil
}
