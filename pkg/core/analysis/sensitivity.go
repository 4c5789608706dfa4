package analysis

import (
	"context"
	"fmt"

	"resort_proforma/pkg/core/finmath"
	"resort_proforma/pkg/core/pipeline"
	"resort_proforma/pkg/models"
)

// maxStepsPerAxis caps the grid at 10x10 cells. An oversized request is
// rejected before any model run, never silently truncated.
const maxStepsPerAxis = 10

func validateAxis(label string, a Axis) error {
	if !knownVariable(a.Variable) {
		return fmt.Errorf("sensitivity %s axis: unknown variable %q", label, a.Variable)
	}
	if a.Steps < 1 {
		return fmt.Errorf("sensitivity %s axis: steps must be at least 1, got %d", label, a.Steps)
	}
	if a.Steps > maxStepsPerAxis {
		return fmt.Errorf("sensitivity %s axis: %d steps exceeds the %d-step limit",
			label, a.Steps, maxStepsPerAxis)
	}
	if a.Max < a.Min {
		return fmt.Errorf("sensitivity %s axis: max %f below min %f", label, a.Max, a.Min)
	}
	return nil
}

// RunSensitivity sweeps 1 or 2 variables over evenly spaced steps,
// re-running the full pipeline per cell against a derived copy of the
// base input. Cells whose variant fails carry the error and the sweep
// continues; only a malformed grid or a cancelled context aborts it.
func RunSensitivity(ctx context.Context, base models.FullModelInput, cfg SensitivityConfig) (*SensitivityResult, error) {
	if err := validateAxis("primary", cfg.Primary); err != nil {
		return nil, err
	}
	if cfg.Secondary != nil {
		if err := validateAxis("secondary", *cfg.Secondary); err != nil {
			return nil, err
		}
	}

	primaryVals := finmath.Linspace(cfg.Primary.Min, cfg.Primary.Max, cfg.Primary.Steps)
	secondaryVals := []float64{0} // placeholder for the one-way case
	if cfg.Secondary != nil {
		secondaryVals = finmath.Linspace(cfg.Secondary.Min, cfg.Secondary.Max, cfg.Secondary.Steps)
	}

	// One orchestrator for the whole sweep: cells sharing an upstream
	// stage (e.g. a discount-rate axis never touches the scenario) reuse
	// its cached result.
	orch := pipeline.New(nil)

	result := &SensitivityResult{Config: cfg}
	for _, pv := range primaryVals {
		for _, sv := range secondaryVals {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			variant, err := applyVariable(base, cfg.Primary.Variable, pv)
			if err != nil {
				return nil, err
			}
			cell := Cell{PrimaryValue: pv}
			if cfg.Secondary != nil {
				variant, err = applyVariable(variant, cfg.Secondary.Variable, sv)
				if err != nil {
					return nil, err
				}
				s := sv
				cell.SecondaryValue = &s
			}

			out, err := orch.Run(ctx, variant)
			if err != nil {
				cell.Error = err.Error()
			} else {
				kpis := out.Project.Kpis
				cell.Kpis = &kpis
			}
			result.Cells = append(result.Cells, cell)
		}
	}
	return result, nil
}
