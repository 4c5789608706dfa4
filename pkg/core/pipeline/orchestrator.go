// Package pipeline orchestrates the four modeling stages in dependency
// order: scenario consolidation, project valuation, capital structure,
// equity waterfall. Each stage result is cached under a content hash of
// its inputs, so repeated runs with unchanged assumptions skip straight
// to the cached result.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"resort_proforma/pkg/core/cache"
	"resort_proforma/pkg/core/capital"
	"resort_proforma/pkg/core/project"
	"resort_proforma/pkg/core/scenario"
	"resort_proforma/pkg/core/validate"
	"resort_proforma/pkg/core/waterfall"
	"resort_proforma/pkg/models"

	"github.com/google/uuid"
)

// FullModelOutput bundles every stage result from one pipeline run.
type FullModelOutput struct {
	RunID      uuid.UUID         `json:"runId"`
	ComputedAt time.Time         `json:"computedAt"`
	Scenario   *scenario.Result  `json:"scenario"`
	Project    *project.Result   `json:"project"`
	Capital    *capital.Result   `json:"capital"`
	Waterfall  *waterfall.Result `json:"waterfall"`
	// CacheHits lists the stages served from cache, in run order.
	CacheHits []string `json:"cacheHits"`
}

// Orchestrator runs the staged model. The zero value is not usable;
// construct with New.
type Orchestrator struct {
	cache   *cache.StageCache
	Verbose bool
}

// New creates an orchestrator backed by the given stage cache. Passing
// nil gets an in-memory cache scoped to this orchestrator.
func New(c *cache.StageCache) *Orchestrator {
	if c == nil {
		c = cache.New(cache.NewMemoryStore())
	}
	return &Orchestrator{cache: c}
}

func (o *Orchestrator) logf(format string, args ...interface{}) {
	if o.Verbose {
		fmt.Printf(format, args...)
	}
}

// Run executes the full pipeline for one model input. Validation runs
// first and rejects the whole input before any stage computes. A contract
// violation between stages is fatal: it means an engine produced a
// malformed result, not that the user supplied bad assumptions.
func (o *Orchestrator) Run(ctx context.Context, input models.FullModelInput) (*FullModelOutput, error) {
	if err := validate.Input(input); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}

	out := &FullModelOutput{
		RunID:      uuid.New(),
		ComputedAt: time.Now().UTC(),
	}
	horizon := input.Scenario.HorizonYears

	// --- Stage 1: Scenario Consolidation ---
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	scenarioKey, err := cache.Key(input.Scenario)
	if err != nil {
		return nil, err
	}
	var scenarioRes scenario.Result
	hit, err := o.cache.Get(ctx, cache.StageScenario, scenarioKey, &scenarioRes)
	if err != nil {
		return nil, fmt.Errorf("scenario cache read failed: %w", err)
	}
	if hit {
		o.logf("[PIPELINE] Scenario stage: cache hit (%s)\n", scenarioKey[:12])
		out.CacheHits = append(out.CacheHits, string(cache.StageScenario))
	} else {
		o.logf("[PIPELINE] Scenario stage: computing %d operations over %d years\n",
			len(input.Scenario.Operations), horizon)
		res, err := scenario.Run(input.Scenario)
		if err != nil {
			return nil, err
		}
		scenarioRes = *res
		if err := o.cache.Set(ctx, cache.StageScenario, scenarioKey, scenarioRes); err != nil {
			return nil, fmt.Errorf("scenario cache write failed: %w", err)
		}
	}
	if err := checkScenarioContract(&scenarioRes, horizon); err != nil {
		return nil, err
	}
	out.Scenario = &scenarioRes

	// --- Stage 2: Project Valuation ---
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	projectKey, err := cache.Key(struct {
		Upstream string                        `json:"upstream"`
		Project  models.ProjectConfig          `json:"project"`
		Capital  models.CapitalStructureConfig `json:"capital"`
	}{scenarioKey, input.ProjectConfig, input.CapitalConfig})
	if err != nil {
		return nil, err
	}
	var projectRes project.Result
	hit, err = o.cache.Get(ctx, cache.StageProject, projectKey, &projectRes)
	if err != nil {
		return nil, fmt.Errorf("project cache read failed: %w", err)
	}
	if hit {
		o.logf("[PIPELINE] Project stage: cache hit (%s)\n", projectKey[:12])
		out.CacheHits = append(out.CacheHits, string(cache.StageProject))
	} else {
		o.logf("[PIPELINE] Project stage: running DCF at %.2f%% discount\n",
			input.ProjectConfig.DiscountRate*100)
		res, err := project.Run(scenarioRes.ConsolidatedAnnual, input.ProjectConfig, input.CapitalConfig)
		if err != nil {
			return nil, err
		}
		projectRes = *res
		if err := o.cache.Set(ctx, cache.StageProject, projectKey, projectRes); err != nil {
			return nil, fmt.Errorf("project cache write failed: %w", err)
		}
	}
	if err := checkProjectContract(&projectRes, horizon); err != nil {
		return nil, err
	}
	out.Project = &projectRes

	// --- Stage 3: Capital Structure ---
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	capitalKey, err := cache.Key(struct {
		Upstream string                        `json:"upstream"`
		Capital  models.CapitalStructureConfig `json:"capital"`
	}{projectKey, input.CapitalConfig})
	if err != nil {
		return nil, err
	}
	var capitalRes capital.Result
	hit, err = o.cache.Get(ctx, cache.StageCapital, capitalKey, &capitalRes)
	if err != nil {
		return nil, fmt.Errorf("capital cache read failed: %w", err)
	}
	if hit {
		o.logf("[PIPELINE] Capital stage: cache hit (%s)\n", capitalKey[:12])
		out.CacheHits = append(out.CacheHits, string(cache.StageCapital))
	} else {
		o.logf("[PIPELINE] Capital stage: scheduling %d tranches\n",
			len(input.CapitalConfig.Tranches))
		ufcf := make([]float64, len(projectRes.UnleveredFcf))
		for i, cf := range projectRes.UnleveredFcf {
			ufcf[i] = cf.UnleveredFcf
		}
		res, err := capital.Run(scenarioRes.ConsolidatedAnnual, ufcf,
			input.CapitalConfig, input.ProjectConfig, scenarioRes.ConsolidatedMonthly)
		if err != nil {
			return nil, err
		}
		capitalRes = *res
		if err := o.cache.Set(ctx, cache.StageCapital, capitalKey, capitalRes); err != nil {
			return nil, fmt.Errorf("capital cache write failed: %w", err)
		}
	}
	if err := checkCapitalContract(&capitalRes, horizon); err != nil {
		return nil, err
	}
	out.Capital = &capitalRes

	// --- Stage 4: Equity Waterfall ---
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	waterfallKey, err := cache.Key(struct {
		Upstream  string                 `json:"upstream"`
		Waterfall models.WaterfallConfig `json:"waterfall"`
	}{capitalKey, input.WaterfallConfig})
	if err != nil {
		return nil, err
	}
	var waterfallRes waterfall.Result
	hit, err = o.cache.Get(ctx, cache.StageWaterfall, waterfallKey, &waterfallRes)
	if err != nil {
		return nil, fmt.Errorf("waterfall cache read failed: %w", err)
	}
	if hit {
		o.logf("[PIPELINE] Waterfall stage: cache hit (%s)\n", waterfallKey[:12])
		out.CacheHits = append(out.CacheHits, string(cache.StageWaterfall))
	} else {
		o.logf("[PIPELINE] Waterfall stage: distributing across %d classes\n",
			len(input.WaterfallConfig.Classes))
		res, err := waterfall.Run(capitalRes.OwnerLeveredCashFlows, input.WaterfallConfig)
		if err != nil {
			return nil, err
		}
		waterfallRes = *res
		if err := o.cache.Set(ctx, cache.StageWaterfall, waterfallKey, waterfallRes); err != nil {
			return nil, fmt.Errorf("waterfall cache write failed: %w", err)
		}
	}
	if err := checkWaterfallContract(&waterfallRes, horizon); err != nil {
		return nil, err
	}
	out.Waterfall = &waterfallRes

	return out, nil
}
