// Package cache provides stage-level result caching for the modeling
// pipeline. Each pipeline stage (scenario, project, capital, waterfall)
// stores its serialized result under a content hash of its inputs, so a
// re-run with unchanged inputs can skip the computation entirely.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Stage identifies one cached pipeline stage.
type Stage string

const (
	StageScenario  Stage = "scenario"
	StageProject   Stage = "project"
	StageCapital   Stage = "capital"
	StageWaterfall Stage = "waterfall"
)

// downstream maps each stage to its direct dependents. Invalidation walks
// this graph: writing a fresh result for a stage drops everything that
// consumed the stale one.
var downstream = map[Stage][]Stage{
	StageScenario:  {StageProject},
	StageProject:   {StageCapital},
	StageCapital:   {StageWaterfall},
	StageWaterfall: {},
}

// Downstream returns every stage transitively dependent on s, in
// dependency order. The result never includes s itself.
func Downstream(s Stage) []Stage {
	var out []Stage
	seen := map[Stage]bool{}
	var walk func(Stage)
	walk = func(cur Stage) {
		for _, next := range downstream[cur] {
			if seen[next] {
				continue
			}
			seen[next] = true
			out = append(out, next)
			walk(next)
		}
	}
	walk(s)
	return out
}

// Key derives a deterministic cache key from the stage's input. It hashes
// the canonical JSON encoding (encoding/json sorts map keys), so two
// structurally identical inputs always produce the same key.
func Key(input interface{}) (string, error) {
	raw, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cache key input: %w", err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

// Store is the backing storage for stage results. Implementations exist
// for memory, local files, Redis, and Postgres.
type Store interface {
	// Get returns the cached bytes for (stage, key). The bool reports
	// whether the entry was found; a miss is not an error.
	Get(ctx context.Context, stage Stage, key string) ([]byte, bool, error)
	// Set stores the bytes for (stage, key), replacing any prior entry.
	Set(ctx context.Context, stage Stage, key string, value []byte) error
	// DropStage removes every entry for the stage.
	DropStage(ctx context.Context, stage Stage) error
}

// StageCache wraps a Store with the stage dependency graph.
type StageCache struct {
	store Store
}

func New(store Store) *StageCache {
	return &StageCache{store: store}
}

// Get unmarshals the cached result for (stage, key) into out. Returns
// false on a miss; out is untouched in that case.
func (c *StageCache) Get(ctx context.Context, stage Stage, key string, out interface{}) (bool, error) {
	raw, ok, err := c.store.Get(ctx, stage, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		// A corrupt entry is treated as a miss so the pipeline recomputes.
		return false, nil
	}
	return true, nil
}

// Set stores the result for (stage, key) and drops every downstream
// stage, since their cached results were derived from the value being
// replaced.
func (c *StageCache) Set(ctx context.Context, stage Stage, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s result: %w", stage, err)
	}
	for _, dep := range Downstream(stage) {
		if err := c.store.DropStage(ctx, dep); err != nil {
			return fmt.Errorf("failed to invalidate %s: %w", dep, err)
		}
	}
	return c.store.Set(ctx, stage, key, raw)
}
