package analysis

import (
	"context"
	"math"
	"testing"
)

func TestCalculateVarianceBridge_DecomposesNpvMove(t *testing.T) {
	base := baseInput()
	target := baseInput()
	target.Scenario.Operations[0].Price = 180            // operational
	target.ProjectConfig.DiscountRate = 0.11             // capital
	target.ProjectConfig.InitialInvestment = 2_500_000   // timing

	steps, err := CalculateVarianceBridge(context.Background(), base, target)
	if err != nil {
		t.Fatalf("Bridge failed: %v", err)
	}
	if len(steps) != 5 {
		t.Fatalf("Expected base + 3 merges + residual = 5 steps, got %d", len(steps))
	}

	names := []string{"base", "operational", "capital", "timing", "residual"}
	for i, want := range names {
		if steps[i].Name != want {
			t.Errorf("Step %d: expected %s, got %s", i, want, steps[i].Name)
		}
	}

	// Deltas chain from base NPV to target NPV.
	sum := steps[0].Npv
	for _, s := range steps[1:] {
		sum += s.Delta
	}
	if math.Abs(sum-steps[len(steps)-1].Npv) > 1e-6 {
		t.Errorf("Deltas must chain to the target NPV: %f vs %f", sum, steps[len(steps)-1].Npv)
	}

	// The field groups fully explain this move, so the residual is zero.
	if math.Abs(steps[4].Delta) > 1e-6 {
		t.Errorf("Expected ~0 residual, got %f", steps[4].Delta)
	}

	// Direction checks: a higher ADR raises NPV, a higher discount rate
	// and a larger investment both lower it.
	if steps[1].Delta <= 0 {
		t.Errorf("Operational step should be positive, got %f", steps[1].Delta)
	}
	if steps[2].Delta >= 0 {
		t.Errorf("Capital step should be negative, got %f", steps[2].Delta)
	}
	if steps[3].Delta >= 0 {
		t.Errorf("Timing step should be negative, got %f", steps[3].Delta)
	}
}

func TestCalculateVarianceBridge_IdenticalInputsAllZero(t *testing.T) {
	steps, err := CalculateVarianceBridge(context.Background(), baseInput(), baseInput())
	if err != nil {
		t.Fatalf("Bridge failed: %v", err)
	}
	for _, s := range steps[1:] {
		if math.Abs(s.Delta) > 1e-9 {
			t.Errorf("Step %s should carry zero delta, got %f", s.Name, s.Delta)
		}
	}
}

func TestCalculateVarianceBridge_InvalidBaseFails(t *testing.T) {
	bad := baseInput()
	bad.ProjectConfig.InitialInvestment = -1
	if _, err := CalculateVarianceBridge(context.Background(), bad, baseInput()); err == nil {
		t.Fatal("Expected base run failure")
	}
}
