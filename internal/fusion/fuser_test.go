package fusion

import (
	"math"
	"testing"

	"creator-volume-lab/internal/config"
	"creator-volume-lab/internal/domain"
)

func defaultFuser() *Fuser {
	return NewFuser(config.Default().Fusion)
}

func TestFuser_NoHorizonsPassesThroughContext(t *testing.T) {
	f := defaultFuser()
	perf := domain.PerformanceContext{SaturationScore: 45, OpportunityScore: 65}

	out := f.Fuse(nil, perf)

	if !out.Skipped {
		t.Fatal("Expected fusion to skip with zero horizons")
	}
	if out.SkipReason != SkipReasonNoHorizons {
		t.Errorf("Unexpected skip reason: %s", out.SkipReason)
	}
	if out.Saturation != 45 || out.Opportunity != 65 {
		t.Errorf("Expected pass-through scores 45/65, got %v/%v", out.Saturation, out.Opportunity)
	}
}

func TestFuser_DefaultWeights(t *testing.T) {
	f := defaultFuser()
	scores := []*domain.HorizonScore{
		{Horizon: domain.Horizon7d, SaturationScore: 40, OpportunityScore: 60},
		{Horizon: domain.Horizon14d, SaturationScore: 50, OpportunityScore: 50},
		{Horizon: domain.Horizon30d, SaturationScore: 45, OpportunityScore: 55},
	}

	out := f.Fuse(scores, domain.PerformanceContext{})

	if out.Skipped {
		t.Fatal("Expected fusion to run")
	}
	if out.DivergenceDetected {
		t.Error("Divergence |40-45|=5 should not exceed threshold 15")
	}
	// 0.3*40 + 0.5*50 + 0.2*45 = 46
	if math.Abs(out.Saturation-46) > 1e-9 {
		t.Errorf("Expected fused saturation 46, got %v", out.Saturation)
	}
	// 0.3*60 + 0.5*50 + 0.2*55 = 54
	if math.Abs(out.Opportunity-54) > 1e-9 {
		t.Errorf("Expected fused opportunity 54, got %v", out.Opportunity)
	}
	if out.HorizonsUsed != 3 {
		t.Errorf("Expected 3 horizons used, got %d", out.HorizonsUsed)
	}
}

func TestFuser_DivergenceSwitchesToRapidWeights(t *testing.T) {
	f := defaultFuser()
	scores := []*domain.HorizonScore{
		{Horizon: domain.Horizon7d, SaturationScore: 80, OpportunityScore: 20},
		{Horizon: domain.Horizon14d, SaturationScore: 60, OpportunityScore: 40},
		{Horizon: domain.Horizon30d, SaturationScore: 40, OpportunityScore: 60},
	}

	out := f.Fuse(scores, domain.PerformanceContext{})

	if !out.DivergenceDetected {
		t.Fatal("Expected divergence |80-40|=40 > 15 to be detected")
	}
	if !out.RapidWeights {
		t.Error("Expected rapid-change weight set")
	}
	// 0.5*80 + 0.35*60 + 0.15*40 = 67
	if math.Abs(out.Saturation-67) > 1e-9 {
		t.Errorf("Expected fused saturation 67, got %v", out.Saturation)
	}
}

func TestFuser_RenormalizesOverAvailableHorizons(t *testing.T) {
	f := defaultFuser()
	// Only 7d and 14d available: weights 0.3 and 0.5 renormalize to 3/8, 5/8.
	scores := []*domain.HorizonScore{
		{Horizon: domain.Horizon7d, SaturationScore: 40, OpportunityScore: 80},
		{Horizon: domain.Horizon14d, SaturationScore: 80, OpportunityScore: 40},
	}

	out := f.Fuse(scores, domain.PerformanceContext{})

	want := (0.3*40 + 0.5*80) / 0.8
	if math.Abs(out.Saturation-want) > 1e-9 {
		t.Errorf("Expected fused saturation %v, got %v", want, out.Saturation)
	}
	if out.DivergenceDetected {
		t.Error("Divergence needs both 7d and 30d; should not trigger here")
	}
	if out.HorizonsUsed != 2 {
		t.Errorf("Expected 2 horizons used, got %d", out.HorizonsUsed)
	}
}

func TestFuser_SingleHorizonEqualsItsScore(t *testing.T) {
	f := defaultFuser()
	scores := []*domain.HorizonScore{
		{Horizon: domain.Horizon30d, SaturationScore: 72, OpportunityScore: 31},
	}

	out := f.Fuse(scores, domain.PerformanceContext{})

	if out.Saturation != 72 || out.Opportunity != 31 {
		t.Errorf("Single horizon should dominate: got %v/%v", out.Saturation, out.Opportunity)
	}
}
