package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Shipped defaults must validate: %v", err)
	}
}

func TestLoad_PartialFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	content := `
signal:
  saturation_floor: 0.8
  opportunity_ceil: 1.2
  trend_nudge_per_unit: 0.002
elasticity:
  min_distinct_volumes: 4
  marginal_floor_frac: 0.15
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Write tuning file: %v", err)
	}

	tuning, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if tuning.Signal.SaturationFloor != 0.8 {
		t.Errorf("SaturationFloor = %v, want 0.8", tuning.Signal.SaturationFloor)
	}
	if tuning.Elasticity.MinDistinctVolumes != 4 {
		t.Errorf("MinDistinctVolumes = %d, want 4", tuning.Elasticity.MinDistinctVolumes)
	}
	// Everything the file does not mention keeps its default.
	if tuning.Tiers.HighThreshold != 5000 {
		t.Errorf("HighThreshold = %d, want default 5000", tuning.Tiers.HighThreshold)
	}
	if tuning.Allocation.TopShare != 0.6 {
		t.Errorf("TopShare = %v, want default 0.6", tuning.Allocation.TopShare)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Expected an error for a missing tuning file")
	}
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	content := `
signal:
  saturation_floor: 1.5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Write tuning file: %v", err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "saturation floor") {
		t.Fatalf("Expected a saturation floor validation error, got %v", err)
	}
}

func TestValidate_RejectsBadTunings(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Tuning)
	}{
		{"descending tier thresholds", func(t *Tuning) { t.Tiers.HighThreshold = 500 }},
		{"negative divergence threshold", func(t *Tuning) { t.Fusion.DivergenceThreshold = -1 }},
		{"zero fusion weights", func(t *Tuning) { t.Fusion.Default = HorizonWeights{} }},
		{"opportunity ceiling below one", func(t *Tuning) { t.Signal.OpportunityCeil = 0.9 }},
		{"confidence steps out of order", func(t *Tuning) { t.Confidence.RampTop = 10 }},
		{"single elasticity level", func(t *Tuning) { t.Elasticity.MinDistinctVolumes = 1 }},
		{"marginal floor at one", func(t *Tuning) { t.Elasticity.MarginalFloorFrac = 1 }},
		{"inverted weekday bounds", func(t *Tuning) { t.Weekday.MultiplierCeil = 0.5 }},
		{"negative allocation share", func(t *Tuning) { t.Allocation.MidShare = -0.1 }},
		{"all-zero allocation shares", func(t *Tuning) { t.Allocation = AllocationTuning{} }},
		{"zero min usable captions", func(t *Tuning) { t.Captions.MinUsablePerType = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tuning := Default()
			tc.mutate(&tuning)
			if err := tuning.Validate(); err == nil {
				t.Error("Expected a validation error")
			}
		})
	}
}
