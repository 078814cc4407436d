// Package config holds the pipeline tuning parameters. The curve shapes and
// weight tables are tunable, not hard requirements, so they live in one
// immutable struct loaded from YAML and passed by reference into the pipeline.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"creator-volume-lab/internal/domain"
)

// TierVolumes is the baseline per-category daily volume for one tier.
type TierVolumes struct {
	RevenuePerDay    int `yaml:"revenue_per_day"`
	EngagementPerDay int `yaml:"engagement_per_day"`
	RetentionPerDay  int `yaml:"retention_per_day"`
}

// TierTables maps audience size to baseline volumes.
type TierTables struct {
	MidThreshold   int `yaml:"mid_threshold"`   // fan_count >= this is MID
	HighThreshold  int `yaml:"high_threshold"`  // fan_count >= this is HIGH
	UltraThreshold int `yaml:"ultra_threshold"` // fan_count >= this is ULTRA

	Low   TierVolumes `yaml:"low"`
	Mid   TierVolumes `yaml:"mid"`
	High  TierVolumes `yaml:"high"`
	Ultra TierVolumes `yaml:"ultra"`
}

// Volumes returns the baseline volumes for a tier.
func (t TierTables) Volumes(tier domain.Tier) TierVolumes {
	switch tier {
	case domain.TierUltra:
		return t.Ultra
	case domain.TierHigh:
		return t.High
	case domain.TierMid:
		return t.Mid
	default:
		return t.Low
	}
}

// HorizonWeights is one weight set over the three lookback windows.
type HorizonWeights struct {
	W7d  float64 `yaml:"w7d"`
	W14d float64 `yaml:"w14d"`
	W30d float64 `yaml:"w30d"`
}

// FusionWeights configures multi-horizon fusion.
type FusionWeights struct {
	// DivergenceThreshold switches from Default to RapidChange weights when
	// |score_7d − score_30d| exceeds it.
	DivergenceThreshold float64        `yaml:"divergence_threshold"`
	Default             HorizonWeights `yaml:"default"`
	RapidChange         HorizonWeights `yaml:"rapid_change"`
}

// SignalCurves bounds the saturation/opportunity multiplier mapping.
type SignalCurves struct {
	SaturationFloor   float64 `yaml:"saturation_floor"`   // multiplier at saturation 100
	OpportunityCeil   float64 `yaml:"opportunity_ceil"`   // multiplier at opportunity 100
	TrendNudgePerUnit float64 `yaml:"trend_nudge_per_unit"` // added per point of positive revenue trend
}

// ConfidenceSteps is the message-count → confidence step function.
type ConfidenceSteps struct {
	FloorBelow   int     `yaml:"floor_below"`   // message_count below this scores FloorScore
	FloorScore   float64 `yaml:"floor_score"`
	RampTop      int     `yaml:"ramp_top"`      // linear ramp ends just below this count
	RampTopScore float64 `yaml:"ramp_top_score"`
	MidBelow     int     `yaml:"mid_below"`     // counts in [RampTop, MidBelow) score MidScore
	MidScore     float64 `yaml:"mid_score"`
	// Counts >= MidBelow score 1.0.

	// DampenBelow: multipliers are pulled toward 1.0 when confidence is
	// below this value.
	DampenBelow float64 `yaml:"dampen_below"`
}

// ElasticityTuning configures the diminishing-returns capper.
type ElasticityTuning struct {
	MinDistinctVolumes int     `yaml:"min_distinct_volumes"`
	MarginalFloorFrac  float64 `yaml:"marginal_floor_frac"` // fraction of avg revenue/send
}

// WeekdayTuning bounds day-of-week multipliers.
type WeekdayTuning struct {
	MultiplierFloor float64 `yaml:"multiplier_floor"`
	MultiplierCeil  float64 `yaml:"multiplier_ceil"`
}

// AllocationTuning sets the budget share per performance tier.
type AllocationTuning struct {
	TopShare float64 `yaml:"top_share"`
	MidShare float64 `yaml:"mid_share"`
	LowShare float64 `yaml:"low_share"`
	// AVOID always receives zero.
}

// CaptionTuning sets what counts as a usable caption asset.
type CaptionTuning struct {
	MinUsablePerType int     `yaml:"min_usable_per_type"`
	FreshnessDays    int     `yaml:"freshness_days"`     // rested for at least this many days, or never used
	MinPerformance   float64 `yaml:"min_performance"`
}

// Tuning is the full set of pipeline parameters.
type Tuning struct {
	Tiers      TierTables       `yaml:"tiers"`
	Fusion     FusionWeights    `yaml:"fusion"`
	Signal     SignalCurves     `yaml:"signal"`
	Confidence ConfidenceSteps  `yaml:"confidence"`
	Elasticity ElasticityTuning `yaml:"elasticity"`
	Weekday    WeekdayTuning    `yaml:"weekday"`
	Allocation AllocationTuning `yaml:"allocation"`
	Captions   CaptionTuning    `yaml:"captions"`
}

// Default returns the shipped tuning values.
func Default() Tuning {
	return Tuning{
		Tiers: TierTables{
			MidThreshold:   1000,
			HighThreshold:  5000,
			UltraThreshold: 15000,
			Low:            TierVolumes{RevenuePerDay: 3, EngagementPerDay: 2, RetentionPerDay: 1},
			Mid:            TierVolumes{RevenuePerDay: 4, EngagementPerDay: 3, RetentionPerDay: 1},
			High:           TierVolumes{RevenuePerDay: 5, EngagementPerDay: 4, RetentionPerDay: 2},
			Ultra:          TierVolumes{RevenuePerDay: 7, EngagementPerDay: 5, RetentionPerDay: 3},
		},
		Fusion: FusionWeights{
			DivergenceThreshold: 15,
			Default:             HorizonWeights{W7d: 0.3, W14d: 0.5, W30d: 0.2},
			RapidChange:         HorizonWeights{W7d: 0.5, W14d: 0.35, W30d: 0.15},
		},
		Signal: SignalCurves{
			SaturationFloor:   0.7,
			OpportunityCeil:   1.2,
			TrendNudgePerUnit: 0.002,
		},
		Confidence: ConfidenceSteps{
			FloorBelow:   20,
			FloorScore:   0.2,
			RampTop:      100,
			RampTopScore: 0.6,
			MidBelow:     200,
			MidScore:     0.8,
			DampenBelow:  0.6,
		},
		Elasticity: ElasticityTuning{
			MinDistinctVolumes: 3,
			MarginalFloorFrac:  0.10,
		},
		Weekday: WeekdayTuning{
			MultiplierFloor: 0.7,
			MultiplierCeil:  1.3,
		},
		Allocation: AllocationTuning{
			TopShare: 0.6,
			MidShare: 0.3,
			LowShare: 0.1,
		},
		Captions: CaptionTuning{
			MinUsablePerType: 3,
			FreshnessDays:    30,
			MinPerformance:   0.2,
		},
	}
}

// Load reads tuning from a YAML file, starting from defaults so partial
// files only override what they mention.
func Load(path string) (Tuning, error) {
	t := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parse tuning file: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

// Validate rejects tunings that would violate the pipeline's bounds.
func (t Tuning) Validate() error {
	if t.Tiers.MidThreshold <= 0 || t.Tiers.HighThreshold <= t.Tiers.MidThreshold || t.Tiers.UltraThreshold <= t.Tiers.HighThreshold {
		return fmt.Errorf("tier thresholds must be ascending and positive")
	}
	if t.Fusion.DivergenceThreshold < 0 {
		return fmt.Errorf("fusion divergence threshold must be >= 0")
	}
	for _, w := range []HorizonWeights{t.Fusion.Default, t.Fusion.RapidChange} {
		if w.W7d < 0 || w.W14d < 0 || w.W30d < 0 || w.W7d+w.W14d+w.W30d == 0 {
			return fmt.Errorf("fusion weights must be non-negative and not all zero")
		}
	}
	if t.Signal.SaturationFloor <= 0 || t.Signal.SaturationFloor > 1 {
		return fmt.Errorf("saturation floor must be in (0,1]")
	}
	if t.Signal.OpportunityCeil < 1 {
		return fmt.Errorf("opportunity ceiling must be >= 1")
	}
	if t.Confidence.FloorBelow <= 0 || t.Confidence.RampTop <= t.Confidence.FloorBelow || t.Confidence.MidBelow <= t.Confidence.RampTop {
		return fmt.Errorf("confidence step boundaries must be ascending")
	}
	if t.Elasticity.MinDistinctVolumes < 2 {
		return fmt.Errorf("elasticity needs at least 2 distinct volume levels")
	}
	if t.Elasticity.MarginalFloorFrac <= 0 || t.Elasticity.MarginalFloorFrac >= 1 {
		return fmt.Errorf("marginal floor fraction must be in (0,1)")
	}
	if t.Weekday.MultiplierFloor <= 0 || t.Weekday.MultiplierCeil < t.Weekday.MultiplierFloor {
		return fmt.Errorf("weekday multiplier bounds invalid")
	}
	if t.Allocation.TopShare < 0 || t.Allocation.MidShare < 0 || t.Allocation.LowShare < 0 {
		return fmt.Errorf("allocation shares must be >= 0")
	}
	if t.Allocation.TopShare+t.Allocation.MidShare+t.Allocation.LowShare == 0 {
		return fmt.Errorf("allocation shares must not all be zero")
	}
	if t.Captions.MinUsablePerType < 1 {
		return fmt.Errorf("min usable captions must be >= 1")
	}
	return nil
}
