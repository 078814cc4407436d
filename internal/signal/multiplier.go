// Package signal turns fused saturation/opportunity scores into bounded
// volume multipliers and estimates how much the signal can be trusted.
package signal

import (
	"math"

	"creator-volume-lab/internal/config"
	"creator-volume-lab/internal/domain"
)

// Multipliers holds the per-signal and combined volume multipliers.
type Multipliers struct {
	Saturation  float64 // in [saturation_floor, 1.0]
	Opportunity float64 // in [1.0, opportunity_ceil]
	Combined    float64
	Dampened    bool // pulled toward 1.0 by low confidence
}

// Multiplier maps scores onto the configured curves.
type Multiplier struct {
	curves config.SignalCurves
}

// NewMultiplier creates a new signal multiplier.
func NewMultiplier(curves config.SignalCurves) *Multiplier {
	return &Multiplier{curves: curves}
}

// FromScores computes the multipliers for fused scores. Saturation maps
// linearly down from 1.0 (fatigue reduces volume), opportunity up from 1.0
// (headroom increases it). A positive revenue trend nudges the opportunity
// multiplier within its ceiling; a negative trend never reduces it below 1.0.
func (m *Multiplier) FromScores(saturation, opportunity, revenueTrend float64) Multipliers {
	saturation = clamp(saturation, 0, 100)
	opportunity = clamp(opportunity, 0, 100)

	satMult := 1.0 - (1.0-m.curves.SaturationFloor)*(saturation/100)

	oppMult := 1.0 + (m.curves.OpportunityCeil-1.0)*(opportunity/100)
	if revenueTrend > 0 {
		oppMult += m.curves.TrendNudgePerUnit * revenueTrend
	}
	oppMult = clamp(oppMult, 1.0, m.curves.OpportunityCeil)

	return Multipliers{
		Saturation:  satMult,
		Opportunity: oppMult,
		Combined:    satMult * oppMult,
	}
}

// Apply recomputes a volume config under a combined multiplier, rounding to
// nearest integer with a floor of 1 for any category whose base value is
// positive. The tier carries over unchanged.
func Apply(base domain.VolumeConfig, combined float64) domain.VolumeConfig {
	return domain.VolumeConfig{
		Tier:             base.Tier,
		RevenuePerDay:    scale(base.RevenuePerDay, combined),
		EngagementPerDay: scale(base.EngagementPerDay, combined),
		RetentionPerDay:  scale(base.RetentionPerDay, combined),
	}
}

func scale(base int, mult float64) int {
	if base <= 0 {
		return 0
	}
	scaled := int(math.Round(float64(base) * mult))
	if scaled < 1 {
		return 1
	}
	return scaled
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
