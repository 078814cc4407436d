// Package fusion combines short/medium/long-horizon performance scores into
// single saturation and opportunity values.
package fusion

import (
	"creator-volume-lab/internal/config"
	"creator-volume-lab/internal/domain"
)

// SkipReasonNoHorizons is recorded when fusion falls back to caller scores.
const SkipReasonNoHorizons = "multi_horizon_fusion_skipped"

// Outcome is the fuser's tagged result. When Skipped is true the scores are
// the caller-supplied values passed through unmodified.
type Outcome struct {
	Saturation  float64
	Opportunity float64

	DivergenceDetected bool
	RapidWeights       bool // rapid-change weight set was used
	HorizonsUsed       int

	Skipped    bool
	SkipReason string
}

// Fuser blends horizon scores with a divergence-aware weight switch.
type Fuser struct {
	weights config.FusionWeights
}

// NewFuser creates a new multi-horizon fuser.
func NewFuser(weights config.FusionWeights) *Fuser {
	return &Fuser{weights: weights}
}

// Fuse combines the available horizon scores. Absent horizons are omitted and
// the weights re-normalized over what remains; with zero horizons the
// caller-supplied context scores pass through unchanged.
func (f *Fuser) Fuse(scores []*domain.HorizonScore, perf domain.PerformanceContext) Outcome {
	byHorizon := make(map[domain.Horizon]*domain.HorizonScore, len(scores))
	for _, sc := range scores {
		byHorizon[sc.Horizon] = sc
	}

	if len(byHorizon) == 0 {
		return Outcome{
			Saturation:  perf.SaturationScore,
			Opportunity: perf.OpportunityScore,
			Skipped:     true,
			SkipReason:  SkipReasonNoHorizons,
		}
	}

	// Divergence needs both ends of the window range.
	divergence := 0.0
	divergenceDetected := false
	if s7, ok7 := byHorizon[domain.Horizon7d]; ok7 {
		if s30, ok30 := byHorizon[domain.Horizon30d]; ok30 {
			divergence = abs(s7.SaturationScore - s30.SaturationScore)
			divergenceDetected = divergence > f.weights.DivergenceThreshold
		}
	}

	weights := f.weights.Default
	if divergenceDetected {
		weights = f.weights.RapidChange
	}

	sat := f.weightedAverage(byHorizon, weights, func(s *domain.HorizonScore) float64 { return s.SaturationScore })
	opp := f.weightedAverage(byHorizon, weights, func(s *domain.HorizonScore) float64 { return s.OpportunityScore })

	return Outcome{
		Saturation:         sat,
		Opportunity:        opp,
		DivergenceDetected: divergenceDetected,
		RapidWeights:       divergenceDetected,
		HorizonsUsed:       len(byHorizon),
	}
}

// weightedAverage computes Σ(w_i·score_i) / Σ(w_i) over available horizons.
func (f *Fuser) weightedAverage(byHorizon map[domain.Horizon]*domain.HorizonScore, w config.HorizonWeights, pick func(*domain.HorizonScore) float64) float64 {
	weightFor := map[domain.Horizon]float64{
		domain.Horizon7d:  w.W7d,
		domain.Horizon14d: w.W14d,
		domain.Horizon30d: w.W30d,
	}

	var sum, weightSum float64
	for h, sc := range byHorizon {
		weight := weightFor[h]
		sum += weight * pick(sc)
		weightSum += weight
	}

	if weightSum == 0 {
		return 0
	}
	return sum / weightSum
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
