package domain

// CalculationSource records which path produced the result.
type CalculationSource string

const (
	// SourcePipeline means every stage ran (some may have skipped themselves).
	SourcePipeline CalculationSource = "pipeline"
	// SourceFallback means a stage failure forced the base config through.
	SourceFallback CalculationSource = "fallback"
)

// OptimizedVolumeResult is the pipeline's sole externally visible artifact.
// It is created fresh per invocation and never mutated afterwards.
type OptimizedVolumeResult struct {
	CreatorID string `json:"creator_id"`

	BaseConfig  VolumeConfig `json:"base_config"`
	FinalConfig VolumeConfig `json:"final_config"`

	// WeeklyDistribution maps time.Weekday numbering (0 = Sunday) to total
	// sends for that day.
	WeeklyDistribution map[int]int `json:"weekly_distribution"`

	// ContentAllocations maps content type to its share of the weekly
	// revenue budget. Empty when no ranking data exists.
	ContentAllocations map[string]int `json:"content_allocations"`

	// AdjustmentsApplied is the ordered audit trail of stages that altered
	// or skipped part of the computation.
	AdjustmentsApplied []string `json:"adjustments_applied"`

	ConfidenceScore    float64           `json:"confidence_score"` // 0-1
	ElasticityCapped   bool              `json:"elasticity_capped"`
	CaptionWarnings    []string          `json:"caption_warnings"`
	FusedSaturation    float64           `json:"fused_saturation"`
	FusedOpportunity   float64           `json:"fused_opportunity"`
	DivergenceDetected bool              `json:"divergence_detected"`
	DOWMultipliersUsed map[int]float64   `json:"dow_multipliers_used"`
	PredictionID       string            `json:"prediction_id,omitempty"` // empty when the prediction write failed
	MessageCount       int               `json:"message_count"`
	CalculationSource  CalculationSource `json:"calculation_source"`
	FallbackReason     string            `json:"fallback_reason,omitempty"` // set only on fallback
}

// TotalWeeklyVolume sums the weekly distribution.
func (r *OptimizedVolumeResult) TotalWeeklyVolume() int {
	total := 0
	for _, n := range r.WeeklyDistribution {
		total += n
	}
	return total
}

// HasWarnings reports whether the caption pool flagged any allocation.
func (r *OptimizedVolumeResult) HasWarnings() bool {
	return len(r.CaptionWarnings) > 0
}

// IsHighConfidence reports whether the signal was trusted without dampening.
func (r *OptimizedVolumeResult) IsHighConfidence() bool {
	return r.ConfidenceScore >= 0.6
}
