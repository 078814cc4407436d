// Package reporting renders batch recommendation runs for operators.
package reporting

import (
	"sort"
	"time"

	"creator-volume-lab/internal/domain"
)

// Report summarizes one batch of volume recommendations.
type Report struct {
	// Metadata
	GeneratedAt   time.Time
	CreatorCount  int
	FallbackCount int
	CappedCount   int

	// Rows (sorted by creator_id)
	Rows []RecommendationRow

	// Caption warnings across all creators, surfaced for the operator-facing
	// validation step before a schedule is committed.
	CaptionWarnings []CaptionWarningRow
}

// RecommendationRow is one creator's recommendation in the report.
type RecommendationRow struct {
	CreatorID        string
	Tier             domain.Tier
	RevenuePerDay    int
	EngagementPerDay int
	RetentionPerDay  int
	TotalWeekly      int
	ConfidenceScore  float64
	ElasticityCapped bool
	Source           domain.CalculationSource
	PredictionID     string
	Adjustments      []string
}

// CaptionWarningRow ties one warning back to its creator.
type CaptionWarningRow struct {
	CreatorID string
	Warning   string
}

// Build assembles a report from a batch of results.
func Build(results []*domain.OptimizedVolumeResult, generatedAt time.Time) *Report {
	r := &Report{
		GeneratedAt:  generatedAt,
		CreatorCount: len(results),
	}

	for _, res := range results {
		if res.CalculationSource == domain.SourceFallback {
			r.FallbackCount++
		}
		if res.ElasticityCapped {
			r.CappedCount++
		}
		r.Rows = append(r.Rows, RecommendationRow{
			CreatorID:        res.CreatorID,
			Tier:             res.FinalConfig.Tier,
			RevenuePerDay:    res.FinalConfig.RevenuePerDay,
			EngagementPerDay: res.FinalConfig.EngagementPerDay,
			RetentionPerDay:  res.FinalConfig.RetentionPerDay,
			TotalWeekly:      res.TotalWeeklyVolume(),
			ConfidenceScore:  res.ConfidenceScore,
			ElasticityCapped: res.ElasticityCapped,
			Source:           res.CalculationSource,
			PredictionID:     res.PredictionID,
			Adjustments:      res.AdjustmentsApplied,
		})
		for _, w := range res.CaptionWarnings {
			r.CaptionWarnings = append(r.CaptionWarnings, CaptionWarningRow{
				CreatorID: res.CreatorID,
				Warning:   w,
			})
		}
	}

	sort.Slice(r.Rows, func(i, j int) bool { return r.Rows[i].CreatorID < r.Rows[j].CreatorID })
	sort.Slice(r.CaptionWarnings, func(i, j int) bool {
		if r.CaptionWarnings[i].CreatorID != r.CaptionWarnings[j].CreatorID {
			return r.CaptionWarnings[i].CreatorID < r.CaptionWarnings[j].CreatorID
		}
		return r.CaptionWarnings[i].Warning < r.CaptionWarnings[j].Warning
	})

	return r
}
