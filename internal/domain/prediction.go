package domain

import "time"

// VolumePrediction is the persisted summary of one recommendation, written
// for later accuracy calibration. Upserted by (creator_id, week_start).
type VolumePrediction struct {
	PredictionID     string
	CreatorID        string
	WeekStart        time.Time // Monday 00:00 UTC of the recommended week
	Tier             Tier
	RevenuePerDay    int
	EngagementPerDay int
	RetentionPerDay  int
	TotalWeekly      int
	ConfidenceScore  float64
	ElasticityCapped bool
	ExpectedRevenue  float64 // modeled weekly revenue, 0 when no elasticity fit
	Source           CalculationSource
	CreatedAt        time.Time
}

// WeekStartOf returns the Monday 00:00 UTC of the week containing t.
func WeekStartOf(t time.Time) time.Time {
	t = t.UTC()
	// time.Weekday: Sunday = 0, Monday = 1
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -offset)
}
