// Package prediction persists recommendation snapshots for later accuracy
// calibration.
package prediction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"creator-volume-lab/internal/domain"
	"creator-volume-lab/internal/storage"
)

// writeTimeout bounds the prediction upsert so a slow store cannot stall
// the response path.
const writeTimeout = 3 * time.Second

// Recorder writes one prediction row per (creator, week).
type Recorder struct {
	store storage.PredictionStore
}

// NewRecorder creates a new prediction recorder.
func NewRecorder(store storage.PredictionStore) *Recorder {
	return &Recorder{store: store}
}

// Record upserts a snapshot of the result keyed by (creator_id, week_start),
// so re-optimizing within the same week replaces the earlier row. Expected
// revenue is modeled from the elasticity fit when one is reliable, zero
// otherwise. Returns the prediction ID, or an error the caller should treat
// as non-fatal.
func (r *Recorder) Record(ctx context.Context, res *domain.OptimizedVolumeResult, profile domain.ElasticityProfile, now time.Time) (string, error) {
	var expectedRevenue float64
	if profile.Reliable {
		expectedRevenue = 7 * profile.Revenue(res.FinalConfig.RevenuePerDay)
	}

	p := &domain.VolumePrediction{
		PredictionID:     uuid.NewString(),
		CreatorID:        res.CreatorID,
		WeekStart:        domain.WeekStartOf(now),
		Tier:             res.FinalConfig.Tier,
		RevenuePerDay:    res.FinalConfig.RevenuePerDay,
		EngagementPerDay: res.FinalConfig.EngagementPerDay,
		RetentionPerDay:  res.FinalConfig.RetentionPerDay,
		TotalWeekly:      res.TotalWeeklyVolume(),
		ConfidenceScore:  res.ConfidenceScore,
		ElasticityCapped: res.ElasticityCapped,
		ExpectedRevenue:  expectedRevenue,
		Source:           res.CalculationSource,
		CreatedAt:        now.UTC(),
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := r.store.Upsert(ctx, p); err != nil {
		return "", fmt.Errorf("upsert prediction: %w", err)
	}
	return p.PredictionID, nil
}
