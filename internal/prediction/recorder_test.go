package prediction

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"creator-volume-lab/internal/domain"
	"creator-volume-lab/internal/storage/memory"
)

func sampleResult() *domain.OptimizedVolumeResult {
	return &domain.OptimizedVolumeResult{
		CreatorID:   "creator-1",
		BaseConfig:  domain.VolumeConfig{Tier: domain.TierHigh, RevenuePerDay: 5, EngagementPerDay: 4, RetentionPerDay: 2},
		FinalConfig: domain.VolumeConfig{Tier: domain.TierHigh, RevenuePerDay: 6, EngagementPerDay: 4, RetentionPerDay: 2},
		WeeklyDistribution: map[int]int{
			0: 12, 1: 12, 2: 12, 3: 12, 4: 12, 5: 12, 6: 12,
		},
		ConfidenceScore:   0.8,
		ElasticityCapped:  true,
		CalculationSource: domain.SourcePipeline,
	}
}

func TestRecord_PersistsSnapshot(t *testing.T) {
	store := memory.NewPredictionStore()
	r := NewRecorder(store)
	now := time.Date(2026, 8, 20, 15, 30, 0, 0, time.UTC) // a Thursday

	res := sampleResult()
	id, err := r.Record(context.Background(), res, domain.ElasticityProfile{}, now)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if id == "" {
		t.Fatal("Expected a non-empty prediction ID")
	}

	weekStart := time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC) // the Monday
	got, err := store.GetByKey(context.Background(), "creator-1", weekStart)
	if err != nil {
		t.Fatalf("GetByKey: %v", err)
	}
	if got.PredictionID != id {
		t.Errorf("Stored prediction ID = %q, want %q", got.PredictionID, id)
	}
	if got.RevenuePerDay != 6 || got.Tier != domain.TierHigh {
		t.Errorf("Stored config mismatch: %+v", got)
	}
	if got.TotalWeekly != 84 {
		t.Errorf("TotalWeekly = %d, want 84", got.TotalWeekly)
	}
	if !got.ElasticityCapped || got.ConfidenceScore != 0.8 {
		t.Errorf("Stored flags mismatch: %+v", got)
	}
	if got.Source != domain.SourcePipeline {
		t.Errorf("Source = %q, want pipeline", got.Source)
	}
	if got.ExpectedRevenue != 0 {
		t.Errorf("ExpectedRevenue = %v, want 0 without a reliable fit", got.ExpectedRevenue)
	}
}

func TestRecord_ExpectedRevenueFromReliableFit(t *testing.T) {
	store := memory.NewPredictionStore()
	r := NewRecorder(store)
	now := time.Date(2026, 8, 20, 15, 30, 0, 0, time.UTC)

	profile := domain.ElasticityProfile{A: 10, B: 0.1, Reliable: true}
	res := sampleResult()

	if _, err := r.Record(context.Background(), res, profile, now); err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, err := store.GetByKey(context.Background(), "creator-1", domain.WeekStartOf(now))
	if err != nil {
		t.Fatalf("GetByKey: %v", err)
	}
	want := 7 * profile.Revenue(6)
	if math.Abs(got.ExpectedRevenue-want) > 1e-9 {
		t.Errorf("ExpectedRevenue = %v, want %v", got.ExpectedRevenue, want)
	}
}

func TestRecord_SameWeekReplacesEarlierRow(t *testing.T) {
	store := memory.NewPredictionStore()
	r := NewRecorder(store)

	monday := time.Date(2026, 8, 17, 9, 0, 0, 0, time.UTC)
	friday := time.Date(2026, 8, 21, 9, 0, 0, 0, time.UTC)

	res := sampleResult()
	firstID, err := r.Record(context.Background(), res, domain.ElasticityProfile{}, monday)
	if err != nil {
		t.Fatalf("First record: %v", err)
	}

	res.FinalConfig.RevenuePerDay = 4
	secondID, err := r.Record(context.Background(), res, domain.ElasticityProfile{}, friday)
	if err != nil {
		t.Fatalf("Second record: %v", err)
	}
	if firstID == secondID {
		t.Fatal("Each record must mint a fresh prediction ID")
	}

	got, err := store.GetByKey(context.Background(), "creator-1", domain.WeekStartOf(friday))
	if err != nil {
		t.Fatalf("GetByKey: %v", err)
	}
	if got.PredictionID != secondID || got.RevenuePerDay != 4 {
		t.Errorf("Expected the later row to win, got %+v", got)
	}
}

type failingPredictionStore struct{}

func (failingPredictionStore) Upsert(context.Context, *domain.VolumePrediction) error {
	return errors.New("store unavailable")
}

func (failingPredictionStore) GetByKey(context.Context, string, time.Time) (*domain.VolumePrediction, error) {
	return nil, errors.New("store unavailable")
}

func TestRecord_StoreFailureReturnsError(t *testing.T) {
	r := NewRecorder(failingPredictionStore{})

	id, err := r.Record(context.Background(), sampleResult(), domain.ElasticityProfile{}, time.Now())
	if err == nil {
		t.Fatal("Expected an error from the failing store")
	}
	if id != "" {
		t.Errorf("Prediction ID must be empty on failure, got %q", id)
	}
}
