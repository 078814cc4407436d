package elasticity

import (
	"math"
	"testing"

	"creator-volume-lab/internal/domain"
)

// synthSamples generates samples on an exact decay curve rps = a·e^(−b·v).
func synthSamples(a, b float64, volumes ...int) []domain.ElasticitySample {
	var out []domain.ElasticitySample
	for _, v := range volumes {
		out = append(out, domain.ElasticitySample{
			Volume:         v,
			RevenuePerSend: a * math.Exp(-b*float64(v)),
		})
	}
	return out
}

func TestFitProfile_RecoversDecayParameters(t *testing.T) {
	samples := synthSamples(10, 0.25, 1, 2, 3, 4, 5, 6)

	profile := FitProfile(samples, 3)

	if !profile.Reliable {
		t.Fatal("Expected a reliable fit from 6 distinct volume levels")
	}
	if math.Abs(profile.A-10) > 1e-6 {
		t.Errorf("Fitted A = %v, want 10", profile.A)
	}
	if math.Abs(profile.B-0.25) > 1e-6 {
		t.Errorf("Fitted B = %v, want 0.25", profile.B)
	}
}

func TestFitProfile_InsufficientDistinctVolumes(t *testing.T) {
	// Five samples but only two distinct volume levels.
	samples := []domain.ElasticitySample{
		{Volume: 3, RevenuePerSend: 8},
		{Volume: 3, RevenuePerSend: 8.2},
		{Volume: 3, RevenuePerSend: 7.9},
		{Volume: 5, RevenuePerSend: 6},
		{Volume: 5, RevenuePerSend: 6.1},
	}

	profile := FitProfile(samples, 3)
	if profile.Reliable {
		t.Error("Two distinct volume levels must not yield a reliable fit")
	}
}

func TestFitProfile_FlatRevenueNotReliable(t *testing.T) {
	// Revenue per send constant across volumes: decay is zero, nothing to cap.
	samples := []domain.ElasticitySample{
		{Volume: 2, RevenuePerSend: 5},
		{Volume: 4, RevenuePerSend: 5},
		{Volume: 6, RevenuePerSend: 5},
	}

	profile := FitProfile(samples, 3)
	if profile.Reliable {
		t.Error("Flat revenue per send must not yield a reliable fit")
	}
}

func TestFitProfile_IgnoresNonPositiveSamples(t *testing.T) {
	samples := append(synthSamples(10, 0.25, 1, 2, 3, 4),
		domain.ElasticitySample{Volume: 5, RevenuePerSend: 0},
		domain.ElasticitySample{Volume: 0, RevenuePerSend: 3},
	)

	profile := FitProfile(samples, 3)
	if !profile.Reliable {
		t.Fatal("Expected a reliable fit ignoring degenerate samples")
	}
	if math.Abs(profile.B-0.25) > 1e-6 {
		t.Errorf("Fitted B = %v, want 0.25", profile.B)
	}
}

func TestAveragePerSend(t *testing.T) {
	samples := []domain.ElasticitySample{
		{Volume: 1, RevenuePerSend: 4},
		{Volume: 2, RevenuePerSend: 6},
		{Volume: 3, RevenuePerSend: 0}, // excluded
	}

	if got := AveragePerSend(samples); got != 5 {
		t.Errorf("AveragePerSend = %v, want 5", got)
	}
	if got := AveragePerSend(nil); got != 0 {
		t.Errorf("AveragePerSend(nil) = %v, want 0", got)
	}
}
