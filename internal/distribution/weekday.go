// Package distribution spreads a daily send total across a 7-day pattern
// derived from historical per-weekday performance.
package distribution

import (
	"math"

	"creator-volume-lab/internal/config"
	"creator-volume-lab/internal/domain"
	"creator-volume-lab/internal/signal"
)

// SkipReasonNoHistory is recorded when no weekday history exists and a flat
// pattern is used.
const SkipReasonNoHistory = "dow_distribution_flat_no_history"

// Outcome is the distributor's tagged result.
type Outcome struct {
	Multipliers map[int]float64 // weekday -> multiplier actually used
	Dampened    bool

	Skipped    bool
	SkipReason string
}

// Distributor computes weekday multipliers and the weekly distribution.
type Distributor struct {
	tuning     config.WeekdayTuning
	confidence config.ConfidenceSteps
}

// NewDistributor creates a new day-of-week distributor.
func NewDistributor(tuning config.WeekdayTuning, confidence config.ConfidenceSteps) *Distributor {
	return &Distributor{tuning: tuning, confidence: confidence}
}

// Multipliers derives per-weekday multipliers from historical averages,
// normalized around 1.0 and clamped to the configured bounds. Days without
// history get 1.0. Low confidence dampens the multipliers toward 1.0 the
// same way signal multipliers are dampened.
func (d *Distributor) Multipliers(history []*domain.WeekdayPerformance, confidence float64) Outcome {
	mults := make(map[int]float64, 7)
	for day := 0; day < 7; day++ {
		mults[day] = 1.0
	}

	if len(history) == 0 {
		return Outcome{Multipliers: mults, Skipped: true, SkipReason: SkipReasonNoHistory}
	}

	var sum float64
	var n int
	for _, h := range history {
		if h.Weekday < 0 || h.Weekday > 6 {
			continue
		}
		sum += h.AvgRevenue
		n++
	}
	if n == 0 || sum <= 0 {
		return Outcome{Multipliers: mults, Skipped: true, SkipReason: SkipReasonNoHistory}
	}
	mean := sum / float64(n)

	for _, h := range history {
		if h.Weekday < 0 || h.Weekday > 6 {
			continue
		}
		mults[h.Weekday] = clamp(h.AvgRevenue/mean, d.tuning.MultiplierFloor, d.tuning.MultiplierCeil)
	}

	dampened := false
	if confidence < d.confidence.DampenBelow {
		for day, m := range mults {
			mults[day] = signal.Dampen(m, confidence)
		}
		dampened = true
	}

	return Outcome{Multipliers: mults, Dampened: dampened}
}

// Distribute spreads the daily total across the week. Per-day rounding may
// leave the weekly sum within ±5% of total×7; callers treat that as normal.
func Distribute(totalPerDay int, multipliers map[int]float64) map[int]int {
	week := make(map[int]int, 7)
	for day := 0; day < 7; day++ {
		m, ok := multipliers[day]
		if !ok {
			m = 1.0
		}
		n := int(math.Round(float64(totalPerDay) * m))
		if n < 0 {
			n = 0
		}
		week[day] = n
	}
	return week
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
