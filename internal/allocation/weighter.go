// Package allocation splits the weekly revenue budget across content types
// by their historical performance tier.
package allocation

import (
	"math"
	"sort"

	"creator-volume-lab/internal/config"
	"creator-volume-lab/internal/domain"
)

// Weighter assigns revenue sends to content types.
type Weighter struct {
	tuning config.AllocationTuning
}

// NewWeighter creates a new content-type weighter.
func NewWeighter(tuning config.AllocationTuning) *Weighter {
	return &Weighter{tuning: tuning}
}

// Allocate splits weeklyBudget revenue sends across the ranked content types.
// TOP/MID/LOW tiers receive their configured shares, renormalized over the
// tiers actually present; AVOID types always get zero. Within a tier the
// budget splits evenly, with largest-remainder rounding so the counts sum to
// exactly weeklyBudget. Returns an empty map when no rankings exist.
func (w *Weighter) Allocate(weeklyBudget int, rankings []*domain.ContentRanking) map[string]int {
	out := make(map[string]int)
	if len(rankings) == 0 || weeklyBudget <= 0 {
		return out
	}

	byTier := make(map[domain.PerformanceTier][]string)
	for _, r := range rankings {
		if r.Tier == domain.PerformanceTierAvoid {
			out[r.ContentType] = 0
			continue
		}
		byTier[r.Tier] = append(byTier[r.Tier], r.ContentType)
	}

	var totalShare float64
	for tier := range byTier {
		totalShare += w.share(tier)
	}
	if totalShare == 0 {
		return out
	}

	// Ideal fractional count per type, then floor and hand out the remaining
	// sends to the largest fractional parts. Ties break on content type so
	// the result is deterministic.
	type slice struct {
		contentType string
		tier        domain.PerformanceTier
		ideal       float64
	}
	var slices []slice
	for tier, types := range byTier {
		perType := float64(weeklyBudget) * w.share(tier) / totalShare / float64(len(types))
		for _, ct := range types {
			slices = append(slices, slice{contentType: ct, tier: tier, ideal: perType})
		}
	}

	assigned := 0
	for i := range slices {
		n := int(math.Floor(slices[i].ideal))
		out[slices[i].contentType] = n
		assigned += n
	}

	sort.Slice(slices, func(i, j int) bool {
		fi := slices[i].ideal - math.Floor(slices[i].ideal)
		fj := slices[j].ideal - math.Floor(slices[j].ideal)
		if fi != fj {
			return fi > fj
		}
		return slices[i].contentType < slices[j].contentType
	})

	for i := 0; assigned < weeklyBudget && len(slices) > 0; i = (i + 1) % len(slices) {
		out[slices[i].contentType]++
		assigned++
	}

	return out
}

func (w *Weighter) share(tier domain.PerformanceTier) float64 {
	switch tier {
	case domain.PerformanceTierTop:
		return w.tuning.TopShare
	case domain.PerformanceTierMid:
		return w.tuning.MidShare
	case domain.PerformanceTierLow:
		return w.tuning.LowShare
	default:
		return 0
	}
}
