// Package captions checks that the creative asset pool can support a
// recommended allocation.
package captions

import (
	"context"
	"fmt"
	"sort"
	"time"

	"creator-volume-lab/internal/config"
	"creator-volume-lab/internal/storage"
)

// Validator inspects the caption pool and reports shortfalls. It never
// changes volumes; running low on captions is an operator problem, not a
// reason to send less.
type Validator struct {
	store  storage.CaptionAssetStore
	tuning config.CaptionTuning
}

// NewValidator creates a new caption-pool validator.
func NewValidator(store storage.CaptionAssetStore, tuning config.CaptionTuning) *Validator {
	return &Validator{store: store, tuning: tuning}
}

// Validate returns one warning per content type that received a positive
// allocation but has fewer usable captions than the configured minimum.
// Usable means rested (unused for at least the freshness window, or never
// used) and scoring at or above the performance floor. Warnings are sorted
// by content type.
func (v *Validator) Validate(ctx context.Context, creatorID string, allocations map[string]int, now time.Time) ([]string, error) {
	counts, err := v.store.CountUsable(ctx, creatorID, now, v.tuning.FreshnessDays, v.tuning.MinPerformance)
	if err != nil {
		return nil, fmt.Errorf("count usable captions: %w", err)
	}

	var warnings []string
	for contentType, allocated := range allocations {
		if allocated <= 0 {
			continue
		}
		if usable := counts[contentType]; usable < v.tuning.MinUsablePerType {
			warnings = append(warnings, fmt.Sprintf(
				"content type %q has %d usable captions, need at least %d for %d allocated sends",
				contentType, usable, v.tuning.MinUsablePerType, allocated))
		}
	}

	sort.Strings(warnings)
	return warnings, nil
}
