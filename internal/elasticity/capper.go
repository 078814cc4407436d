package elasticity

import (
	"creator-volume-lab/internal/config"
	"creator-volume-lab/internal/domain"
)

// Skip reasons recorded in the audit trail when the capper is a no-op.
const (
	SkipReasonNoSamples    = "elasticity_skipped_no_samples"
	SkipReasonUnreliable   = "elasticity_skipped_insufficient_volume_levels"
)

// Outcome is the capper's tagged result.
type Outcome struct {
	Capped    bool
	CapVolume int // revenue sends per day after capping, valid when Capped

	Profile domain.ElasticityProfile

	Skipped    bool
	SkipReason string
}

// Capper bounds the revenue category where marginal revenue collapses.
type Capper struct {
	tuning config.ElasticityTuning
}

// NewCapper creates a new elasticity capper.
func NewCapper(tuning config.ElasticityTuning) *Capper {
	return &Capper{tuning: tuning}
}

// Apply fits a decay profile and, when reliable, caps the revenue category
// at the last volume whose marginal revenue stays at or above the configured
// fraction of the observed average revenue per send. With insufficient data
// the stage is a no-op and the config passes through unchanged.
func (c *Capper) Apply(cfg domain.VolumeConfig, samples []domain.ElasticitySample) (domain.VolumeConfig, Outcome) {
	if len(samples) == 0 {
		return cfg, Outcome{Skipped: true, SkipReason: SkipReasonNoSamples}
	}

	profile := FitProfile(samples, c.tuning.MinDistinctVolumes)
	if !profile.Reliable {
		return cfg, Outcome{Profile: profile, Skipped: true, SkipReason: SkipReasonUnreliable}
	}

	threshold := c.tuning.MarginalFloorFrac * AveragePerSend(samples)

	// Walk volumes up to the candidate; the cap is the last volume whose
	// marginal revenue clears the threshold.
	capVolume := cfg.RevenuePerDay
	for v := 1; v <= cfg.RevenuePerDay; v++ {
		if profile.MarginalRevenue(v) < threshold {
			capVolume = v - 1
			break
		}
	}
	if capVolume < 1 {
		capVolume = 1
	}

	if capVolume >= cfg.RevenuePerDay {
		return cfg, Outcome{Profile: profile}
	}

	capped := cfg
	capped.RevenuePerDay = capVolume
	return capped, Outcome{Capped: true, CapVolume: capVolume, Profile: profile}
}
