// Package tier maps audience size to a baseline category-volume configuration.
package tier

import (
	"creator-volume-lab/internal/config"
	"creator-volume-lab/internal/domain"
)

// Classifier buckets creators by fan count. Pure lookup, no failure modes.
type Classifier struct {
	tables config.TierTables
}

// NewClassifier creates a new tier classifier.
func NewClassifier(tables config.TierTables) *Classifier {
	return &Classifier{tables: tables}
}

// TierFor returns the audience-size bucket for a fan count.
func (c *Classifier) TierFor(fanCount int) domain.Tier {
	switch {
	case fanCount >= c.tables.UltraThreshold:
		return domain.TierUltra
	case fanCount >= c.tables.HighThreshold:
		return domain.TierHigh
	case fanCount >= c.tables.MidThreshold:
		return domain.TierMid
	default:
		return domain.TierLow
	}
}

// Classify returns the baseline volume config for a creator. Retention is
// forced to zero for free pages regardless of tier.
func (c *Classifier) Classify(fanCount int, pageType domain.PageType) domain.VolumeConfig {
	t := c.TierFor(fanCount)
	v := c.tables.Volumes(t)

	cfg := domain.VolumeConfig{
		Tier:             t,
		RevenuePerDay:    v.RevenuePerDay,
		EngagementPerDay: v.EngagementPerDay,
		RetentionPerDay:  v.RetentionPerDay,
	}
	if pageType == domain.PageTypeFree {
		cfg.RetentionPerDay = 0
	}
	return cfg
}
