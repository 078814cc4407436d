package tier

import (
	"testing"

	"creator-volume-lab/internal/config"
	"creator-volume-lab/internal/domain"
)

func TestClassifier_TierBoundaries(t *testing.T) {
	c := NewClassifier(config.Default().Tiers)

	cases := []struct {
		fanCount int
		want     domain.Tier
	}{
		{0, domain.TierLow},
		{999, domain.TierLow},
		{1000, domain.TierMid},
		{4999, domain.TierMid},
		{5000, domain.TierHigh},
		{12434, domain.TierHigh},
		{14999, domain.TierHigh},
		{15000, domain.TierUltra},
		{1000000, domain.TierUltra},
	}

	for _, tc := range cases {
		if got := c.TierFor(tc.fanCount); got != tc.want {
			t.Errorf("TierFor(%d) = %s, want %s", tc.fanCount, got, tc.want)
		}
	}
}

func TestClassifier_BaselineVolumes(t *testing.T) {
	c := NewClassifier(config.Default().Tiers)

	cfg := c.Classify(12434, domain.PageTypePaid)
	if cfg.Tier != domain.TierHigh {
		t.Fatalf("Expected HIGH tier, got %s", cfg.Tier)
	}
	if cfg.RevenuePerDay != 5 || cfg.EngagementPerDay != 4 || cfg.RetentionPerDay != 2 {
		t.Errorf("Unexpected HIGH volumes: %d/%d/%d", cfg.RevenuePerDay, cfg.EngagementPerDay, cfg.RetentionPerDay)
	}
	if cfg.TotalPerDay() != 11 {
		t.Errorf("Expected total 11, got %d", cfg.TotalPerDay())
	}
}

func TestClassifier_FreePageZeroesRetention(t *testing.T) {
	c := NewClassifier(config.Default().Tiers)

	for _, fanCount := range []int{0, 1000, 5000, 20000} {
		cfg := c.Classify(fanCount, domain.PageTypeFree)
		if cfg.RetentionPerDay != 0 {
			t.Errorf("fan_count=%d: expected retention 0 for free page, got %d", fanCount, cfg.RetentionPerDay)
		}
	}

	// Paid pages keep the table value.
	if cfg := c.Classify(20000, domain.PageTypePaid); cfg.RetentionPerDay != 3 {
		t.Errorf("Expected ULTRA retention 3 for paid page, got %d", cfg.RetentionPerDay)
	}
}
