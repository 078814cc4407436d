package domain

// Tier is the coarse audience-size bucket that selects the baseline volume.
type Tier string

const (
	TierLow   Tier = "LOW"
	TierMid   Tier = "MID"
	TierHigh  Tier = "HIGH"
	TierUltra Tier = "ULTRA"
)

// VolumeConfig is the per-category daily send volume for a creator.
// Instances are treated as immutable: every pipeline stage that changes
// volumes produces a new VolumeConfig so base and final can be compared.
type VolumeConfig struct {
	Tier             Tier `json:"tier"`
	RevenuePerDay    int  `json:"revenue_per_day"`
	EngagementPerDay int  `json:"engagement_per_day"`
	RetentionPerDay  int  `json:"retention_per_day"`
}

// TotalPerDay returns the summed daily volume across categories.
func (c VolumeConfig) TotalPerDay() int {
	return c.RevenuePerDay + c.EngagementPerDay + c.RetentionPerDay
}
