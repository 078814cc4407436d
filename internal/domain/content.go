package domain

// PerformanceTier ranks a content type by historical performance.
type PerformanceTier string

const (
	PerformanceTierTop   PerformanceTier = "TOP"
	PerformanceTierMid   PerformanceTier = "MID"
	PerformanceTierLow   PerformanceTier = "LOW"
	PerformanceTierAvoid PerformanceTier = "AVOID"
)

// ContentRanking is the stored historical rank of one content type for a creator.
type ContentRanking struct {
	CreatorID   string
	ContentType string
	Tier        PerformanceTier
	AvgRevenue  float64 // average revenue per send of this type
	SampleCount int
}

// ContentAllocation assigns part of the weekly revenue budget to a content type.
type ContentAllocation struct {
	ContentType    string
	AllocatedCount int
	Tier           PerformanceTier
}

// CaptionAsset is one reusable creative asset in the caption pool.
type CaptionAsset struct {
	CaptionID        string
	CreatorID        string
	ContentType      string
	PerformanceScore float64
	LastUsedAt       int64 // unix ms, 0 if never used
	CreatedAt        int64 // unix ms
}
