package domain

import "time"

// PageType distinguishes paid subscription pages from free pages.
type PageType string

const (
	PageTypePaid PageType = "paid"
	PageTypeFree PageType = "free"
)

// Valid reports whether the page type is one of the known values.
func (p PageType) Valid() bool {
	return p == PageTypePaid || p == PageTypeFree
}

// CreatorProfile holds the per-creator reference data the facade resolves
// before invoking the pipeline.
type CreatorProfile struct {
	CreatorID        string
	FanCount         int
	PageType         PageType
	SaturationScore  float64 // best-available current score, 0-100
	OpportunityScore float64 // best-available current score, 0-100
	RevenueTrend     float64 // percent change in revenue over the recent window
	MessageCount     int     // historical sends observed for this creator
	UpdatedAt        time.Time
}
