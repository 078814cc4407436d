package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when a caller-supplied context fails validation.
// It is the only error class the pipeline surfaces to callers.
var ErrInvalidInput = errors.New("invalid input")

// PerformanceContext is the immutable per-request input to the pipeline,
// constructed fresh from the creator profile or caller-supplied defaults.
type PerformanceContext struct {
	FanCount         int
	PageType         PageType
	SaturationScore  float64 // 0-100, higher means audience fatigue
	OpportunityScore float64 // 0-100, higher means growth headroom
	RevenueTrend     float64
	MessageCount     int
}

// Validate checks the context before stage 1 runs. A validation failure is
// fatal; everything downstream is recoverable.
func (p PerformanceContext) Validate() error {
	if p.FanCount < 0 {
		return fmt.Errorf("%w: fan_count must be >= 0, got %d", ErrInvalidInput, p.FanCount)
	}
	if !p.PageType.Valid() {
		return fmt.Errorf("%w: unknown page_type %q", ErrInvalidInput, p.PageType)
	}
	if p.SaturationScore < 0 || p.SaturationScore > 100 {
		return fmt.Errorf("%w: saturation_score must be in [0,100], got %v", ErrInvalidInput, p.SaturationScore)
	}
	if p.OpportunityScore < 0 || p.OpportunityScore > 100 {
		return fmt.Errorf("%w: opportunity_score must be in [0,100], got %v", ErrInvalidInput, p.OpportunityScore)
	}
	if p.MessageCount < 0 {
		return fmt.Errorf("%w: message_count must be >= 0, got %d", ErrInvalidInput, p.MessageCount)
	}
	return nil
}

// NeutralContext returns a context with neutral 50/50 scores for creators
// with no stored history.
func NeutralContext(fanCount int, pageType PageType) PerformanceContext {
	return PerformanceContext{
		FanCount:         fanCount,
		PageType:         pageType,
		SaturationScore:  50,
		OpportunityScore: 50,
	}
}

// Horizon identifies a lookback window for horizon scores.
type Horizon string

const (
	Horizon7d  Horizon = "7d"
	Horizon14d Horizon = "14d"
	Horizon30d Horizon = "30d"
)

// HorizonScore holds saturation/opportunity scores observed over one
// lookback window. Absent windows are omitted from fusion, never zero-filled.
type HorizonScore struct {
	CreatorID        string
	Horizon          Horizon
	SaturationScore  float64
	OpportunityScore float64
	MessageCount     int
	ComputedAt       int64 // unix ms
}
