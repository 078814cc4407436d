package signal

import "creator-volume-lab/internal/config"

// Confidence scores how trustworthy the historical signal is from the
// creator's message count: a step function with a linear ramp in the middle.
func Confidence(messageCount int, steps config.ConfidenceSteps) float64 {
	switch {
	case messageCount < steps.FloorBelow:
		return steps.FloorScore
	case messageCount < steps.RampTop:
		// Linear from FloorScore at FloorBelow up to RampTopScore just
		// below RampTop.
		span := float64(steps.RampTop - steps.FloorBelow)
		frac := float64(messageCount-steps.FloorBelow) / span
		return steps.FloorScore + (steps.RampTopScore-steps.FloorScore)*frac
	case messageCount < steps.MidBelow:
		return steps.MidScore
	default:
		return 1.0
	}
}

// Dampen interpolates a multiplier back toward 1.0 by factor
// (1 − confidence): low-confidence signals are progressively ignored.
func Dampen(mult, confidence float64) float64 {
	return 1.0 + (mult-1.0)*confidence
}

// DampenMultipliers applies Dampen to every multiplier when confidence is
// below the configured threshold. Returns the input unchanged otherwise.
func DampenMultipliers(m Multipliers, confidence float64, steps config.ConfidenceSteps) Multipliers {
	if confidence >= steps.DampenBelow {
		return m
	}
	out := Multipliers{
		Saturation:  Dampen(m.Saturation, confidence),
		Opportunity: Dampen(m.Opportunity, confidence),
		Dampened:    true,
	}
	out.Combined = out.Saturation * out.Opportunity
	return out
}
