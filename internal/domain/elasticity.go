package domain

import "math"

// ElasticitySample is one historical (volume, revenue per send) observation.
type ElasticitySample struct {
	CreatorID      string
	Volume         int     // revenue sends per day
	RevenuePerSend float64
	ObservedAt     int64 // unix ms
}

// ElasticityProfile is the fitted diminishing-returns model
// revenue_per_send ≈ A·e^(−B·volume).
type ElasticityProfile struct {
	Samples  []ElasticitySample
	A        float64
	B        float64
	Reliable bool // requires >= 3 distinct volume levels and positive decay
}

// Revenue returns the modeled total revenue at the given daily volume.
func (p ElasticityProfile) Revenue(volume int) float64 {
	if volume <= 0 {
		return 0
	}
	return float64(volume) * p.PerSend(volume)
}

// PerSend returns the modeled revenue per send at the given daily volume.
func (p ElasticityProfile) PerSend(volume int) float64 {
	return p.A * math.Exp(-p.B*float64(volume))
}

// MarginalRevenue returns the modeled revenue gained by the volume-th send.
func (p ElasticityProfile) MarginalRevenue(volume int) float64 {
	if volume <= 0 {
		return 0
	}
	return p.Revenue(volume) - p.Revenue(volume-1)
}
