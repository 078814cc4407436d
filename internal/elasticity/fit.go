// Package elasticity detects diminishing marginal returns on revenue sends
// and caps volume where extra sends stop paying for themselves.
package elasticity

import (
	"math"

	"creator-volume-lab/internal/domain"
)

// FitProfile fits revenue_per_send ≈ A·e^(−B·volume) to historical samples
// by least squares on the log-linear form ln(rps) = ln(A) − B·volume.
// Samples with non-positive revenue per send are excluded from the fit.
// The profile is reliable only when at least minDistinctVolumes distinct
// volume levels were observed and the fitted decay is positive.
func FitProfile(samples []domain.ElasticitySample, minDistinctVolumes int) domain.ElasticityProfile {
	profile := domain.ElasticityProfile{Samples: samples}

	var fit []domain.ElasticitySample
	volumes := make(map[int]struct{})
	for _, s := range samples {
		if s.RevenuePerSend <= 0 || s.Volume <= 0 {
			continue
		}
		fit = append(fit, s)
		volumes[s.Volume] = struct{}{}
	}

	if len(volumes) < minDistinctVolumes {
		return profile
	}

	// Least squares on (x, y) = (volume, ln(rps)): y = c0 + c1·x,
	// then A = e^c0, B = −c1.
	n := float64(len(fit))
	var sumX, sumY, sumXY, sumXX float64
	for _, s := range fit {
		x := float64(s.Volume)
		y := math.Log(s.RevenuePerSend)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return profile
	}

	c1 := (n*sumXY - sumX*sumY) / denom
	c0 := (sumY - c1*sumX) / n

	profile.A = math.Exp(c0)
	profile.B = -c1
	// A non-positive decay means revenue per send is flat or rising with
	// volume; there is nothing to cap.
	profile.Reliable = profile.B > 0

	return profile
}

// AveragePerSend returns the observed mean revenue per send across samples.
func AveragePerSend(samples []domain.ElasticitySample) float64 {
	var sum float64
	var n int
	for _, s := range samples {
		if s.RevenuePerSend <= 0 {
			continue
		}
		sum += s.RevenuePerSend
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
