package services

import (
	"math"

	"github.com/urgences-proches/backend/internal/domain/entities"
)

// Weights of the composite recommendation score, summing to 100
const (
	WeightDistance      = 35
	WeightTraffic       = 20
	WeightSpecialty     = 25
	WeightAccessibility = 20
)

// Neutral scores used when a signal is missing
const (
	neutralDistanceScore      = 50
	neutralTrafficScore       = 70
	neutralAccessibilityScore = 50
)

// DistanceScore favours closer hospitals: 100 up to 2 km, then a linear
// decay floored at 0. A missing or NaN distance is neutral.
func DistanceScore(distMeters *float64) float64 {
	if distMeters == nil || math.IsNaN(*distMeters) {
		return neutralDistanceScore
	}
	km := *distMeters / 1000
	switch {
	case km <= 2:
		return 100
	case km <= 5:
		return 100 - (km-2)*15
	default:
		return math.Max(0, 55-(km-5)*3)
	}
}

// TrafficScore favours less crowded hospitals. level is a 0-100 congestion level;
// a NaN level counts as missing.
func TrafficScore(level *float64) float64 {
	if level == nil || math.IsNaN(*level) {
		return neutralTrafficScore
	}
	return clampScore(math.Round(100 - *level))
}

// SpecialtyScore is the share of requested specialties the hospital offers.
// Nothing requested is a perfect score; no flag set or no match is 0.
func SpecialtyScore(flags *entities.Specialties, requested []string) float64 {
	if len(requested) == 0 {
		return 100
	}
	if flags == nil {
		return 0
	}
	matched := 0
	for _, key := range requested {
		if flags.Has(key) {
			matched++
		}
	}
	if matched == 0 {
		return 0
	}
	return math.Round(100 * float64(matched) / float64(len(requested)))
}

// AccessibilityScore rewards wheelchair accessibility: 30 plus 17.5 per option.
// The result stays fractional until the composite is rounded.
func AccessibilityScore(opts *entities.AccessibilityOptions) float64 {
	if opts == nil {
		return neutralAccessibilityScore
	}
	count := opts.Count()
	if count == 0 {
		return 30
	}
	return 30 + float64(count)*17.5
}

// CompositeScore is the weighted average of the four scores, rounded and kept in [0,100]
func CompositeScore(distance, traffic, specialty, accessibility float64) int {
	total := distance*WeightDistance +
		traffic*WeightTraffic +
		specialty*WeightSpecialty +
		accessibility*WeightAccessibility
	return int(math.Round(clampScore(total / 100)))
}

// clampScore bounds v to [0,100]; NaN becomes 0
func clampScore(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
