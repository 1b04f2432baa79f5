package services

import (
	"sort"

	"github.com/urgences-proches/backend/internal/domain/entities"
)

// RankedHospitals is the output of the recommendation ranker
type RankedHospitals struct {
	Sorted        []*entities.EnrichedHospital
	RecommendedID *string
}

// RecommendationService ranks enriched hospitals by composite score
type RecommendationService struct{}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService() *RecommendationService {
	return &RecommendationService{}
}

// Breakdown computes the four scores and the composite of h
func (s *RecommendationService) Breakdown(h *entities.EnrichedHospital, requested []string, trafficLevel *float64) entities.ScoreBreakdown {
	b := entities.ScoreBreakdown{
		Distance:      DistanceScore(h.DistanceMeters),
		Traffic:       TrafficScore(trafficLevel),
		Specialty:     SpecialtyScore(h.Specialties(), requested),
		Accessibility: AccessibilityScore(h.Accessibility()),
	}
	b.Composite = CompositeScore(b.Distance, b.Traffic, b.Specialty, b.Accessibility)
	return b
}

// CompositeScore returns the 0-100 recommendation score of h
func (s *RecommendationService) CompositeScore(h *entities.EnrichedHospital, requested []string, trafficLevel *float64) int {
	return s.Breakdown(h, requested, trafficLevel).Composite
}

// Sort orders hospitals by descending composite score. Ties keep their input order.
// trafficByID may be nil. The input slice and its elements are left untouched;
// the returned hospitals are scored copies.
func (s *RecommendationService) Sort(hospitals []*entities.EnrichedHospital, requested []string, trafficByID map[string]float64) RankedHospitals {
	if len(hospitals) == 0 {
		return RankedHospitals{Sorted: []*entities.EnrichedHospital{}}
	}

	scored := make([]*entities.EnrichedHospital, 0, len(hospitals))
	for _, h := range hospitals {
		if h == nil {
			continue
		}
		c := *h
		if level, ok := trafficByID[h.ID]; ok {
			c.TrafficLevel = &level
		} else {
			c.TrafficLevel = nil
		}
		b := s.Breakdown(&c, requested, c.TrafficLevel)
		c.Score = &b
		scored = append(scored, &c)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score.Composite > scored[j].Score.Composite
	})

	ranked := RankedHospitals{Sorted: scored}
	if len(scored) > 0 {
		id := scored[0].ID
		ranked.RecommendedID = &id
	}
	return ranked
}
