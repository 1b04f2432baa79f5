package services

import (
	"context"

	"github.com/urgences-proches/backend/internal/domain/entities"
	"github.com/urgences-proches/backend/internal/domain/providers"
	"github.com/urgences-proches/backend/internal/infrastructure/observability"
	"go.opentelemetry.io/otel/attribute"
)

// NearbyQuery is a nearby hospital search
type NearbyQuery struct {
	// Position locates the user; nil uses the default position
	Position providers.PositionProvider
	Filter   HospitalFilter
}

// HospitalSearchService answers hospital searches: position, join, traffic, filter and rank
type HospitalSearchService struct {
	directory providers.DirectoryProvider
	pipeline  *EnrichmentPipeline
	traffic   *TrafficService
	positions *PositionService
	ranker    *RecommendationService
}

// NewHospitalSearchService creates a new hospital search service. traffic may be nil.
func NewHospitalSearchService(
	directory providers.DirectoryProvider,
	pipeline *EnrichmentPipeline,
	traffic *TrafficService,
	positions *PositionService,
	ranker *RecommendationService,
) *HospitalSearchService {
	return &HospitalSearchService{
		directory: directory,
		pipeline:  pipeline,
		traffic:   traffic,
		positions: positions,
		ranker:    ranker,
	}
}

// Nearby returns the ranked hospitals around the user's position.
// Only validation and configuration errors are returned.
func (s *HospitalSearchService) Nearby(ctx context.Context, query NearbyQuery) (*entities.NearbyResult, error) {
	ctx, span := observability.StartSpan(ctx, "HospitalSearchService.Nearby")
	defer span.End()

	if err := query.Filter.Validate(); err != nil {
		return nil, err
	}

	position := s.positions.Resolve(ctx, query.Position)

	hospitals, err := s.pipeline.Run(ctx, position.Location)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	levels := s.traffic.LevelsFor(ctx, hospitals)
	filtered := query.Filter.Apply(hospitals)
	ranked := s.ranker.Sort(filtered, query.Filter.Specializations, levels)

	observability.SetSpanAttributes(span,
		attribute.Int("hospital.fetched", len(hospitals)),
		attribute.Int("hospital.returned", len(ranked.Sorted)),
		attribute.Bool("position.fallback", position.Fallback),
	)

	return &entities.NearbyResult{
		Hospitals:     ranked.Sorted,
		RecommendedID: ranked.RecommendedID,
		Count:         len(ranked.Sorted),
		Position:      position,
	}, nil
}

// Get returns a single enriched and scored hospital. center is optional.
func (s *HospitalSearchService) Get(ctx context.Context, id string, center *entities.Location, requested []string) (*entities.EnrichedHospital, error) {
	ctx, span := observability.StartSpan(ctx, "HospitalSearchService.Get")
	defer span.End()

	record, err := s.directory.GetByID(ctx, id)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	h, err := s.pipeline.Enrich(ctx, record, center)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	levels := s.traffic.LevelsFor(ctx, []*entities.EnrichedHospital{h})
	ranked := s.ranker.Sort([]*entities.EnrichedHospital{h}, requested, levels)
	return ranked.Sorted[0], nil
}
