package services

import (
	"context"
	"sync"
	"time"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/urgences-proches/backend/internal/domain/entities"
	"github.com/urgences-proches/backend/internal/domain/providers"
	"github.com/urgences-proches/backend/internal/infrastructure/observability"
	apperrors "github.com/urgences-proches/backend/pkg/errors"
	"github.com/urgences-proches/backend/pkg/utils"
	"go.opentelemetry.io/otel/attribute"
)

const (
	stageSupplemental = "supplemental"
	stagePlace        = "place"

	outcomeMatched = "matched"
	outcomeAbsent  = "absent"
	outcomeClaimed = "claimed"
	outcomeSkipped = "skipped"
	outcomeFailed  = "failed"
)

// EnrichmentPipeline joins directory records with the supplemental dataset and
// place details. Lookups for different records run concurrently; a failed
// lookup leaves its field empty and never drops the record.
type EnrichmentPipeline struct {
	directory    providers.DirectoryProvider
	supplemental providers.SupplementalProvider
	places       providers.PlacesProvider
	radiusMeters int
	metrics      *observability.Metrics
	batchWait    time.Duration
}

// NewEnrichmentPipeline creates a new pipeline. metrics may be nil.
func NewEnrichmentPipeline(
	directory providers.DirectoryProvider,
	supplemental providers.SupplementalProvider,
	places providers.PlacesProvider,
	radiusMeters int,
	metrics *observability.Metrics,
) *EnrichmentPipeline {
	return &EnrichmentPipeline{
		directory:    directory,
		supplemental: supplemental,
		places:       places,
		radiusMeters: radiusMeters,
		metrics:      metrics,
		batchWait:    2 * time.Millisecond,
	}
}

// Run returns the enriched hospitals around center in directory order.
// A directory failure yields an empty result; only configuration errors are returned.
func (p *EnrichmentPipeline) Run(ctx context.Context, center entities.Location) ([]*entities.EnrichedHospital, error) {
	ctx, span := observability.StartSpan(ctx, "EnrichmentPipeline.Run")
	defer span.End()
	logger := observability.LoggerFromContext(ctx)

	records, err := p.directory.Nearby(ctx, center, p.radiusMeters)
	if err != nil {
		observability.RecordError(span, err)
		if apperrors.IsType(err, apperrors.ErrorTypeConfiguration) {
			return nil, err
		}
		logger.Warn().Err(err).Msg("directory lookup failed, returning no hospitals")
		return []*entities.EnrichedHospital{}, nil
	}
	observability.SetSpanAttributes(span, attribute.Int("hospital.count", len(records)))

	hospitals, err := p.enrichAll(ctx, records, &center)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	return hospitals, nil
}

// Enrich joins a single directory record. center is optional and only used
// to backfill a missing distance.
func (p *EnrichmentPipeline) Enrich(ctx context.Context, record *entities.HospitalRecord, center *entities.Location) (*entities.EnrichedHospital, error) {
	ctx, span := observability.StartSpan(ctx, "EnrichmentPipeline.Enrich")
	defer span.End()

	hospitals, err := p.enrichAll(ctx, []*entities.HospitalRecord{record}, center)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	return hospitals[0], nil
}

func (p *EnrichmentPipeline) enrichAll(ctx context.Context, records []*entities.HospitalRecord, center *entities.Location) ([]*entities.EnrichedHospital, error) {
	hospitals := make([]*entities.EnrichedHospital, len(records))
	for i, rec := range records {
		hospitals[i] = &entities.EnrichedHospital{HospitalRecord: *rec}
		if center != nil {
			backfillDistance(&hospitals[i].HospitalRecord, *center)
		}
	}

	if err := p.matchSupplemental(ctx, hospitals); err != nil {
		return nil, err
	}
	p.releaseDuplicateClaims(ctx, hospitals)
	if err := p.attachPlaces(ctx, hospitals); err != nil {
		return nil, err
	}
	return hospitals, nil
}

// matchSupplemental looks every hospital up in the supplemental dataset concurrently
func (p *EnrichmentPipeline) matchSupplemental(ctx context.Context, hospitals []*entities.EnrichedHospital) error {
	if p.supplemental == nil {
		return nil
	}
	logger := observability.LoggerFromContext(ctx)

	errs := make([]error, len(hospitals))
	var wg sync.WaitGroup
	for i, h := range hospitals {
		wg.Add(1)
		go func(i int, h *entities.EnrichedHospital) {
			defer wg.Done()

			rec, err := p.supplemental.FindByName(ctx, h.Name)
			switch {
			case err == nil:
				h.Supplemental = rec
				observability.RecordEnrichment(ctx, p.metrics, stageSupplemental, outcomeMatched)
			case apperrors.IsType(err, apperrors.ErrorTypeNotFound), apperrors.IsType(err, apperrors.ErrorTypeValidation):
				observability.RecordEnrichment(ctx, p.metrics, stageSupplemental, outcomeAbsent)
			case apperrors.IsType(err, apperrors.ErrorTypeConfiguration):
				errs[i] = err
			default:
				logger.Warn().Err(err).Str("hospital_id", h.ID).Msg("supplemental lookup failed")
				observability.RecordEnrichment(ctx, p.metrics, stageSupplemental, outcomeFailed)
			}
		}(i, h)
	}
	wg.Wait()

	return firstError(errs)
}

// releaseDuplicateClaims keeps each supplemental record on the earliest hospital
// in directory order that matched it
func (p *EnrichmentPipeline) releaseDuplicateClaims(ctx context.Context, hospitals []*entities.EnrichedHospital) {
	claimed := make(map[string]string, len(hospitals))
	for _, h := range hospitals {
		if h.Supplemental == nil {
			continue
		}
		key := utils.NormalizeName(h.Supplemental.Name) + "|" + h.Supplemental.PlaceID
		if owner, ok := claimed[key]; ok {
			observability.LoggerFromContext(ctx).Debug().
				Str("hospital_id", h.ID).
				Str("claimed_by", owner).
				Str("supplemental", h.Supplemental.Name).
				Msg("supplemental record already attached")
			observability.RecordEnrichment(ctx, p.metrics, stageSupplemental, outcomeClaimed)
			h.Supplemental = nil
			continue
		}
		claimed[key] = h.ID
	}
}

// attachPlaces fetches place details for hospitals whose supplemental record
// carries a usable place id. Identical ids are fetched once per run.
func (p *EnrichmentPipeline) attachPlaces(ctx context.Context, hospitals []*entities.EnrichedHospital) error {
	if p.places == nil {
		return nil
	}
	logger := observability.LoggerFromContext(ctx)
	loader := p.newPlaceLoader()

	errs := make([]error, len(hospitals))
	var wg sync.WaitGroup
	for i, h := range hospitals {
		if h.Supplemental == nil {
			continue
		}
		if !entities.HasUsablePlaceID(h.Supplemental.PlaceID) {
			observability.RecordEnrichment(ctx, p.metrics, stagePlace, outcomeSkipped)
			continue
		}

		wg.Add(1)
		go func(i int, h *entities.EnrichedHospital) {
			defer wg.Done()

			details, err := loader.Load(ctx, h.Supplemental.PlaceID)()
			switch {
			case err == nil:
				h.Place = details
				observability.RecordEnrichment(ctx, p.metrics, stagePlace, outcomeMatched)
			case apperrors.IsType(err, apperrors.ErrorTypeConfiguration):
				errs[i] = err
			default:
				logger.Warn().Err(err).Str("hospital_id", h.ID).Str("place_id", h.Supplemental.PlaceID).Msg("place details lookup failed")
				observability.RecordEnrichment(ctx, p.metrics, stagePlace, outcomeFailed)
			}
		}(i, h)
	}
	wg.Wait()

	return firstError(errs)
}

func (p *EnrichmentPipeline) newPlaceLoader() *dataloader.Loader[string, *entities.PlaceDetails] {
	return dataloader.NewBatchedLoader(func(ctx context.Context, keys []string) []*dataloader.Result[*entities.PlaceDetails] {
		results := make([]*dataloader.Result[*entities.PlaceDetails], len(keys))

		var wg sync.WaitGroup
		for i, key := range keys {
			wg.Add(1)
			go func(i int, key string) {
				defer wg.Done()
				details, err := p.places.GetPlaceDetails(ctx, key)
				results[i] = &dataloader.Result[*entities.PlaceDetails]{Data: details, Error: err}
			}(i, key)
		}
		wg.Wait()

		return results
	}, dataloader.WithWait[string, *entities.PlaceDetails](p.batchWait))
}

func backfillDistance(rec *entities.HospitalRecord, center entities.Location) {
	if rec.DistanceMeters != nil || rec.Location == nil {
		return
	}
	d := utils.HaversineMeters(center.Latitude, center.Longitude, rec.Location.Latitude, rec.Location.Longitude)
	rec.DistanceMeters = &d
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
