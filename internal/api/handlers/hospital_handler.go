package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/urgences-proches/backend/internal/adapters/providers/geolocation"
	"github.com/urgences-proches/backend/internal/application/services"
	"github.com/urgences-proches/backend/internal/domain/entities"
	"github.com/urgences-proches/backend/internal/domain/providers"
	"github.com/urgences-proches/backend/internal/infrastructure/observability"
)

// HospitalSearcher answers nearby and single hospital lookups
type HospitalSearcher interface {
	Nearby(ctx context.Context, query services.NearbyQuery) (*entities.NearbyResult, error)
	Get(ctx context.Context, id string, center *entities.Location, requested []string) (*entities.EnrichedHospital, error)
}

// HospitalHandler handles hospital search HTTP requests
type HospitalHandler struct {
	searcher HospitalSearcher
	geocoder geolocation.Geocoder
}

// NewHospitalHandler creates a new hospital handler. geocoder may be nil,
// in which case the address parameter is ignored.
func NewHospitalHandler(searcher HospitalSearcher, geocoder geolocation.Geocoder) *HospitalHandler {
	return &HospitalHandler{
		searcher: searcher,
		geocoder: geocoder,
	}
}

type positionResponse struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Fallback  bool    `json:"fallback"`
}

type nearbyResponse struct {
	Hospitals     []*entities.EnrichedHospital `json:"hospitals"`
	RecommendedID *string                      `json:"recommendedId"`
	Count         int                          `json:"count"`
	Position      positionResponse             `json:"position"`
	Notice        string                       `json:"notice,omitempty"`
}

// Nearby handles GET /api/hospitals/nearby
func (h *HospitalHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	maxKm, err := queryFloat(r, "max_km")
	if err != nil {
		respondWithAppError(ctx, w, err)
		return
	}

	position, err := h.positionProvider(r)
	if err != nil {
		respondWithAppError(ctx, w, err)
		return
	}

	result, err := h.searcher.Nearby(ctx, services.NearbyQuery{
		Position: position,
		Filter: services.HospitalFilter{
			Query:           r.URL.Query().Get("q"),
			Specifications:  queryList(r, "specification"),
			Specializations: queryList(r, "specialization"),
			MaxDistanceKm:   maxKm,
		},
	})
	if err != nil {
		respondWithAppError(ctx, w, err)
		return
	}

	// The client went away while we were enriching: drop the stale answer.
	if ctx.Err() != nil {
		observability.LoggerFromContext(ctx).Debug().Err(ctx.Err()).Msg("discarding nearby result of cancelled request")
		return
	}

	respondWithJSON(r.Context(), w, http.StatusOK, nearbyResponse{
		Hospitals:     result.Hospitals,
		RecommendedID: result.RecommendedID,
		Count:         result.Count,
		Position: positionResponse{
			Latitude:  result.Position.Location.Latitude,
			Longitude: result.Position.Location.Longitude,
			Fallback:  result.Position.Fallback,
		},
		Notice: result.Position.Notice,
	})
}

// GetHospital handles GET /api/hospitals/{id}
func (h *HospitalHandler) GetHospital(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		respondWithError(r.Context(), w, http.StatusBadRequest, "hospital ID is required")
		return
	}

	center, err := queryLocation(r)
	if err != nil {
		respondWithAppError(ctx, w, err)
		return
	}

	hospital, err := h.searcher.Get(ctx, id, center, queryList(r, "specialization"))
	if err != nil {
		respondWithAppError(ctx, w, err)
		return
	}

	respondWithJSON(r.Context(), w, http.StatusOK, hospital)
}

// positionProvider picks how the user is located: explicit coordinates or a
// reported geolocation failure first, then a geocoded address. nil means the
// default position.
func (h *HospitalHandler) positionProvider(r *http.Request) (providers.PositionProvider, error) {
	q := r.URL.Query()

	if geoErr := strings.TrimSpace(q.Get("geo_error")); geoErr != "" {
		return geolocation.QueryPositionProvider{GeoError: geoErr}, nil
	}

	lat, err := queryFloat(r, "lat")
	if err != nil {
		return nil, err
	}
	lon, err := queryFloat(r, "lon")
	if err != nil {
		return nil, err
	}
	if lat != nil || lon != nil {
		return geolocation.QueryPositionProvider{Latitude: lat, Longitude: lon}, nil
	}

	if address := strings.TrimSpace(q.Get("address")); address != "" && h.geocoder != nil {
		return geolocation.NewAddressPositionProvider(h.geocoder, address), nil
	}
	return nil, nil
}
