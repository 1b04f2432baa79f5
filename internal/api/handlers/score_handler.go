package handlers

import (
	"fmt"
	"net/http"

	"github.com/urgences-proches/backend/internal/domain/entities"
	apperrors "github.com/urgences-proches/backend/pkg/errors"
)

// ScoreBreakdowner computes the score breakdown of a hospital
type ScoreBreakdowner interface {
	Breakdown(h *entities.EnrichedHospital, requested []string, trafficLevel *float64) entities.ScoreBreakdown
}

// ScoreHandler scores raw signals, for inspecting the ranking
type ScoreHandler struct {
	ranker ScoreBreakdowner
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(ranker ScoreBreakdowner) *ScoreHandler {
	return &ScoreHandler{ranker: ranker}
}

// Score handles GET /api/scores
//
//	distance        distance in meters, unknown when absent
//	traffic         congestion level 0-100, unknown when absent
//	specialization  requested specialty keys
//	specialties     specialty keys the hospital offers, no supplemental record when absent
//	accessibility   accessibility keys the place offers, no place details when absent
func (h *ScoreHandler) Score(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	distance, err := queryFloat(r, "distance")
	if err != nil {
		respondWithAppError(ctx, w, err)
		return
	}
	traffic, err := queryFloat(r, "traffic")
	if err != nil {
		respondWithAppError(ctx, w, err)
		return
	}

	hospital := &entities.EnrichedHospital{
		HospitalRecord: entities.HospitalRecord{DistanceMeters: distance},
	}

	if q.Has("specialties") {
		supplemental := &entities.SupplementalRecord{}
		for _, key := range queryList(r, "specialties") {
			if !supplemental.Specialties.Set(key, true) {
				respondWithAppError(ctx, w, apperrors.NewValidationError(fmt.Sprintf("unknown specialty %q", key)))
				return
			}
		}
		hospital.Supplemental = supplemental
	}

	if q.Has("accessibility") {
		opts := &entities.AccessibilityOptions{}
		for _, key := range queryList(r, "accessibility") {
			if !opts.Set(key, true) {
				respondWithAppError(ctx, w, apperrors.NewValidationError(fmt.Sprintf("unknown accessibility option %q", key)))
				return
			}
		}
		hospital.Place = &entities.PlaceDetails{Accessibility: opts}
	}

	requested := queryList(r, "specialization")
	for _, key := range requested {
		if !entities.IsSpecialtyKey(key) {
			respondWithAppError(ctx, w, apperrors.NewValidationError(fmt.Sprintf("unknown specialization %q", key)))
			return
		}
	}

	respondWithJSON(r.Context(), w, http.StatusOK, h.ranker.Breakdown(hospital, requested, traffic))
}
