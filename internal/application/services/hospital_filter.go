package services

import (
	"fmt"
	"strings"

	"github.com/urgences-proches/backend/internal/domain/entities"
	apperrors "github.com/urgences-proches/backend/pkg/errors"
)

// HospitalFilter narrows a list of enriched hospitals. Every set criterion must hold.
type HospitalFilter struct {
	// Query is a case-insensitive substring of the hospital name
	Query string
	// Specifications are service or accessibility keys, see entities.SpecificationKeys
	Specifications []string
	// Specializations are specialty keys, see entities.SpecialtyKeys
	Specializations []string
	// MaxDistanceKm excludes hospitals farther away or with an unknown distance
	MaxDistanceKm *float64
}

// Validate rejects unknown keys and a negative distance
func (f HospitalFilter) Validate() error {
	for _, key := range f.Specifications {
		if !entities.IsSpecificationKey(key) {
			return apperrors.NewValidationError(fmt.Sprintf("unknown specification %q", key))
		}
	}
	for _, key := range f.Specializations {
		if !entities.IsSpecialtyKey(key) {
			return apperrors.NewValidationError(fmt.Sprintf("unknown specialization %q", key))
		}
	}
	if f.MaxDistanceKm != nil && *f.MaxDistanceKm < 0 {
		return apperrors.NewValidationError("max_km must not be negative")
	}
	return nil
}

// Apply returns the hospitals passing every criterion, in input order
func (f HospitalFilter) Apply(hospitals []*entities.EnrichedHospital) []*entities.EnrichedHospital {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]*entities.EnrichedHospital, 0, len(hospitals))
	for _, h := range hospitals {
		if query != "" && !strings.Contains(strings.ToLower(h.Name), query) {
			continue
		}
		if !f.hasSpecifications(h) || !f.hasSpecializations(h) || !f.withinDistance(h) {
			continue
		}
		out = append(out, h)
	}
	return out
}

func (f HospitalFilter) hasSpecifications(h *entities.EnrichedHospital) bool {
	access := h.Accessibility()
	for _, key := range f.Specifications {
		var ok bool
		switch key {
		case entities.SpecFireFighter:
			ok = h.Supplemental != nil && h.Supplemental.FireFighter
		case entities.SpecSocialWorker:
			ok = h.Supplemental != nil && h.Supplemental.SocialWorker
		case entities.SpecWheelchairAccessibleEntrance:
			ok = access != nil && access.WheelchairAccessibleEntrance
		case entities.SpecWheelchairAccessibleParking:
			ok = access != nil && access.WheelchairAccessibleParking
		case entities.SpecWheelchairAccessibleRestroom:
			ok = access != nil && access.WheelchairAccessibleRestroom
		case entities.SpecWheelchairAccessibleSeating:
			ok = access != nil && access.WheelchairAccessibleSeating
		}
		if !ok {
			return false
		}
	}
	return true
}

func (f HospitalFilter) hasSpecializations(h *entities.EnrichedHospital) bool {
	if len(f.Specializations) == 0 {
		return true
	}
	flags := h.Specialties()
	if flags == nil {
		return false
	}
	for _, key := range f.Specializations {
		if !flags.Has(key) {
			return false
		}
	}
	return true
}

func (f HospitalFilter) withinDistance(h *entities.EnrichedHospital) bool {
	if f.MaxDistanceKm == nil {
		return true
	}
	km, ok := h.DistanceKm()
	return ok && km <= *f.MaxDistanceKm
}
