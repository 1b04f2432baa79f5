package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urgences-proches/backend/internal/domain/entities"
	apperrors "github.com/urgences-proches/backend/pkg/errors"
)

func filterFixture() []*entities.EnrichedHospital {
	necker := hospital("necker", f64(1200))
	necker.Name = "HOPITAL NECKER ENFANTS MALADES"
	necker.Supplemental = &entities.SupplementalRecord{
		Name:         "Necker",
		FireFighter:  true,
		SocialWorker: true,
		Specialties:  entities.Specialties{PediatricSurgeon: true, Neurosurgeon: true},
	}
	necker.Place = &entities.PlaceDetails{Accessibility: &entities.AccessibilityOptions{WheelchairAccessibleEntrance: true}}

	bichat := hospital("bichat", f64(6500))
	bichat.Name = "HOPITAL BICHAT"
	bichat.Supplemental = &entities.SupplementalRecord{
		Name:        "Bichat",
		Specialties: entities.Specialties{Cardiologist: true, Neurosurgeon: true},
	}

	unknown := hospital("unknown", nil)
	unknown.Name = "CENTRE SANS DONNEES"

	return []*entities.EnrichedHospital{necker, bichat, unknown}
}

func ids(hospitals []*entities.EnrichedHospital) []string {
	out := make([]string, 0, len(hospitals))
	for _, h := range hospitals {
		out = append(out, h.ID)
	}
	return out
}

func TestHospitalFilter_Empty(t *testing.T) {
	assert.Equal(t, []string{"necker", "bichat", "unknown"}, ids(HospitalFilter{}.Apply(filterFixture())))
}

func TestHospitalFilter_Query(t *testing.T) {
	assert.Equal(t, []string{"bichat"}, ids(HospitalFilter{Query: " bichat "}.Apply(filterFixture())))
	assert.Empty(t, HospitalFilter{Query: "cochin"}.Apply(filterFixture()))
}

func TestHospitalFilter_Specifications(t *testing.T) {
	f := HospitalFilter{Specifications: []string{entities.SpecFireFighter, entities.SpecWheelchairAccessibleEntrance}}
	assert.Equal(t, []string{"necker"}, ids(f.Apply(filterFixture())))

	f = HospitalFilter{Specifications: []string{entities.SpecWheelchairAccessibleParking}}
	assert.Empty(t, f.Apply(filterFixture()))
}

func TestHospitalFilter_Specializations(t *testing.T) {
	f := HospitalFilter{Specializations: []string{"neurosurgeon"}}
	assert.Equal(t, []string{"necker", "bichat"}, ids(f.Apply(filterFixture())))

	f = HospitalFilter{Specializations: []string{"neurosurgeon", "cardiologist"}}
	assert.Equal(t, []string{"bichat"}, ids(f.Apply(filterFixture())))
}

func TestHospitalFilter_MaxDistanceExcludesUnknown(t *testing.T) {
	f := HospitalFilter{MaxDistanceKm: f64(5)}
	assert.Equal(t, []string{"necker"}, ids(f.Apply(filterFixture())))

	f = HospitalFilter{MaxDistanceKm: f64(100)}
	assert.Equal(t, []string{"necker", "bichat"}, ids(f.Apply(filterFixture())))
}

func TestHospitalFilter_Validate(t *testing.T) {
	assert.NoError(t, HospitalFilter{
		Specifications:  []string{entities.SpecSocialWorker},
		Specializations: []string{"gasteroenterologist"},
	}.Validate())

	err := HospitalFilter{Specifications: []string{"helipad"}}.Validate()
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	err = HospitalFilter{Specializations: []string{"gastroenterologist"}}.Validate()
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	err = HospitalFilter{MaxDistanceKm: f64(-1)}.Validate()
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}
