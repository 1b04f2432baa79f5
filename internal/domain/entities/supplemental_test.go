package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecialties_Has(t *testing.T) {
	s := &Specialties{Cardiologist: true, Gastroenterologist: true, PediatricSurgeon: true}

	assert.True(t, s.Has("cardiologist"))
	assert.True(t, s.Has("gasteroenterologist"))
	assert.True(t, s.Has("pediatric_surgeon"))
	assert.False(t, s.Has("neurosurgeon"))
	assert.False(t, s.Has("unknown"))

	var missing *Specialties
	assert.False(t, missing.Has("cardiologist"))
}

func TestSpecialtyKeys_AllResolvable(t *testing.T) {
	assert.Len(t, SpecialtyKeys, 17)

	// Every key must be wired to a field through the dataset's JSON layout
	for _, key := range SpecialtyKeys {
		var s Specialties
		require.NoError(t, json.Unmarshal([]byte(`{"`+key+`": true}`), &s))
		assert.True(t, s.Has(key), key)
		assert.True(t, IsSpecialtyKey(key))
	}
}

func TestHasUsablePlaceID(t *testing.T) {
	assert.True(t, HasUsablePlaceID("ChIJ2eUgeAK6j4ARbn5u_wAGqWA"))
	assert.False(t, HasUsablePlaceID(SentinelPlaceID))
	assert.False(t, HasUsablePlaceID(""))
	assert.False(t, HasUsablePlaceID("   "))
}

func TestSupplementalRecord_DecodesDatasetLayout(t *testing.T) {
	payload := `{"hospitals": [{
		"name": "Necker",
		"place_id": "real-id",
		"fire_fighter": true,
		"social_worker": false,
		"professionnal": {"pediatric_surgeon": true}
	}]}`

	var ds SupplementalDataset
	require.NoError(t, json.Unmarshal([]byte(payload), &ds))
	require.Len(t, ds.Hospitals, 1)

	rec := ds.Hospitals[0]
	assert.Equal(t, "Necker", rec.Name)
	assert.Equal(t, "real-id", rec.PlaceID)
	assert.True(t, rec.FireFighter)
	assert.True(t, rec.Specialties.PediatricSurgeon)
}

func TestSpecialties_SetMirrorsHas(t *testing.T) {
	for _, key := range SpecialtyKeys {
		var s Specialties
		require.True(t, s.Set(key, true), key)
		assert.True(t, s.Has(key), key)
	}

	var s Specialties
	assert.False(t, s.Set("dentist", true))
	assert.Equal(t, Specialties{}, s)
}

func TestAccessibilityOptions_Set(t *testing.T) {
	var o AccessibilityOptions
	assert.True(t, o.Set(SpecWheelchairAccessibleEntrance, true))
	assert.True(t, o.Set(SpecWheelchairAccessibleSeating, true))
	assert.False(t, o.Set(SpecFireFighter, true))
	assert.Equal(t, 2, o.Count())
}
