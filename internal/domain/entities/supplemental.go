package entities

import (
	"strings"
)

// SentinelPlaceID marks a supplemental record whose place identifier was never assigned.
const SentinelPlaceID = "TODO_GOOGLE_PLACE_ID"

// HasUsablePlaceID reports whether placeID may be sent to the places provider
func HasUsablePlaceID(placeID string) bool {
	trimmed := strings.TrimSpace(placeID)
	return trimmed != "" && trimmed != SentinelPlaceID
}

// SupplementalRecord is a curated dataset entry keyed by free-text name
type SupplementalRecord struct {
	Name         string      `json:"name" yaml:"name"`
	PlaceID      string      `json:"place_id" yaml:"place_id"`
	FireFighter  bool        `json:"fire_fighter" yaml:"fire_fighter"`
	SocialWorker bool        `json:"social_worker" yaml:"social_worker"`
	Specialties  Specialties `json:"professionnal" yaml:"professionnal"`
}

// SupplementalDataset is the on-disk layout of the curated dataset
type SupplementalDataset struct {
	Hospitals []SupplementalRecord `json:"hospitals" yaml:"hospitals"`
}

// Specialties holds the medical-specialty flags of a supplemental record.
// JSON keys follow the curated dataset, including its spelling.
type Specialties struct {
	Internist          bool `json:"internist" yaml:"internist"`
	PMR                bool `json:"pmr" yaml:"pmr"`
	Rheumatologist     bool `json:"rheumatologist" yaml:"rheumatologist"`
	Cardiologist       bool `json:"cardiologist" yaml:"cardiologist"`
	Pulmonologist      bool `json:"pulmonologist" yaml:"pulmonologist"`
	Nephrologist       bool `json:"nephrologist" yaml:"nephrologist"`
	Gastroenterologist bool `json:"gasteroenterologist" yaml:"gasteroenterologist"`
	Endocrinologist    bool `json:"endocrinologist" yaml:"endocrinologist"`
	Dermatologist      bool `json:"dermatologist" yaml:"dermatologist"`
	ENT                bool `json:"ent" yaml:"ent"`
	Gynecologist       bool `json:"gynecologist" yaml:"gynecologist"`
	Urologist          bool `json:"urologist" yaml:"urologist"`
	Orthopedist        bool `json:"orthopedist" yaml:"orthopedist"`
	Psychologist       bool `json:"psychologist" yaml:"psychologist"`
	Neurosurgeon       bool `json:"neurosurgeon" yaml:"neurosurgeon"`
	PediatricSurgeon   bool `json:"pediatric_surgeon" yaml:"pediatric_surgeon"`
	OrthopedicSurgeon  bool `json:"orthopedic_surgeon" yaml:"orthopedic_surgeon"`
}

// SpecialtyKeys lists the request keys for specialties, in display order
var SpecialtyKeys = []string{
	"internist",
	"pmr",
	"rheumatologist",
	"cardiologist",
	"pulmonologist",
	"nephrologist",
	"gasteroenterologist",
	"endocrinologist",
	"dermatologist",
	"ent",
	"gynecologist",
	"urologist",
	"orthopedist",
	"psychologist",
	"neurosurgeon",
	"pediatric_surgeon",
	"orthopedic_surgeon",
}

// IsSpecialtyKey reports whether key names a known specialty
func IsSpecialtyKey(key string) bool {
	for _, k := range SpecialtyKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Has reports whether the specialty named by key is available. Unknown keys are false.
func (s *Specialties) Has(key string) bool {
	if s == nil {
		return false
	}
	switch key {
	case "internist":
		return s.Internist
	case "pmr":
		return s.PMR
	case "rheumatologist":
		return s.Rheumatologist
	case "cardiologist":
		return s.Cardiologist
	case "pulmonologist":
		return s.Pulmonologist
	case "nephrologist":
		return s.Nephrologist
	case "gasteroenterologist":
		return s.Gastroenterologist
	case "endocrinologist":
		return s.Endocrinologist
	case "dermatologist":
		return s.Dermatologist
	case "ent":
		return s.ENT
	case "gynecologist":
		return s.Gynecologist
	case "urologist":
		return s.Urologist
	case "orthopedist":
		return s.Orthopedist
	case "psychologist":
		return s.Psychologist
	case "neurosurgeon":
		return s.Neurosurgeon
	case "pediatric_surgeon":
		return s.PediatricSurgeon
	case "orthopedic_surgeon":
		return s.OrthopedicSurgeon
	}
	return false
}

// Set turns the specialty named by key on or off. It reports false for unknown keys.
func (s *Specialties) Set(key string, v bool) bool {
	var field *bool
	switch key {
	case "internist":
		field = &s.Internist
	case "pmr":
		field = &s.PMR
	case "rheumatologist":
		field = &s.Rheumatologist
	case "cardiologist":
		field = &s.Cardiologist
	case "pulmonologist":
		field = &s.Pulmonologist
	case "nephrologist":
		field = &s.Nephrologist
	case "gasteroenterologist":
		field = &s.Gastroenterologist
	case "endocrinologist":
		field = &s.Endocrinologist
	case "dermatologist":
		field = &s.Dermatologist
	case "ent":
		field = &s.ENT
	case "gynecologist":
		field = &s.Gynecologist
	case "urologist":
		field = &s.Urologist
	case "orthopedist":
		field = &s.Orthopedist
	case "psychologist":
		field = &s.Psychologist
	case "neurosurgeon":
		field = &s.Neurosurgeon
	case "pediatric_surgeon":
		field = &s.PediatricSurgeon
	case "orthopedic_surgeon":
		field = &s.OrthopedicSurgeon
	default:
		return false
	}
	*field = v
	return true
}
