package entities

// ScoreBreakdown exposes why a hospital ranks where it does
type ScoreBreakdown struct {
	Distance      float64 `json:"distance"`
	Traffic       float64 `json:"traffic"`
	Specialty     float64 `json:"specialty"`
	Accessibility float64 `json:"accessibility"`
	Composite     int     `json:"composite"`
}

// EnrichedHospital is a directory record joined with the optional
// supplemental record, place details and live traffic level.
type EnrichedHospital struct {
	HospitalRecord
	Supplemental *SupplementalRecord `json:"supplemental,omitempty"`
	Place        *PlaceDetails       `json:"place,omitempty"`
	TrafficLevel *float64            `json:"trafficLevel,omitempty"`
	Score        *ScoreBreakdown     `json:"score,omitempty"`
}

// Specialties returns the specialty flags, nil without a supplemental record
func (h *EnrichedHospital) Specialties() *Specialties {
	if h == nil || h.Supplemental == nil {
		return nil
	}
	return &h.Supplemental.Specialties
}

// Accessibility returns the accessibility flags, nil without place details
func (h *EnrichedHospital) Accessibility() *AccessibilityOptions {
	if h == nil || h.Place == nil {
		return nil
	}
	return h.Place.Accessibility
}
