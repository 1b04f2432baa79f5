package entities

// Specification keys accepted by the hospital filter
const (
	SpecFireFighter                  = "fire_fighter"
	SpecSocialWorker                 = "social_worker"
	SpecWheelchairAccessibleEntrance = "wheelchairAccessibleEntrance"
	SpecWheelchairAccessibleParking  = "wheelchairAccessibleParking"
	SpecWheelchairAccessibleRestroom = "wheelchairAccessibleRestroom"
	SpecWheelchairAccessibleSeating  = "wheelchairAccessibleSeating"
)

// SpecificationKeys lists every accepted specification key
var SpecificationKeys = []string{
	SpecFireFighter,
	SpecSocialWorker,
	SpecWheelchairAccessibleEntrance,
	SpecWheelchairAccessibleParking,
	SpecWheelchairAccessibleRestroom,
	SpecWheelchairAccessibleSeating,
}

// IsSpecificationKey reports whether key names a known specification
func IsSpecificationKey(key string) bool {
	for _, k := range SpecificationKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Position is the coordinate a search is centred on
type Position struct {
	Location Location `json:"location"`
	Fallback bool     `json:"fallback"`
	Notice   string   `json:"notice,omitempty"`
}

// NearbyResult is the ranked answer to a nearby search
type NearbyResult struct {
	Hospitals     []*EnrichedHospital `json:"hospitals"`
	RecommendedID *string             `json:"recommendedId"`
	Count         int                 `json:"count"`
	Position      Position            `json:"position"`
}
