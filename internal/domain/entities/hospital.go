package entities

// Location represents geographical coordinates
type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// HospitalRecord is a hospital entry returned by the public directory.
// It is immutable once fetched.
type HospitalRecord struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone,omitempty"`
	Location       *Location `json:"location,omitempty"`
	DistanceMeters *float64  `json:"distanceMeters,omitempty"`
}

// DistanceKm returns the distance in kilometers and whether it is known
func (h *HospitalRecord) DistanceKm() (float64, bool) {
	if h == nil || h.DistanceMeters == nil {
		return 0, false
	}
	return *h.DistanceMeters / 1000, true
}
