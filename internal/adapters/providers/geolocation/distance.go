package geolocation

import (
	"math"

	"github.com/urgences-proches/backend/internal/domain/entities"
	"github.com/urgences-proches/backend/pkg/utils"
)

// DistanceMeters returns the great-circle distance between two locations
func DistanceMeters(from, to entities.Location) float64 {
	return utils.HaversineMeters(from.Latitude, from.Longitude, to.Latitude, to.Longitude)
}

// ValidLocation reports whether loc is a real WGS84 coordinate
func ValidLocation(loc entities.Location) bool {
	return loc.Latitude >= -90 && loc.Latitude <= 90 &&
		loc.Longitude >= -180 && loc.Longitude <= 180 &&
		!math.IsNaN(loc.Latitude) && !math.IsNaN(loc.Longitude)
}
