package providers

import (
	"context"

	"github.com/urgences-proches/backend/internal/domain/entities"
)

// PlacesProvider fetches address and accessibility details for a place identifier
type PlacesProvider interface {
	GetPlaceDetails(ctx context.Context, placeID string) (*entities.PlaceDetails, error)
}
