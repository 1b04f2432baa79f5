package providers

import (
	"context"

	"github.com/urgences-proches/backend/internal/domain/entities"
)

// SupplementalProvider resolves curated supplemental data.
// FindByName returns a NOT_FOUND AppError when no record matches.
type SupplementalProvider interface {
	FindByName(ctx context.Context, name string) (*entities.SupplementalRecord, error)
	FindByPlaceID(ctx context.Context, placeID string) (*entities.SupplementalRecord, error)
}
