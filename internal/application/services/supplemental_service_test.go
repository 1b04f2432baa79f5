package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urgences-proches/backend/internal/domain/entities"
	apperrors "github.com/urgences-proches/backend/pkg/errors"
)

func newSupplementalService(records ...entities.SupplementalRecord) *SupplementalService {
	return NewSupplementalService(&staticSupplementalRepository{records: records}, NewNameMatcher(StrategyFirst))
}

func TestSupplementalService_FindByName(t *testing.T) {
	svc := newSupplementalService(
		entities.SupplementalRecord{Name: "Bichat", PlaceID: "bichat-id"},
		entities.SupplementalRecord{Name: "Necker", PlaceID: "necker-id"},
	)

	rec, err := svc.FindByName(context.Background(), "HOPITAL NECKER ENFANTS MALADES")
	require.NoError(t, err)
	assert.Equal(t, "necker-id", rec.PlaceID)

	_, err = svc.FindByName(context.Background(), "Cochin")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))

	_, err = svc.FindByName(context.Background(), "  ")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestSupplementalService_FindByPlaceID(t *testing.T) {
	svc := newSupplementalService(
		entities.SupplementalRecord{Name: "Necker", PlaceID: "necker-id"},
	)

	rec, err := svc.FindByPlaceID(context.Background(), "necker-id")
	require.NoError(t, err)
	assert.Equal(t, "Necker", rec.Name)

	_, err = svc.FindByPlaceID(context.Background(), "other")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestSupplementalService_RepositoryError(t *testing.T) {
	svc := NewSupplementalService(&staticSupplementalRepository{err: apperrors.NewNotFoundError("supplemental data file is not available")}, NewNameMatcher(StrategyFirst))

	_, err := svc.FindByName(context.Background(), "Necker")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}
