package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/urgences-proches/backend/internal/api/handlers"
	"github.com/urgences-proches/backend/internal/domain/entities"
	apperrors "github.com/urgences-proches/backend/pkg/errors"
)

type MockSupplementalProvider struct {
	mock.Mock
}

func (m *MockSupplementalProvider) FindByName(ctx context.Context, name string) (*entities.SupplementalRecord, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SupplementalRecord), args.Error(1)
}

func (m *MockSupplementalProvider) FindByPlaceID(ctx context.Context, placeID string) (*entities.SupplementalRecord, error) {
	args := m.Called(ctx, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SupplementalRecord), args.Error(1)
}

func TestSupplementalHandler_Search(t *testing.T) {
	provider := new(MockSupplementalProvider)
	handler := handlers.NewSupplementalHandler(provider)

	provider.On("FindByName", mock.Anything, "Necker").Return(&entities.SupplementalRecord{
		Name:        "Hôpital Necker",
		PlaceID:     "ChIJnecker",
		FireFighter: true,
		Specialties: entities.Specialties{Cardiologist: true},
	}, nil)
	provider.On("FindByName", mock.Anything, "Nowhere").Return(nil, apperrors.NewNotFoundError("no supplemental record matches"))

	rec := serve(t, "GET /api/hospitals/supplemental/search", handler.Search, "/api/hospitals/supplemental/search?name=Necker")
	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "ChIJnecker", got["place_id"])
	assert.Equal(t, true, got["fire_fighter"])
	assert.Equal(t, true, got["professionnal"].(map[string]interface{})["cardiologist"])

	rec = serve(t, "GET /api/hospitals/supplemental/search", handler.Search, "/api/hospitals/supplemental/search?name=Nowhere")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(t, "GET /api/hospitals/supplemental/search", handler.Search, "/api/hospitals/supplemental/search?name=+")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	provider.AssertExpectations(t)
}

func TestSupplementalHandler_GetByPlaceID(t *testing.T) {
	provider := new(MockSupplementalProvider)
	handler := handlers.NewSupplementalHandler(provider)

	provider.On("FindByPlaceID", mock.Anything, "ChIJnecker").Return(&entities.SupplementalRecord{Name: "Hôpital Necker", PlaceID: "ChIJnecker"}, nil)
	provider.On("FindByPlaceID", mock.Anything, "ChIJother").Return(nil, apperrors.NewNotFoundError("no supplemental record for place"))

	rec := serve(t, "GET /api/hospitals/supplemental/{placeId}", handler.GetByPlaceID, "/api/hospitals/supplemental/ChIJnecker")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, "GET /api/hospitals/supplemental/{placeId}", handler.GetByPlaceID, "/api/hospitals/supplemental/ChIJother")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
