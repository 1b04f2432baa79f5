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

type MockAttendanceProvider struct {
	mock.Mock
}

func (m *MockAttendanceProvider) ListAttendance(ctx context.Context) ([]entities.AttendanceRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.AttendanceRecord), args.Error(1)
}

func (m *MockAttendanceProvider) ListInstitutions(ctx context.Context) ([]entities.Institution, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Institution), args.Error(1)
}

func TestAttendanceHandler_ListInstitutions(t *testing.T) {
	provider := new(MockAttendanceProvider)
	handler := handlers.NewAttendanceHandler(provider)

	provider.On("ListInstitutions", mock.Anything).Return([]entities.Institution{
		{Name: "NECKER - ENFANTS MALADES", Code: "075"},
	}, nil)

	rec := serve(t, "GET /api/institutions", handler.ListInstitutions, "/api/institutions")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Institutions []entities.Institution `json:"institutions"`
		Count        int                    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "075", body.Institutions[0].Code)
}

func TestAttendanceHandler_ListAttendance(t *testing.T) {
	provider := new(MockAttendanceProvider)
	handler := handlers.NewAttendanceHandler(provider)

	var record entities.AttendanceRecord
	record.InstitutionName = "NECKER - ENFANTS MALADES"
	record.Slots[9] = 40
	provider.On("ListAttendance", mock.Anything).Return([]entities.AttendanceRecord{record}, nil)

	rec := serve(t, "GET /api/attendance", handler.ListAttendance, "/api/attendance")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1.0, body["count"])
	first := body["records"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, 40.0, first["timeSlot10"])
}

func TestAttendanceHandler_MissingFeedIsConfigurationError(t *testing.T) {
	provider := new(MockAttendanceProvider)
	handler := handlers.NewAttendanceHandler(provider)

	provider.On("ListAttendance", mock.Anything).Return(nil, apperrors.NewConfigurationError("ATTENDANCE_API_URL is missing"))

	rec := serve(t, "GET /api/attendance", handler.ListAttendance, "/api/attendance")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"configuration error"}`, rec.Body.String())
}
