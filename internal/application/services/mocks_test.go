package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/urgences-proches/backend/internal/domain/entities"
)

type MockDirectoryProvider struct {
	mock.Mock
}

func (m *MockDirectoryProvider) Nearby(ctx context.Context, center entities.Location, radiusMeters int) ([]*entities.HospitalRecord, error) {
	args := m.Called(ctx, center, radiusMeters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.HospitalRecord), args.Error(1)
}

func (m *MockDirectoryProvider) GetByID(ctx context.Context, id string) (*entities.HospitalRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.HospitalRecord), args.Error(1)
}

type MockPlacesProvider struct {
	mock.Mock
}

func (m *MockPlacesProvider) GetPlaceDetails(ctx context.Context, placeID string) (*entities.PlaceDetails, error) {
	args := m.Called(ctx, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PlaceDetails), args.Error(1)
}

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

type MockPositionProvider struct {
	mock.Mock
}

func (m *MockPositionProvider) CurrentPosition(ctx context.Context) (entities.Location, error) {
	args := m.Called(ctx)
	return args.Get(0).(entities.Location), args.Error(1)
}

// staticSupplementalRepository serves a fixed dataset
type staticSupplementalRepository struct {
	records []entities.SupplementalRecord
	err     error
}

func (r *staticSupplementalRepository) List(ctx context.Context) ([]entities.SupplementalRecord, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]entities.SupplementalRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}
