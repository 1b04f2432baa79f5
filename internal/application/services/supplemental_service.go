package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/urgences-proches/backend/internal/domain/entities"
	"github.com/urgences-proches/backend/internal/domain/repositories"
	apperrors "github.com/urgences-proches/backend/pkg/errors"
)

// SupplementalService resolves curated records by fuzzy name or by place id
type SupplementalService struct {
	repo    repositories.SupplementalRepository
	matcher *NameMatcher
}

// NewSupplementalService creates a new supplemental service
func NewSupplementalService(repo repositories.SupplementalRepository, matcher *NameMatcher) *SupplementalService {
	return &SupplementalService{
		repo:    repo,
		matcher: matcher,
	}
}

// FindByName returns the record whose name matches name
func (s *SupplementalService) FindByName(ctx context.Context, name string) (*entities.SupplementalRecord, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidationError("name is required")
	}

	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	rec, _, ok := FindMatch(s.matcher, name, records, func(r entities.SupplementalRecord) string { return r.Name })
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no supplemental data for %q", name))
	}
	return &rec, nil
}

// FindByPlaceID returns the record carrying placeID
func (s *SupplementalService) FindByPlaceID(ctx context.Context, placeID string) (*entities.SupplementalRecord, error) {
	placeID = strings.TrimSpace(placeID)
	if placeID == "" {
		return nil, apperrors.NewValidationError("place id is required")
	}

	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range records {
		if records[i].PlaceID == placeID {
			rec := records[i]
			return &rec, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("no supplemental data for place %s", placeID))
}
