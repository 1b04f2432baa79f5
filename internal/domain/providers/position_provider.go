package providers

import (
	"context"
	"fmt"

	"github.com/urgences-proches/backend/internal/domain/entities"
)

// PositionErrorReason tells why a position could not be acquired
type PositionErrorReason string

const (
	PositionPermissionDenied    PositionErrorReason = "permission-denied"
	PositionPositionUnavailable PositionErrorReason = "position-unavailable"
	PositionTimeout             PositionErrorReason = "timeout"
)

// PositionError is returned by a PositionProvider that cannot locate the user
type PositionError struct {
	Reason PositionErrorReason
	Err    error
}

func (e *PositionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("position %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("position %s", e.Reason)
}

func (e *PositionError) Unwrap() error {
	return e.Err
}

// PositionProvider acquires the current position of the user
type PositionProvider interface {
	CurrentPosition(ctx context.Context) (entities.Location, error)
}
