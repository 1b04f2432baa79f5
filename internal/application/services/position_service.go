package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/urgences-proches/backend/internal/domain/entities"
	"github.com/urgences-proches/backend/internal/domain/providers"
	"github.com/urgences-proches/backend/internal/infrastructure/observability"
)

// PositionService resolves the search centre, falling back to a default
// coordinate when the user's position cannot be acquired in time.
type PositionService struct {
	fallback entities.Location
	timeout  time.Duration
}

// NewPositionService creates a new position service
func NewPositionService(fallback entities.Location, timeout time.Duration) *PositionService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &PositionService{fallback: fallback, timeout: timeout}
}

// Fallback returns the default coordinate
func (s *PositionService) Fallback() entities.Location {
	return s.fallback
}

// Resolve asks provider for the current position. It never fails: any error,
// including the wait exceeding the timeout, yields the fallback with a notice.
func (s *PositionService) Resolve(ctx context.Context, provider providers.PositionProvider) entities.Position {
	if provider == nil {
		return s.fallbackPosition(ctx, providers.PositionPositionUnavailable, nil)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type result struct {
		loc entities.Location
		err error
	}
	done := make(chan result, 1)
	go func() {
		loc, err := provider.CurrentPosition(ctx)
		done <- result{loc: loc, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return s.fallbackPosition(ctx, reasonOf(res.err), res.err)
		}
		return entities.Position{Location: res.loc}
	case <-ctx.Done():
		return s.fallbackPosition(ctx, providers.PositionTimeout, ctx.Err())
	}
}

func (s *PositionService) fallbackPosition(ctx context.Context, reason providers.PositionErrorReason, err error) entities.Position {
	observability.LoggerFromContext(ctx).Info().
		Err(err).
		Str("reason", string(reason)).
		Msg("using default position")

	return entities.Position{
		Location: s.fallback,
		Fallback: true,
		Notice:   fallbackNotice(reason),
	}
}

func reasonOf(err error) providers.PositionErrorReason {
	var posErr *providers.PositionError
	if errors.As(err, &posErr) {
		return posErr.Reason
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return providers.PositionTimeout
	}
	return providers.PositionPositionUnavailable
}

func fallbackNotice(reason providers.PositionErrorReason) string {
	var cause string
	switch reason {
	case providers.PositionPermissionDenied:
		cause = "location access was denied"
	case providers.PositionTimeout:
		cause = "locating you took too long"
	default:
		cause = "your position is unavailable"
	}
	return fmt.Sprintf("Showing hospitals around the default position because %s.", cause)
}
