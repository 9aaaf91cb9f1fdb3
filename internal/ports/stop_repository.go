package ports

import (
	"context"
	"route-planner-service/internal/domain"
)

// Port: the ordered stop sequence. Position in the returned slice is the
// visiting order.
type StopRepository interface {
	ListStops(ctx context.Context) ([]domain.Stop, error)
	// Replace the entire sequence, preserving the given order.
	ReplaceStops(ctx context.Context, stops []domain.Stop) error
	// Update location and address of one stop in place.
	MoveStop(ctx context.Context, id string, loc domain.Coordinates, address string) (domain.Stop, error)
}
