package ports

import (
	"context"
	"route-planner-service/internal/domain"
	"time"
)

// Contract for retrieving road geometry through an ordered list of coordinates.
type RouteProvider interface {
	// Return the route, or an error when none could be produced.
	GetRoute(ctx context.Context, coords []domain.Coordinates) (*domain.RouteGeometry, error)
}

// Cache of route geometries keyed by a stable digest of the coordinates.
type RouteCache interface {
	// ok is false on a miss.
	Get(ctx context.Context, key string) (_ *domain.RouteGeometry, ok bool, err error)
	Set(ctx context.Context, key string, route *domain.RouteGeometry, ttl time.Duration) error
}
