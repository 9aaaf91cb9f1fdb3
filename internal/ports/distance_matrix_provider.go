package ports

import (
	"context"
	"route-planner-service/internal/domain"
)

// Source of a full pairwise distance matrix (e.g. road distances) for the
// optimizer. Results are in meters and indexed like coords.
type DistanceMatrixProvider interface {
	GetMatrix(ctx context.Context, coords []domain.Coordinates) (domain.DistanceMatrix, error)
}

// Persistent storage for individual origin->destination legs, keyed by
// coordinate keys (domain.Coordinates.Key).
type LegCache interface {
	// Return known distances from each origin to each destination.
	GetLegs(ctx context.Context, keys []string) (map[Leg]float64, error)
	PutLegs(ctx context.Context, legs map[Leg]float64) error
}

// One directed leg between two coordinate keys.
type Leg struct {
	Origin      string
	Destination string
}
