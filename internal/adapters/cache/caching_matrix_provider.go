package cache

import (
	"context"
	"errors"
	"fmt"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/platform/metrics"
	"route-planner-service/internal/platform/obs"
	"route-planner-service/internal/ports"
)

// CachingMatrixProvider serves matrices from a leg cache when every leg is
// known and otherwise asks Inner for the full matrix and stores its legs.
// Cache failures degrade to the inner provider.
type CachingMatrixProvider struct {
	Inner ports.DistanceMatrixProvider
	Legs  ports.LegCache
}

func NewCachingMatrixProvider(inner ports.DistanceMatrixProvider, legs ports.LegCache) *CachingMatrixProvider {
	return &CachingMatrixProvider{Inner: inner, Legs: legs}
}

func (p *CachingMatrixProvider) GetMatrix(
	ctx context.Context,
	coords []domain.Coordinates,
) (_ domain.DistanceMatrix, err error) {
	defer obs.Time(ctx, "matrix.cache.GetMatrix")(&err)

	if p.Inner == nil {
		return nil, errors.New("caching matrix provider: inner provider is nil")
	}

	keys := make([]string, len(coords))
	for i, c := range coords {
		keys[i] = c.Key()
	}

	if p.Legs != nil && len(coords) >= 2 {
		legs, err := p.Legs.GetLegs(ctx, keys)
		if err != nil {
			obs.Logf(ctx, "leg cache read failed: %v", err)
		} else if m, ok := assembleMatrix(keys, legs); ok {
			metrics.MatrixCacheLookups.WithLabelValues("hit").Inc()
			return m, nil
		}
		metrics.MatrixCacheLookups.WithLabelValues("miss").Inc()
	}

	m, err := p.Inner.GetMatrix(ctx, coords)
	if err != nil {
		return nil, fmt.Errorf("caching matrix provider: %w", err)
	}

	// Only well-formed matrices are worth remembering.
	if p.Legs != nil && m.Validate(len(coords)) == nil {
		if err := p.Legs.PutLegs(ctx, splitLegs(keys, m)); err != nil {
			obs.Logf(ctx, "leg cache write failed: %v", err)
		}
	}

	return m, nil
}

// assembleMatrix builds the matrix for keys from cached legs. ok is false
// when any leg is missing.
func assembleMatrix(keys []string, legs map[ports.Leg]float64) (domain.DistanceMatrix, bool) {
	m := domain.NewDistanceMatrix(len(keys))
	for i := range keys {
		for j := range keys {
			if i == j || keys[i] == keys[j] {
				continue
			}
			d, ok := legs[ports.Leg{Origin: keys[i], Destination: keys[j]}]
			if !ok {
				return nil, false
			}
			m[i][j] = d
		}
	}
	return m, true
}

func splitLegs(keys []string, m domain.DistanceMatrix) map[ports.Leg]float64 {
	legs := make(map[ports.Leg]float64, len(keys)*len(keys))
	for i := range keys {
		for j := range keys {
			if keys[i] == keys[j] {
				continue
			}
			legs[ports.Leg{Origin: keys[i], Destination: keys[j]}] = m[i][j]
		}
	}
	return legs
}
