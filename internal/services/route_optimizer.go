package services

import (
	"fmt"
	"route-planner-service/internal/domain"
	"time"
)

// OptimizeResult reports a reordered stop sequence and how much it saved.
// Distances are in the unit of the matrix used (meters for every source the
// service builds or accepts).
type OptimizeResult struct {
	Order              []int
	OptimizedStops     []domain.Stop
	OriginalDistance   float64
	OptimizedDistance  float64
	ImprovementPercent float64
	Elapsed            time.Duration
}

// Optimize reorders stops with nearest-neighbor construction followed by
// 2-opt refinement. The first stop stays first.
//
// When matrix is nil a straight-line matrix is built from the stop
// coordinates; otherwise it is used as given (e.g. road distances). The only
// error is a matrix whose shape does not match the stops, which is an
// integration bug rather than a data condition.
//
// Fewer than three stops cannot be improved; the identity order is returned.
func Optimize(stops []domain.Stop, matrix domain.DistanceMatrix) (*OptimizeResult, error) {
	start := time.Now()
	n := len(stops)

	if matrix == nil {
		matrix = BuildDistanceMatrix(domain.Locations(stops))
	} else if err := matrix.CheckShape(n); err != nil {
		return nil, fmt.Errorf("optimize: %w", err)
	}

	identity := make([]int, n)
	for i := range identity {
		identity[i] = i
	}
	original := TourLength(identity, matrix)

	order := identity
	if n >= 3 {
		order = nearestNeighborTour(matrix)
		twoOpt(order, matrix)
	}
	optimized := TourLength(order, matrix)

	reordered := make([]domain.Stop, n)
	for pos, idx := range order {
		reordered[pos] = stops[idx]
	}

	improvement := 0.0
	if original > 0 {
		improvement = (original - optimized) / original * 100
	}

	return &OptimizeResult{
		Order:              order,
		OptimizedStops:     reordered,
		OriginalDistance:   original,
		OptimizedDistance:  optimized,
		ImprovementPercent: improvement,
		Elapsed:            time.Since(start),
	}, nil
}

// ValidatePermutation reports whether order contains every index in [0, n)
// exactly once.
func ValidatePermutation(order []int, n int) error {
	if len(order) != n {
		return fmt.Errorf("validate permutation: length %d, want %d", len(order), n)
	}
	seen := make([]bool, n)
	for pos, v := range order {
		if v < 0 || v >= n {
			return fmt.Errorf("validate permutation: index %d out of range at position %d", v, pos)
		}
		if seen[v] {
			return fmt.Errorf("validate permutation: index %d repeated at position %d", v, pos)
		}
		seen[v] = true
	}
	return nil
}
