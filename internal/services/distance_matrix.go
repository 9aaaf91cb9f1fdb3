package services

import (
	"route-planner-service/internal/domain"
	"route-planner-service/internal/geo"
)

// BuildDistanceMatrix computes straight-line distances in meters between
// every pair of coordinates.
//
// Only the upper triangle is computed; each value is mirrored into the lower
// triangle so the result is exactly symmetric with a zero diagonal.
func BuildDistanceMatrix(coords []domain.Coordinates) domain.DistanceMatrix {
	n := len(coords)
	m := domain.NewDistanceMatrix(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := geo.Distance(coords[i], coords[j])
			m[i][j] = d
			m[j][i] = d
		}
	}
	return m
}

// TourLength sums matrix distances along consecutive tour positions.
// The tour is open: there is no return leg to the start.
func TourLength(tour []int, m domain.DistanceMatrix) float64 {
	total := 0.0
	for i := 1; i < len(tour); i++ {
		total += m[tour[i-1]][tour[i]]
	}
	return total
}

// SequenceDistance returns the straight-line length of the stops visited in
// their current order.
func SequenceDistance(stops []domain.Stop) float64 {
	return geo.LineLength(domain.Locations(stops))
}
