package services

import (
	"math"
	"route-planner-service/internal/domain"
)

// Build a tour with the greedy nearest-neighbor heuristic.
//
// The tour starts at index 0, which is never moved. At each step the
// unvisited index with the strictly smallest distance from the current index
// is chosen. Strict comparison means the lowest index wins an exact tie, so
// the result depends only on matrix contents and stop order.
func nearestNeighborTour(m domain.DistanceMatrix) []int {
	n := m.Size()
	if n == 0 {
		return []int{}
	}

	visited := make([]bool, n)
	tour := make([]int, 0, n)
	tour = append(tour, 0)
	visited[0] = true
	current := 0

	for len(tour) < n {
		next := -1
		best := math.Inf(1)
		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			if m[current][j] < best {
				best = m[current][j]
				next = j
			}
		}

		// Every remaining distance is +Inf or NaN. Take the first unvisited
		// index so no stop is ever dropped.
		if next < 0 {
			for j := 0; j < n; j++ {
				if !visited[j] {
					next = j
					break
				}
			}
		}

		tour = append(tour, next)
		visited[next] = true
		current = next
	}

	return tour
}
