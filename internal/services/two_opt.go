package services

import "route-planner-service/internal/domain"

// twoOptEpsilon is the minimum gain (matrix units, meters) for a reversal.
const twoOptEpsilon = 0.001

// Refine an open tour in place with first-improvement 2-opt.
//
// For 1 <= i < j < n the edges (i-1,i) and (j,j+1) are replaced by (i-1,j)
// and (i,j+1) by reversing tour[i..j]. When j is the last position there is
// no edge past the end and j+1 is clamped to j. Full passes repeat until a
// pass applies no reversal. Total length strictly decreases with every move,
// so the loop terminates; the number of passes is not bounded by n alone,
// which is acceptable for the small stop counts the service allows.
//
// Asymmetric matrices get a correction for the reversed inner edges so that
// an accepted move always shortens the real tour.
//
// Returns the number of reversals applied.
func twoOpt(tour []int, m domain.DistanceMatrix) int {
	n := len(tour)
	symmetric := m.IsSymmetric()
	moves := 0

	for improved := true; improved; {
		improved = false
		for i := 1; i < n-1; i++ {
			for j := i + 1; j < n; j++ {
				jn := j + 1
				if jn >= n {
					jn = j
				}

				before := m[tour[i-1]][tour[i]] + m[tour[j]][tour[jn]]
				after := m[tour[i-1]][tour[j]] + m[tour[i]][tour[jn]]
				if !symmetric {
					after += reversedInnerDelta(tour, m, i, j)
				}

				if after < before-twoOptEpsilon {
					reverseInPlace(tour, i, j)
					moves++
					improved = true
				}
			}
		}
	}

	return moves
}

// reversedInnerDelta is the change in cost of the edges strictly inside
// tour[i..j] when their direction is flipped.
func reversedInnerDelta(tour []int, m domain.DistanceMatrix, i, j int) float64 {
	delta := 0.0
	for k := i; k < j; k++ {
		a, b := tour[k], tour[k+1]
		delta += m[b][a] - m[a][b]
	}
	return delta
}

// reverseInPlace reverses tour[i..j] (inclusive) without allocating.
func reverseInPlace(tour []int, i, j int) {
	for i < j {
		tour[i], tour[j] = tour[j], tour[i]
		i++
		j--
	}
}
