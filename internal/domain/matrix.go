package domain

import (
	"fmt"
	"math"
)

// DistanceMatrix is an n×n table of distances in meters indexed by stop
// position. Matrices built locally are exactly symmetric with a zero diagonal;
// provider matrices (road distances) may be asymmetric.
type DistanceMatrix [][]float64

// NewDistanceMatrix allocates a zeroed n×n matrix.
func NewDistanceMatrix(n int) DistanceMatrix {
	if n < 0 {
		n = 0
	}
	m := make(DistanceMatrix, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	return m
}

// Size returns the number of rows.
func (m DistanceMatrix) Size() int { return len(m) }

// CheckShape verifies the matrix is square with n rows.
func (m DistanceMatrix) CheckShape(n int) error {
	if len(m) != n {
		return fmt.Errorf("%w: %d rows for %d stops", ErrInvalidMatrix, len(m), n)
	}
	for i, row := range m {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidMatrix, i, len(row), n)
		}
	}
	return nil
}

// Validate checks shape plus finite, non-negative entries.
func (m DistanceMatrix) Validate(n int) error {
	if err := m.CheckShape(n); err != nil {
		return err
	}
	for i, row := range m {
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return fmt.Errorf("%w: entry [%d][%d] = %v", ErrInvalidMatrix, i, j, v)
			}
		}
	}
	return nil
}

// IsSymmetric reports whether m[i][j] == m[j][i] for every pair.
func (m DistanceMatrix) IsSymmetric() bool {
	for i := range m {
		for j := i + 1; j < len(m); j++ {
			if m[i][j] != m[j][i] {
				return false
			}
		}
	}
	return true
}
