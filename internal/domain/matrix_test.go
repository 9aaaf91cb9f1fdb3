package domain

import (
	"errors"
	"math"
	"testing"
)

func TestDistanceMatrixCheckShape(t *testing.T) {
	ragged := DistanceMatrix{
		{0, 1, 2},
		{1, 0},
		{2, 1, 0},
	}
	if err := ragged.CheckShape(3); !errors.Is(err, ErrInvalidMatrix) {
		t.Fatalf("ragged matrix: err = %v, want ErrInvalidMatrix", err)
	}

	m := NewDistanceMatrix(3)
	if err := m.CheckShape(4); !errors.Is(err, ErrInvalidMatrix) {
		t.Fatalf("size mismatch: err = %v, want ErrInvalidMatrix", err)
	}
	if err := m.CheckShape(3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDistanceMatrixValidate(t *testing.T) {
	m := DistanceMatrix{
		{0, 5},
		{math.NaN(), 0},
	}
	if err := m.Validate(2); !errors.Is(err, ErrInvalidMatrix) {
		t.Fatalf("NaN entry: err = %v, want ErrInvalidMatrix", err)
	}

	m[1][0] = -1
	if err := m.Validate(2); !errors.Is(err, ErrInvalidMatrix) {
		t.Fatalf("negative entry: err = %v, want ErrInvalidMatrix", err)
	}

	m[1][0] = 7
	if err := m.Validate(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.IsSymmetric() {
		t.Fatalf("matrix with 5 vs 7 reported symmetric")
	}
}

func TestStopMoveKeepsIdentity(t *testing.T) {
	s := NewStop(" Depot ", "1 Main St", Coordinates{Lon: 35.91, Lat: 31.95})
	id := s.ID
	if id == "" {
		t.Fatalf("expected generated id")
	}
	if s.Name != "Depot" {
		t.Fatalf("name = %q, want trimmed %q", s.Name, "Depot")
	}

	s.Move(Coordinates{Lon: 35.88, Lat: 31.96}, "  ")
	if s.ID != id {
		t.Fatalf("id changed: %q -> %q", id, s.ID)
	}
	if s.Address != "1 Main St" {
		t.Fatalf("blank address should not overwrite, got %q", s.Address)
	}
	if s.Location.Lon != 35.88 {
		t.Fatalf("lon = %v, want 35.88", s.Location.Lon)
	}
}
