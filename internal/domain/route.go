package domain

// RouteGeometry is a polyline along the stop sequence plus its totals.
// It is produced either by an external routing provider or synthesized
// locally; consumers treat both the same.
type RouteGeometry struct {
	Coordinates     []Coordinates
	DistanceMeters  float64
	DurationSeconds float64
}

// Empty reports whether the geometry has no points to travel along.
func (g RouteGeometry) Empty() bool { return len(g.Coordinates) == 0 }
