package geo

import "route-planner-service/internal/domain"

// Position is a point on a polyline with the instantaneous heading there.
type Position struct {
	Coordinates domain.Coordinates
	Bearing     float64
}

// lerp interpolates linearly in lon/lat space within one segment.
func lerp(a, b domain.Coordinates, t float64) domain.Coordinates {
	return domain.Coordinates{
		Lon: a.Lon + (b.Lon-a.Lon)*t,
		Lat: a.Lat + (b.Lat-a.Lat)*t,
	}
}

// locate walks the segments until the target distance falls inside one.
// It returns the index i of the segment end (segment is coords[i-1]→coords[i])
// and the segment-local fraction. ok is false when the walk ran off the end.
func locate(coords []domain.Coordinates, target float64) (i int, t float64, ok bool) {
	acc := 0.0
	for i = 1; i < len(coords); i++ {
		seg := Distance(coords[i-1], coords[i])
		if acc+seg >= target {
			if seg > 0 {
				t = (target - acc) / seg
			}
			return i, ClampFraction(t), true
		}
		acc += seg
	}
	return len(coords) - 1, 1, false
}

// PointAlong returns the position at the given fraction of the cumulative
// length of coords.
//
// fraction <= 0 yields the first point with the first segment's bearing;
// fraction >= 1 yields the last point with the last segment's bearing.
// An empty line yields the zero position and a single point yields that
// point with bearing 0.
func PointAlong(coords []domain.Coordinates, fraction float64) Position {
	n := len(coords)
	if n == 0 {
		return Position{}
	}
	if n == 1 {
		return Position{Coordinates: coords[0]}
	}

	fraction = ClampFraction(fraction)
	if fraction <= 0 {
		return Position{Coordinates: coords[0], Bearing: Bearing(coords[0], coords[1])}
	}
	if fraction >= 1 {
		return Position{Coordinates: coords[n-1], Bearing: Bearing(coords[n-2], coords[n-1])}
	}

	target := LineLength(coords) * fraction
	i, t, ok := locate(coords, target)
	if !ok {
		return Position{Coordinates: coords[n-1], Bearing: Bearing(coords[n-2], coords[n-1])}
	}
	return Position{
		Coordinates: lerp(coords[i-1], coords[i], t),
		Bearing:     Bearing(coords[i-1], coords[i]),
	}
}

// SliceLine returns the prefix of coords from the start up to the given
// fraction of its length, ending in an interpolated point that matches
// PointAlong. The result never aliases coords.
//
// fraction <= 0 yields only the first point; fraction >= 1 yields a copy of
// the whole line.
func SliceLine(coords []domain.Coordinates, fraction float64) []domain.Coordinates {
	n := len(coords)
	if n == 0 {
		return []domain.Coordinates{}
	}

	fraction = ClampFraction(fraction)
	if fraction <= 0 || n == 1 {
		return []domain.Coordinates{coords[0]}
	}
	if fraction >= 1 {
		out := make([]domain.Coordinates, n)
		copy(out, coords)
		return out
	}

	target := LineLength(coords) * fraction
	i, t, ok := locate(coords, target)
	if !ok {
		out := make([]domain.Coordinates, n)
		copy(out, coords)
		return out
	}

	out := make([]domain.Coordinates, 0, i+1)
	out = append(out, coords[:i]...)
	out = append(out, lerp(coords[i-1], coords[i], t))
	return out
}
