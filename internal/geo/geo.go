// Package geo implements great-circle geometry on a spherical earth:
// distances, bearings and fraction-of-length positions along polylines.
//
// Every function is pure. Degenerate input (empty or single-point lines,
// fractions outside [0,1] or NaN) is clamped to well-defined results
// instead of returning errors.
package geo

import (
	"math"
	"route-planner-service/internal/domain"
)

// EarthRadiusMeters is the mean earth radius used by every distance in the
// service, including optimizer matrices.
const EarthRadiusMeters = 6371000.0

func rad(d float64) float64 { return d * math.Pi / 180 }

// Distance returns the haversine great-circle distance between a and b in meters.
func Distance(a, b domain.Coordinates) float64 {
	dLat := rad(b.Lat - a.Lat)
	dLon := rad(b.Lon - a.Lon)
	x := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(a.Lat))*math.Cos(rad(b.Lat))*math.Sin(dLon/2)*math.Sin(dLon/2)
	// Rounding can push x a hair above 1 for antipodal points.
	x = math.Min(1, math.Max(0, x))
	return 2 * EarthRadiusMeters * math.Asin(math.Sqrt(x))
}

// LineLength sums consecutive segment distances. Lines with fewer than two
// points have zero length.
func LineLength(coords []domain.Coordinates) float64 {
	total := 0.0
	for i := 1; i < len(coords); i++ {
		total += Distance(coords[i-1], coords[i])
	}
	return total
}

// Bearing returns the forward azimuth from a to b in degrees, in [0, 360).
// Identical points yield 0.
func Bearing(a, b domain.Coordinates) float64 {
	dLon := rad(b.Lon - a.Lon)
	lat1, lat2 := rad(a.Lat), rad(b.Lat)
	x := math.Sin(dLon) * math.Cos(lat2)
	y := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	deg := math.Atan2(x, y) * 180 / math.Pi
	deg = math.Mod(deg+360, 360)
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// ClampFraction pins f to [0, 1]; NaN becomes 0.
func ClampFraction(f float64) float64 {
	switch {
	case math.IsNaN(f), f <= 0:
		return 0
	case f >= 1:
		return 1
	}
	return f
}
