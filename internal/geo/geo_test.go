package geo_test

import (
	"math"
	"testing"

	"route-planner-service/internal/domain"
	"route-planner-service/internal/geo"

	"github.com/stretchr/testify/require"
)

// metersPerDegree is the length of one degree of arc on the model sphere.
var metersPerDegree = geo.EarthRadiusMeters * math.Pi / 180

// demoLine is a short city-scale polyline with uneven segment lengths.
func demoLine() []domain.Coordinates {
	return []domain.Coordinates{
		{Lon: 35.9106, Lat: 31.9539},
		{Lon: 35.8797, Lat: 31.9632},
		{Lon: 35.9301, Lat: 31.9285},
		{Lon: 35.8562, Lat: 31.9344},
		{Lon: 35.8950, Lat: 31.9125},
	}
}

func TestDistanceOneDegreeOfLatitude(t *testing.T) {
	a := domain.Coordinates{Lon: 10, Lat: 0}
	b := domain.Coordinates{Lon: 10, Lat: 1}

	require.InDelta(t, metersPerDegree, geo.Distance(a, b), 1e-6)
	require.Equal(t, geo.Distance(a, b), geo.Distance(b, a))
	require.Zero(t, geo.Distance(a, a))
}

func TestDistanceAntipodalIsFinite(t *testing.T) {
	d := geo.Distance(domain.Coordinates{Lon: 0, Lat: 0}, domain.Coordinates{Lon: 180, Lat: 0})
	require.False(t, math.IsNaN(d))
	require.InDelta(t, math.Pi*geo.EarthRadiusMeters, d, 1e-3)
}

func TestLineLengthDegenerate(t *testing.T) {
	require.Zero(t, geo.LineLength(nil))
	require.Zero(t, geo.LineLength([]domain.Coordinates{{Lon: 1, Lat: 2}}))
}

func TestBearingCardinalDirections(t *testing.T) {
	origin := domain.Coordinates{Lon: 0, Lat: 0}

	tests := []struct {
		name string
		to   domain.Coordinates
		want float64
	}{
		{"north", domain.Coordinates{Lon: 0, Lat: 1}, 0},
		{"east", domain.Coordinates{Lon: 1, Lat: 0}, 90},
		{"south", domain.Coordinates{Lon: 0, Lat: -1}, 180},
		{"west", domain.Coordinates{Lon: -1, Lat: 0}, 270},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := geo.Bearing(origin, tc.to)
			require.InDelta(t, tc.want, got, 1e-9)
			require.GreaterOrEqual(t, got, 0.0)
			require.Less(t, got, 360.0)
		})
	}

	require.Zero(t, geo.Bearing(origin, origin))
}

func TestClampFraction(t *testing.T) {
	require.Zero(t, geo.ClampFraction(math.NaN()))
	require.Zero(t, geo.ClampFraction(-0.5))
	require.Equal(t, 1.0, geo.ClampFraction(3))
	require.Equal(t, 0.25, geo.ClampFraction(0.25))
}
