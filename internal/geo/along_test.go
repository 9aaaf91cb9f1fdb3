package geo_test

import (
	"math"
	"testing"

	"route-planner-service/internal/domain"
	"route-planner-service/internal/geo"

	"github.com/stretchr/testify/require"
)

// straightKilometer returns a 2-point line heading due north, 1000m long.
func straightKilometer() []domain.Coordinates {
	return []domain.Coordinates{
		{Lon: 0, Lat: 0},
		{Lon: 0, Lat: 1000 / metersPerDegree},
	}
}

func TestPointAlongEndpoints(t *testing.T) {
	line := demoLine()

	start := geo.PointAlong(line, 0)
	require.Equal(t, line[0], start.Coordinates)
	require.InDelta(t, geo.Bearing(line[0], line[1]), start.Bearing, 1e-12)

	end := geo.PointAlong(line, 1)
	require.Equal(t, line[len(line)-1], end.Coordinates)
	require.InDelta(t, geo.Bearing(line[len(line)-2], line[len(line)-1]), end.Bearing, 1e-12)

	require.Equal(t, start, geo.PointAlong(line, -3))
	require.Equal(t, start, geo.PointAlong(line, math.NaN()))
	require.Equal(t, end, geo.PointAlong(line, 7))
}

func TestPointAlongDegenerateLines(t *testing.T) {
	require.Equal(t, geo.Position{}, geo.PointAlong(nil, 0.5))

	single := []domain.Coordinates{{Lon: 3, Lat: 4}}
	for _, f := range []float64{0, 0.5, 1} {
		got := geo.PointAlong(single, f)
		require.Equal(t, single[0], got.Coordinates)
		require.Zero(t, got.Bearing)
	}

	// All points identical: zero total length must not produce NaN.
	same := []domain.Coordinates{{Lon: 1, Lat: 1}, {Lon: 1, Lat: 1}, {Lon: 1, Lat: 1}}
	got := geo.PointAlong(same, 0.5)
	require.Equal(t, same[0], got.Coordinates)
	require.False(t, math.IsNaN(got.Bearing))
}

func TestStraightKilometerMidpoint(t *testing.T) {
	line := straightKilometer()
	require.InDelta(t, 1000, geo.LineLength(line), 1e-6)

	mid := geo.PointAlong(line, 0.5)
	require.InDelta(t, 0, mid.Coordinates.Lon, 1e-12)
	require.InDelta(t, line[1].Lat/2, mid.Coordinates.Lat, 1e-12)
	require.InDelta(t, geo.Bearing(line[0], line[1]), mid.Bearing, 1e-12)

	sliced := geo.SliceLine(line, 0.5)
	require.Len(t, sliced, 2)
	require.Equal(t, line[0], sliced[0])
	require.InDelta(t, mid.Coordinates.Lat, sliced[1].Lat, 1e-12)
	require.InDelta(t, mid.Coordinates.Lon, sliced[1].Lon, 1e-12)
	require.InDelta(t, 500, geo.LineLength(sliced), 1e-6)
}

func TestSliceLineLengthIsProportional(t *testing.T) {
	line := demoLine()
	total := geo.LineLength(line)

	for _, f := range []float64{0, 0.01, 0.1, 0.25, 0.333, 0.5, 0.77, 0.9, 0.999, 1} {
		got := geo.LineLength(geo.SliceLine(line, f))
		require.InDelta(t, f*total, got, total*1e-4, "fraction %v", f)
	}
}

func TestSliceLineMatchesPointAlong(t *testing.T) {
	line := demoLine()
	for _, f := range []float64{0.2, 0.4, 0.6, 0.8} {
		sliced := geo.SliceLine(line, f)
		last := sliced[len(sliced)-1]
		require.Equal(t, geo.PointAlong(line, f).Coordinates, last, "fraction %v", f)
	}
}

func TestSliceLineBounds(t *testing.T) {
	line := demoLine()

	require.Equal(t, []domain.Coordinates{line[0]}, geo.SliceLine(line, 0))
	require.Equal(t, []domain.Coordinates{line[0]}, geo.SliceLine(line, -1))
	require.Empty(t, geo.SliceLine(nil, 0.5))

	whole := geo.SliceLine(line, 1)
	require.Equal(t, line, whole)
	whole[0].Lon = 99
	require.NotEqual(t, 99.0, line[0].Lon, "slice must not alias input")
}
