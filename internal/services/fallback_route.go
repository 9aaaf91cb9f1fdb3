package services

import (
	"math"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/geo"
)

const (
	// fallbackSteps is the number of interpolation steps per leg.
	fallbackSteps = 20
	// Peak sideways bend of each synthesized leg, in degrees.
	fallbackBendLon = 0.003
	fallbackBendLat = 0.0015
	// fallbackSpeedKmh is the assumed average speed for synthesized durations.
	fallbackSpeedKmh = 40.0
)

// SynthesizeRoute builds a stand-in route geometry when no routing provider
// is available. Each leg is interpolated with a slight bend so the path reads
// as a road on a map; distance is the straight-line total and duration
// assumes 40 km/h.
//
// Returns nil for fewer than two stops.
func SynthesizeRoute(stops []domain.Stop) *domain.RouteGeometry {
	if len(stops) < 2 {
		return nil
	}

	coords := make([]domain.Coordinates, 0, (len(stops)-1)*fallbackSteps+1)
	total := 0.0

	for i := 0; i < len(stops)-1; i++ {
		a, b := stops[i].Location, stops[i+1].Location

		// Later legs skip t=0, it duplicates the previous leg's end.
		k := 1
		if i == 0 {
			k = 0
		}
		for ; k <= fallbackSteps; k++ {
			t := float64(k) / fallbackSteps
			bend := math.Sin(t * math.Pi)
			if k == fallbackSteps {
				bend = 0
			}
			coords = append(coords, domain.Coordinates{
				Lon: a.Lon + (b.Lon-a.Lon)*t + bend*fallbackBendLon,
				Lat: a.Lat + (b.Lat-a.Lat)*t + bend*fallbackBendLat,
			})
		}

		total += geo.Distance(a, b)
	}

	return &domain.RouteGeometry{
		Coordinates:     coords,
		DistanceMeters:  total,
		DurationSeconds: total / 1000 / fallbackSpeedKmh * 3600,
	}
}
