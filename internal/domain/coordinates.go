package domain

import "fmt"

// Immutable geographic coordinates (longitude, latitude) in degrees.
type Coordinates struct {
	Lon float64
	Lat float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Key renders the coordinates with fixed precision for use as a cache key.
// Six decimals is roughly 0.1m, well below routing provider resolution.
func (c Coordinates) Key() string { return fmt.Sprintf("%.6f,%.6f", c.Lon, c.Lat) }

// Build coordinates from a [lon, lat] pair. Extra elements are ignored.
func CoordsFromList(v []float64) (Coordinates, error) {
	if len(v) < 2 {
		return Coordinates{}, fmt.Errorf("coordinates: expected [lon, lat], got %d values", len(v))
	}
	return Coordinates{Lon: v[0], Lat: v[1]}, nil
}
