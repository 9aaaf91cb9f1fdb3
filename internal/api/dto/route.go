package dto

import "github.com/paulmach/orb/geojson"

// OptimizeRequest optimizes the given stops, or the stored sequence when
// stops is omitted. Persist stores the optimized order.
type OptimizeRequest struct {
	Stops   []StopRequest `json:"stops" validate:"max=25,dive"`
	Persist bool          `json:"persist"`
}

type OptimizeResponse struct {
	Order                   []int          `json:"order"`
	Stops                   []StopResponse `json:"stops"`
	OriginalDistanceMeters  float64        `json:"original_distance_meters"`
	OptimizedDistanceMeters float64        `json:"optimized_distance_meters"`
	ImprovementPercent      float64        `json:"improvement_percent"`
	ElapsedMs               float64        `json:"elapsed_ms"`
	MatrixSource            string         `json:"matrix_source"`
	Persisted               bool           `json:"persisted"`
}

// RouteRequest plans a route through the given stops, or the stored
// sequence when stops is omitted.
type RouteRequest struct {
	Stops []StopRequest `json:"stops" validate:"max=25,dive"`
}

type RouteResponse struct {
	Geometry        *geojson.Geometry `json:"geometry"`
	DistanceMeters  float64           `json:"distance_meters"`
	DurationSeconds float64           `json:"duration_seconds"`
	Source          string            `json:"source"`
}
