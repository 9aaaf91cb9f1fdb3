package distance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/platform/obs"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

// GetRoute retrieves the road geometry visiting coords in order from the
// OpenRouteService directions endpoint (GeoJSON flavour).
func (o *ORSClient) GetRoute(
	ctx context.Context,
	coords []domain.Coordinates,
) (_ *domain.RouteGeometry, err error) {
	defer obs.Time(ctx, "ors.GetRoute")(&err)

	if len(coords) < 2 {
		return nil, errors.New("get ORS route: at least two coordinates are required")
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", o.baseURL, o.profile)

	points := make([][]float64, 0, len(coords))
	for _, c := range coords {
		points = append(points, c.CoordsToList())
	}

	payload, err := json.Marshal(directionsRequest{Coordinates: points})
	if err != nil {
		return nil, fmt.Errorf("marshal directions request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read directions response: %w", err)
	}

	return decodeDirections(body)
}

func decodeDirections(body []byte) (*domain.RouteGeometry, error) {
	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		return nil, fmt.Errorf("decode directions response: %w", err)
	}
	if len(fc.Features) == 0 {
		return nil, errors.New("directions response has no features")
	}

	feature := fc.Features[0]
	line, ok := feature.Geometry.(orb.LineString)
	if !ok {
		return nil, fmt.Errorf("directions geometry is %T, want LineString", feature.Geometry)
	}
	if len(line) < 2 {
		return nil, errors.New("directions geometry has fewer than two points")
	}

	route := &domain.RouteGeometry{Coordinates: make([]domain.Coordinates, 0, len(line))}
	for _, p := range line {
		route.Coordinates = append(route.Coordinates, domain.Coordinates{Lon: p.Lon(), Lat: p.Lat()})
	}

	// ORS omits zero-valued summary fields.
	if summary, ok := feature.Properties["summary"].(map[string]interface{}); ok {
		props := geojson.Properties(summary)
		route.DistanceMeters = props.MustFloat64("distance", 0)
		route.DurationSeconds = props.MustFloat64("duration", 0)
	}

	return route, nil
}
