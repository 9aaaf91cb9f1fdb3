package distance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/platform/obs"
)

type matrixRequest struct {
	Locations [][]float64 `json:"locations"`
	Metrics   []string    `json:"metrics"`
	Units     string      `json:"units"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
}

// GetMatrix retrieves the full pairwise road distance matrix (meters) for
// coords from the OpenRouteService matrix endpoint.
func (o *ORSClient) GetMatrix(
	ctx context.Context,
	coords []domain.Coordinates,
) (_ domain.DistanceMatrix, err error) {
	defer obs.Time(ctx, "ors.GetMatrix")(&err)

	n := len(coords)
	if n < 2 {
		return domain.NewDistanceMatrix(n), nil
	}

	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, o.profile)

	locations := make([][]float64, 0, n)
	for _, c := range coords {
		locations = append(locations, c.CoordsToList())
	}

	payload, err := json.Marshal(matrixRequest{
		Locations: locations,
		Metrics:   []string{"distance"},
		Units:     "m",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}

	if len(mr.Distances) != n {
		return nil, fmt.Errorf("expected %d matrix rows; got %d", n, len(mr.Distances))
	}

	out := domain.NewDistanceMatrix(n)
	for i, row := range mr.Distances {
		if len(row) != n {
			return nil, fmt.Errorf("matrix row %d has %d entries; want %d", i, len(row), n)
		}
		for j, meters := range row {
			// ORS reports unroutable pairs as null.
			if meters == nil {
				return nil, fmt.Errorf("matrix returned no distance for %d -> %d", i, j)
			}
			out[i][j] = *meters
		}
	}

	return out, nil
}
