package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"route-planner-service/internal/api/dto"
	"route-planner-service/internal/domain"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const maxBodyBytes = 1 << 20

var validate = validator.New()

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allow ...string) {
	w.Header().Set("Allow", strings.Join(allow, ", "))
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

// decodeBody reads exactly one JSON object into v and validates it.
// On failure it writes the 400 response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	if err := validate.Struct(v); err != nil {
		writeError(w, r, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

// validationMessage flattens validator errors into one client-facing line.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

// toDomainStops converts validated requests, assigning ids where missing.
func toDomainStops(reqs []dto.StopRequest) ([]domain.Stop, error) {
	stops := make([]domain.Stop, 0, len(reqs))
	seen := make(map[string]struct{}, len(reqs))
	for _, sr := range reqs {
		st := domain.Stop{
			ID:       strings.TrimSpace(sr.ID),
			Name:     strings.TrimSpace(sr.Name),
			Address:  strings.TrimSpace(sr.Address),
			Location: domain.Coordinates{Lon: *sr.Lng, Lat: *sr.Lat},
		}
		if st.ID == "" {
			st.ID = uuid.NewString()
		}
		if _, ok := seen[st.ID]; ok {
			return nil, fmt.Errorf("duplicate stop id %q", st.ID)
		}
		seen[st.ID] = struct{}{}
		stops = append(stops, st)
	}
	return stops, nil
}

func toStopResponses(stops []domain.Stop) []dto.StopResponse {
	out := make([]dto.StopResponse, 0, len(stops))
	for _, s := range stops {
		out = append(out, dto.StopResponse{
			ID:      s.ID,
			Name:    s.Name,
			Address: s.Address,
			Lng:     s.Location.Lon,
			Lat:     s.Location.Lat,
		})
	}
	return out
}

func toLineString(coords []domain.Coordinates) orb.LineString {
	line := make(orb.LineString, 0, len(coords))
	for _, c := range coords {
		line = append(line, orb.Point{c.Lon, c.Lat})
	}
	return line
}

func toRouteResponse(route *domain.RouteGeometry, source string) dto.RouteResponse {
	return dto.RouteResponse{
		Geometry:        geojson.NewGeometry(toLineString(route.Coordinates)),
		DistanceMeters:  route.DistanceMeters,
		DurationSeconds: route.DurationSeconds,
		Source:          source,
	}
}
