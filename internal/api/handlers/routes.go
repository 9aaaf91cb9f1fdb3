package handlers

import (
	"log"
	"net/http"
	"route-planner-service/internal/api/dto"
	"route-planner-service/internal/ports"
	"route-planner-service/internal/services"
)

type RouteHandler struct {
	Repo    ports.StopRepository
	Planner *services.Planner
}

// Plan returns the road geometry through the stops in their current order.
// Provider failures degrade to a synthesized route, reported via source.
func (h *RouteHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req dto.RouteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	stops, ok := stopsFromRequest(w, r, h.Repo, req.Stops)
	if !ok {
		return
	}

	planned, err := h.Planner.PlanRoute(r.Context(), stops)
	if err != nil {
		log.Printf("plan route failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if planned == nil {
		writeError(w, r, http.StatusUnprocessableEntity, "at least two stops are required")
		return
	}

	writeJSON(w, r, http.StatusOK, toRouteResponse(planned.RouteGeometry, planned.Source))
}
