package handlers

import (
	"errors"
	"log"
	"net/http"
	"route-planner-service/internal/api/dto"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/ports"
)

// StopHandler manages the stored stop sequence.
type StopHandler struct {
	Repo ports.StopRepository
}

// Collection serves GET (list in visiting order) and PUT (replace) on /stops.
func (h *StopHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPut:
		h.replace(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut)
	}
}

func (h *StopHandler) list(w http.ResponseWriter, r *http.Request) {
	stops, err := h.Repo.ListStops(r.Context())
	if err != nil {
		log.Printf("list stops failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListStopsResponse{Stops: toStopResponses(stops)})
}

func (h *StopHandler) replace(w http.ResponseWriter, r *http.Request) {
	var req dto.ReplaceStopsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	stops, err := toDomainStops(req.Stops)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Repo.ReplaceStops(r.Context(), stops); err != nil {
		if errors.Is(err, domain.ErrTooManyStops) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("replace stops failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListStopsResponse{Stops: toStopResponses(stops)})
}

// Move relocates one stop (PATCH /stops/{id}); identity and order are kept.
func (h *StopHandler) Move(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		methodNotAllowed(w, r, http.MethodPatch)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "stop id is required")
		return
	}

	var req dto.MoveStopRequest
	if !decodeBody(w, r, &req) {
		return
	}

	stop, err := h.Repo.MoveStop(r.Context(), id, domain.Coordinates{Lon: *req.Lng, Lat: *req.Lat}, req.Address)
	if err != nil {
		if errors.Is(err, domain.ErrStopNotFound) {
			writeError(w, r, http.StatusNotFound, "stop not found")
			return
		}
		log.Printf("move stop failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toStopResponses([]domain.Stop{stop})[0])
}
