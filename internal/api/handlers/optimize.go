package handlers

import (
	"errors"
	"log"
	"net/http"
	"route-planner-service/internal/api/dto"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/ports"
	"route-planner-service/internal/services"
)

type OptimizeHandler struct {
	Repo    ports.StopRepository
	Planner *services.Planner
}

// Optimize reorders stops to shorten the visiting sequence.
// The first stop always stays first.
func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req dto.OptimizeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	stops, ok := stopsFromRequest(w, r, h.Repo, req.Stops)
	if !ok {
		return
	}

	out, err := h.Planner.Optimize(r.Context(), stops)
	if err != nil {
		if errors.Is(err, domain.ErrTooManyStops) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("optimize failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if req.Persist {
		if err := h.Repo.ReplaceStops(r.Context(), out.OptimizedStops); err != nil {
			log.Printf("persist optimized stops failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	writeJSON(w, r, http.StatusOK, dto.OptimizeResponse{
		Order:                   out.Order,
		Stops:                   toStopResponses(out.OptimizedStops),
		OriginalDistanceMeters:  out.OriginalDistance,
		OptimizedDistanceMeters: out.OptimizedDistance,
		ImprovementPercent:      out.ImprovementPercent,
		ElapsedMs:               float64(out.Elapsed.Microseconds()) / 1000,
		MatrixSource:            out.MatrixSource,
		Persisted:               req.Persist,
	})
}

// stopsFromRequest converts request stops, or loads the stored sequence
// when the request carries none.
func stopsFromRequest(w http.ResponseWriter, r *http.Request, repo ports.StopRepository, reqs []dto.StopRequest) ([]domain.Stop, bool) {
	if reqs == nil {
		stops, err := repo.ListStops(r.Context())
		if err != nil {
			log.Printf("list stops failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return nil, false
		}
		return stops, true
	}

	stops, err := toDomainStops(reqs)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return stops, true
}
