package api

import (
	"net/http"
	"route-planner-service/internal/api/handlers"
	"route-planner-service/internal/platform/metrics"
	"route-planner-service/internal/ports"
	"route-planner-service/internal/services"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	repo ports.StopRepository,
	planner *services.Planner,
	frameInterval time.Duration,
	allowedOrigins []string,
) http.Handler {
	metrics.Register()

	mux := http.NewServeMux()

	stopHandler := &handlers.StopHandler{Repo: repo}
	optimizeHandler := &handlers.OptimizeHandler{Repo: repo, Planner: planner}
	routeHandler := &handlers.RouteHandler{Repo: repo, Planner: planner}
	simHandler := &handlers.SimulationHandler{
		Planner:        planner,
		FrameInterval:  frameInterval,
		AllowedOrigins: allowedOrigins,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/stops", stopHandler.Collection)
	mux.HandleFunc("/stops/{id}", stopHandler.Move)
	mux.HandleFunc("/optimize", optimizeHandler.Optimize)
	mux.HandleFunc("/routes", routeHandler.Plan)
	mux.HandleFunc("/simulate", simHandler.Stream)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// The request id must be in the context before logging runs.
	return requestIDMiddleware(loggingMiddleware(mux))
}
