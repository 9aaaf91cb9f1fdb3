package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// OptimizeRuns counts optimizer invocations by matrix source (provider, haversine).
	OptimizeRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "route_optimize_runs_total", Help: "Route optimizations by distance matrix source."},
		[]string{"matrix_source"},
	)
	OptimizeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "route_optimize_duration_ms", Help: "Optimizer wall time in ms.", Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 50}},
	)
	OptimizeImprovement = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "route_optimize_improvement_percent", Help: "Distance saved by optimization in percent.", Buckets: []float64{0, 1, 5, 10, 20, 30, 50}},
	)

	// RoutePlans counts planned routes by geometry source (provider, fallback).
	RoutePlans = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "route_plans_total", Help: "Route geometries by source."},
		[]string{"source"},
	)
	RouteCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "route_cache_lookups_total", Help: "Route cache lookups by result."},
		[]string{"result"},
	)
	MatrixCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "matrix_cache_lookups_total", Help: "Distance matrix leg cache lookups by result."},
		[]string{"result"},
	)

	SimulationSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "simulation_sessions_active", Help: "Open live simulation streams."},
	)
)

// Register adds all collectors to Registry. Safe to call more than once.
func Register() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(OptimizeRuns)
		Registry.MustRegister(OptimizeDuration)
		Registry.MustRegister(OptimizeImprovement)
		Registry.MustRegister(RoutePlans)
		Registry.MustRegister(RouteCacheLookups)
		Registry.MustRegister(MatrixCacheLookups)
		Registry.MustRegister(SimulationSessions)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
