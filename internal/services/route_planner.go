package services

import (
	"context"
	"errors"
	"fmt"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/platform/metrics"
	"route-planner-service/internal/platform/obs"
	"route-planner-service/internal/ports"
)

// Distance and geometry sources reported to callers.
const (
	SourceProvider  = "provider"
	SourceHaversine = "haversine"
	SourceFallback  = "fallback"
)

// Planner runs the optimizer and route planning against optional external
// providers. A missing provider, a failing one, or one returning unusable
// data is replaced by the local computation; callers only see the source
// label change.
type Planner struct {
	Matrices ports.DistanceMatrixProvider
	Routes   ports.RouteProvider
}

// OptimizeOutcome is an optimizer result plus the matrix source used.
type OptimizeOutcome struct {
	*OptimizeResult
	MatrixSource string
}

// PlannedRoute is a route geometry plus where it came from.
type PlannedRoute struct {
	*domain.RouteGeometry
	Source string
}

// Optimize reorders stops, preferring provider distances over straight lines.
func (p *Planner) Optimize(ctx context.Context, stops []domain.Stop) (_ *OptimizeOutcome, err error) {
	defer obs.Time(ctx, "planner.Optimize")(&err)

	if len(stops) > domain.MaxStops {
		return nil, fmt.Errorf("planner optimize: %w: %d > %d", domain.ErrTooManyStops, len(stops), domain.MaxStops)
	}

	source := SourceHaversine
	var matrix domain.DistanceMatrix
	// Below three stops there is nothing to reorder; skip the external call.
	if p.Matrices != nil && len(stops) >= 3 {
		m, err := p.providerMatrix(ctx, stops)
		if err != nil {
			obs.Logf(ctx, "distance matrix provider failed, using haversine: %v", err)
		} else {
			matrix = m
			source = SourceProvider
		}
	}

	res, err := Optimize(stops, matrix)
	if err != nil {
		return nil, fmt.Errorf("planner optimize: %w", err)
	}

	metrics.OptimizeRuns.WithLabelValues(source).Inc()
	metrics.OptimizeDuration.Observe(float64(res.Elapsed.Microseconds()) / 1000)
	metrics.OptimizeImprovement.Observe(res.ImprovementPercent)

	return &OptimizeOutcome{OptimizeResult: res, MatrixSource: source}, nil
}

func (p *Planner) providerMatrix(ctx context.Context, stops []domain.Stop) (domain.DistanceMatrix, error) {
	m, err := p.Matrices.GetMatrix(ctx, domain.Locations(stops))
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errors.New("provider returned no matrix")
	}
	if err := m.Validate(len(stops)); err != nil {
		return nil, err
	}
	return m, nil
}

// PlanRoute returns road geometry through the stops in their current order,
// synthesizing one locally when the provider is absent or fails.
//
// Fewer than two stops have no route; the result is nil with no error.
func (p *Planner) PlanRoute(ctx context.Context, stops []domain.Stop) (_ *PlannedRoute, err error) {
	defer obs.Time(ctx, "planner.PlanRoute")(&err)

	if len(stops) < 2 {
		return nil, nil
	}

	if p.Routes != nil {
		route, err := p.Routes.GetRoute(ctx, domain.Locations(stops))
		switch {
		case err != nil:
			obs.Logf(ctx, "route provider failed, using fallback: %v", err)
		case route == nil || len(route.Coordinates) < 2:
			obs.Logf(ctx, "route provider returned no geometry, using fallback")
		default:
			metrics.RoutePlans.WithLabelValues(SourceProvider).Inc()
			return &PlannedRoute{RouteGeometry: route, Source: SourceProvider}, nil
		}
	}

	metrics.RoutePlans.WithLabelValues(SourceFallback).Inc()
	return &PlannedRoute{RouteGeometry: SynthesizeRoute(stops), Source: SourceFallback}, nil
}
