package services

import (
	"context"
	"math"
	"route-planner-service/internal/adapters/distance"
	"route-planner-service/internal/domain"
	"testing"
)

func demoStops() []domain.Stop {
	return []domain.Stop{
		{ID: "demo-1", Name: "Warehouse HQ", Location: domain.Coordinates{Lon: 35.9106, Lat: 31.9539}},
		{ID: "demo-2", Name: "Metro Shopping Center", Location: domain.Coordinates{Lon: 35.8797, Lat: 31.9632}},
		{ID: "demo-3", Name: "City Hospital", Location: domain.Coordinates{Lon: 35.9301, Lat: 31.9285}},
		{ID: "demo-4", Name: "Tech Campus", Location: domain.Coordinates{Lon: 35.8562, Lat: 31.9344}},
		{ID: "demo-5", Name: "Distribution Center", Location: domain.Coordinates{Lon: 35.8950, Lat: 31.9125}},
	}
}

func TestPlannerOptimizePrefersProviderMatrix(t *testing.T) {
	stops := demoStops()
	m := BuildDistanceMatrix(domain.Locations(stops))
	// Road distances: make every leg 10% longer than straight line.
	for i := range m {
		for j := range m[i] {
			m[i][j] *= 1.1
		}
	}
	provider := distance.NewMockMatrixProvider(m)

	p := &Planner{Matrices: provider}
	out, err := p.Optimize(context.Background(), stops)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.MatrixSource != SourceProvider {
		t.Fatalf("source = %q, want %q", out.MatrixSource, SourceProvider)
	}
	if provider.Calls() != 1 {
		t.Fatalf("provider calls = %d, want 1", provider.Calls())
	}

	local, err := Optimize(stops, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(out.OriginalDistance-local.OriginalDistance*1.1) > 1e-6 {
		t.Fatalf("original distance %v not from provider matrix (local %v)", out.OriginalDistance, local.OriginalDistance)
	}
}

func TestPlannerOptimizeFallsBackToHaversine(t *testing.T) {
	stops := demoStops()
	local, err := Optimize(stops, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	failing := &distance.MockMatrixProvider{Err: distance.ErrMockUnavailable}
	ragged := distance.NewMockMatrixProvider(domain.DistanceMatrix{{0, 1}, {1, 0}})
	empty := distance.NewMockMatrixProvider(nil)

	for name, provider := range map[string]*distance.MockMatrixProvider{"error": failing, "ragged": ragged, "nil": empty} {
		p := &Planner{Matrices: provider}
		out, err := p.Optimize(context.Background(), stops)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if out.MatrixSource != SourceHaversine {
			t.Fatalf("%s: source = %q, want %q", name, out.MatrixSource, SourceHaversine)
		}
		if out.OptimizedDistance != local.OptimizedDistance {
			t.Fatalf("%s: optimized %v, want %v", name, out.OptimizedDistance, local.OptimizedDistance)
		}
	}
}

func TestPlannerOptimizeSkipsProviderBelowThreeStops(t *testing.T) {
	provider := distance.NewMockMatrixProvider(nil)
	p := &Planner{Matrices: provider}

	out, err := p.Optimize(context.Background(), demoStops()[:2])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.Calls() != 0 {
		t.Fatalf("provider called %d times for 2 stops", provider.Calls())
	}
	if len(out.Order) != 2 || out.Order[0] != 0 || out.Order[1] != 1 {
		t.Fatalf("order = %v, want [0 1]", out.Order)
	}
}

func TestPlannerOptimizeRejectsTooManyStops(t *testing.T) {
	stops := make([]domain.Stop, domain.MaxStops+1)
	p := &Planner{}
	if _, err := p.Optimize(context.Background(), stops); err == nil {
		t.Fatalf("expected error for %d stops", len(stops))
	}
}

func TestPlannerPlanRouteUsesProvider(t *testing.T) {
	road := &domain.RouteGeometry{
		Coordinates:     []domain.Coordinates{{Lon: 35.9106, Lat: 31.9539}, {Lon: 35.9, Lat: 31.96}, {Lon: 35.8797, Lat: 31.9632}},
		DistanceMeters:  4200,
		DurationSeconds: 480,
	}
	p := &Planner{Routes: distance.NewMockRouteProvider(road)}

	got, err := p.PlanRoute(context.Background(), demoStops()[:2])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Source != SourceProvider {
		t.Fatalf("source = %q, want %q", got.Source, SourceProvider)
	}
	if got.DistanceMeters != 4200 || len(got.Coordinates) != 3 {
		t.Fatalf("route = %+v, want provider route", got.RouteGeometry)
	}
}

func TestPlannerPlanRouteFallback(t *testing.T) {
	stops := demoStops()
	providers := map[string]*distance.MockRouteProvider{
		"error":  {Err: distance.ErrMockUnavailable},
		"nil":    distance.NewMockRouteProvider(nil),
		"single": distance.NewMockRouteProvider(&domain.RouteGeometry{Coordinates: []domain.Coordinates{{Lon: 1, Lat: 1}}}),
	}

	for name, provider := range providers {
		p := &Planner{Routes: provider}
		got, err := p.PlanRoute(context.Background(), stops)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if got.Source != SourceFallback {
			t.Fatalf("%s: source = %q, want %q", name, got.Source, SourceFallback)
		}
		if want := SequenceDistance(stops); math.Abs(got.DistanceMeters-want) > 1e-6 {
			t.Fatalf("%s: distance = %v, want %v", name, got.DistanceMeters, want)
		}
	}

	// No provider configured behaves the same.
	got, err := (&Planner{}).PlanRoute(context.Background(), stops)
	if err != nil || got.Source != SourceFallback {
		t.Fatalf("no provider: route=%v err=%v", got, err)
	}
}

func TestPlannerPlanRouteNeedsTwoStops(t *testing.T) {
	provider := distance.NewMockRouteProvider(nil)
	p := &Planner{Routes: provider}

	for n := 0; n < 2; n++ {
		got, err := p.PlanRoute(context.Background(), demoStops()[:n])
		if err != nil || got != nil {
			t.Fatalf("n=%d: route=%v err=%v, want nil, nil", n, got, err)
		}
	}
	if provider.Calls() != 0 {
		t.Fatalf("provider called %d times", provider.Calls())
	}
}
