package distance

import (
	"context"
	"errors"
	"route-planner-service/internal/domain"
	"sync/atomic"
)

var ErrMockUnavailable = errors.New("mock provider unavailable")

// MockMatrixProvider returns a fixed matrix, or Err when set.
type MockMatrixProvider struct {
	Matrix domain.DistanceMatrix
	Err    error
	calls  atomic.Int64
}

func NewMockMatrixProvider(m domain.DistanceMatrix) *MockMatrixProvider {
	return &MockMatrixProvider{Matrix: m}
}

func (p *MockMatrixProvider) GetMatrix(ctx context.Context, coords []domain.Coordinates) (domain.DistanceMatrix, error) {
	p.calls.Add(1)
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Matrix, nil
}

// Calls reports how many times GetMatrix ran.
func (p *MockMatrixProvider) Calls() int { return int(p.calls.Load()) }

// MockRouteProvider returns a fixed route, or Err when set.
type MockRouteProvider struct {
	Route *domain.RouteGeometry
	Err   error
	calls atomic.Int64
}

func NewMockRouteProvider(r *domain.RouteGeometry) *MockRouteProvider {
	return &MockRouteProvider{Route: r}
}

func (p *MockRouteProvider) GetRoute(ctx context.Context, coords []domain.Coordinates) (*domain.RouteGeometry, error) {
	p.calls.Add(1)
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Route, nil
}

func (p *MockRouteProvider) Calls() int { return int(p.calls.Load()) }
