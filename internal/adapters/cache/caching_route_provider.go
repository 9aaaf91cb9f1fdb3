package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/platform/metrics"
	"route-planner-service/internal/platform/obs"
	"route-planner-service/internal/ports"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// CachingRouteProvider puts a RouteCache in front of a RouteProvider.
// Concurrent lookups for the same coordinate sequence share one upstream call.
type CachingRouteProvider struct {
	Inner ports.RouteProvider
	Cache ports.RouteCache
	TTL   time.Duration

	group singleflight.Group
}

func NewCachingRouteProvider(inner ports.RouteProvider, cache ports.RouteCache, ttl time.Duration) *CachingRouteProvider {
	return &CachingRouteProvider{Inner: inner, Cache: cache, TTL: ttl}
}

// RouteKey is a stable digest of an ordered coordinate sequence.
func RouteKey(coords []domain.Coordinates) string {
	keys := make([]string, len(coords))
	for i, c := range coords {
		keys[i] = c.Key()
	}
	sum := sha256.Sum256([]byte(strings.Join(keys, ";")))
	return hex.EncodeToString(sum[:])
}

func (p *CachingRouteProvider) GetRoute(ctx context.Context, coords []domain.Coordinates) (*domain.RouteGeometry, error) {
	if p.Inner == nil {
		return nil, errors.New("caching route provider: inner provider is nil")
	}

	key := RouteKey(coords)

	v, err, _ := p.group.Do(key, func() (interface{}, error) {
		return p.load(ctx, key, coords)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.RouteGeometry), nil
}

func (p *CachingRouteProvider) load(ctx context.Context, key string, coords []domain.Coordinates) (*domain.RouteGeometry, error) {
	if p.Cache != nil {
		route, ok, err := p.Cache.Get(ctx, key)
		switch {
		case err != nil:
			obs.Logf(ctx, "route cache read failed: %v", err)
		case ok:
			metrics.RouteCacheLookups.WithLabelValues("hit").Inc()
			return route, nil
		}
		metrics.RouteCacheLookups.WithLabelValues("miss").Inc()
	}

	route, err := p.Inner.GetRoute(ctx, coords)
	if err != nil {
		return nil, fmt.Errorf("caching route provider: %w", err)
	}
	if route == nil {
		return nil, errors.New("caching route provider: inner provider returned no route")
	}

	if p.Cache != nil {
		if err := p.Cache.Set(ctx, key, route, p.TTL); err != nil {
			obs.Logf(ctx, "route cache write failed: %v", err)
		}
	}
	return route, nil
}
