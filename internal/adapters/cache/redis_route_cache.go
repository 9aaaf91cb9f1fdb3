package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/platform/obs"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// RedisRouteCache stores route geometries as JSON with a TTL.
type RedisRouteCache struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisRouteCache(rdb *redis.Client) *RedisRouteCache {
	return &RedisRouteCache{rdb: rdb, prefix: "route:"}
}

type cachedRoute struct {
	Coordinates     [][]float64 `json:"coordinates"`
	DistanceMeters  float64     `json:"distance_meters"`
	DurationSeconds float64     `json:"duration_seconds"`
}

func (c *RedisRouteCache) Get(ctx context.Context, key string) (_ *domain.RouteGeometry, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	data, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get route cache: %w", err)
	}

	var cr cachedRoute
	if err := json.Unmarshal(data, &cr); err != nil {
		return nil, false, fmt.Errorf("get route cache: decode %q: %w", key, err)
	}

	route := &domain.RouteGeometry{
		Coordinates:     make([]domain.Coordinates, 0, len(cr.Coordinates)),
		DistanceMeters:  cr.DistanceMeters,
		DurationSeconds: cr.DurationSeconds,
	}
	for _, v := range cr.Coordinates {
		c, err := domain.CoordsFromList(v)
		if err != nil {
			return nil, false, fmt.Errorf("get route cache: decode %q: %w", key, err)
		}
		route.Coordinates = append(route.Coordinates, c)
	}

	return route, true, nil
}

func (c *RedisRouteCache) Set(ctx context.Context, key string, route *domain.RouteGeometry, ttl time.Duration) error {
	if route == nil {
		return errors.New("set route cache: route is nil")
	}

	cr := cachedRoute{
		Coordinates:     make([][]float64, 0, len(route.Coordinates)),
		DistanceMeters:  route.DistanceMeters,
		DurationSeconds: route.DurationSeconds,
	}
	for _, p := range route.Coordinates {
		cr.Coordinates = append(cr.Coordinates, p.CoordsToList())
	}

	data, err := json.Marshal(cr)
	if err != nil {
		return fmt.Errorf("set route cache: encode: %w", err)
	}

	if err := c.rdb.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("set route cache: %w", err)
	}
	return nil
}
