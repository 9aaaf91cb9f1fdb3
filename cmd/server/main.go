package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"route-planner-service/internal/adapters/cache"
	"route-planner-service/internal/adapters/distance"
	"route-planner-service/internal/adapters/repositories"
	"route-planner-service/internal/api"
	"route-planner-service/internal/config"
	"route-planner-service/internal/platform/db"
	"route-planner-service/internal/platform/redisdb"
	"route-planner-service/internal/ports"
	"route-planner-service/internal/services"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	redis "github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, ORS) behind ports and starts the
// HTTP server. Every external dependency is optional; without one the service
// falls back to in-memory storage and local geometry.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var database *sql.DB
	if cfg.DatabaseURL != "" {
		database, err = db.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer database.Close()

		if err := repositories.InitSchema(database); err != nil {
			log.Fatal(err)
		}
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = redisdb.Open(cfg.RedisURL)
		if err != nil {
			log.Fatal(err)
		}
		defer rdb.Close()
	}

	repo := newStopRepository(database)
	if err := seedIfEmpty(repo, cfg.SeedPath); err != nil {
		log.Fatal(err)
	}

	planner, err := newPlanner(cfg, database, rdb)
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(repo, planner, cfg.SimFrameInterval, cfg.SimAllowedOrigins)

	// WriteTimeout stays generous for cold-cache route planning (external API
	// latency); websocket streams are hijacked and not subject to it.
	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func newStopRepository(database *sql.DB) ports.StopRepository {
	if database == nil {
		log.Println("DATABASE_URL not set; stops are kept in memory")
		return repositories.NewMemoryStopRepository()
	}
	return repositories.NewPostgresStopRepository(database)
}

// seedIfEmpty loads the demo sequence on first start.
func seedIfEmpty(repo ports.StopRepository, seedPath string) error {
	ctx := context.Background()

	stops, err := repo.ListStops(ctx)
	if err != nil {
		return err
	}
	if len(stops) > 0 || seedPath == "" {
		return nil
	}

	n, err := repositories.SeedStops(ctx, repo, seedPath)
	if err != nil {
		return err
	}
	log.Printf("Seeded stops count=%d path=%s", n, seedPath)
	return nil
}

// newPlanner puts the ORS client behind its caches. Without an API key the
// planner has no providers and uses haversine matrices and synthesized routes.
func newPlanner(cfg config.Config, database *sql.DB, rdb *redis.Client) (*services.Planner, error) {
	if cfg.ORSAPIKey == "" {
		log.Println("ORS_API_KEY not set; using straight-line distances and synthesized routes")
		return &services.Planner{}, nil
	}

	ors, err := distance.NewORSClient(cfg.ORSAPIKey, distance.ORSOptions{
		Profile:           cfg.ORSProfile,
		RequestsPerMinute: cfg.ORSRequestsPerMinute,
	})
	if err != nil {
		return nil, err
	}

	planner := &services.Planner{Matrices: ors, Routes: ors}

	if database != nil {
		planner.Matrices = cache.NewCachingMatrixProvider(ors, cache.NewSQLLegCache(database))
	}
	if rdb != nil {
		planner.Routes = cache.NewCachingRouteProvider(ors, cache.NewRedisRouteCache(rdb), cfg.RouteCacheTTL)
	}

	return planner, nil
}
