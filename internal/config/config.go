// Package config reads service settings from the environment, optionally
// populated from a .env file.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	// Empty DatabaseURL selects the in-memory stop repository.
	DatabaseURL string
	// Empty RedisURL disables the route geometry cache.
	RedisURL string
	// Empty ORSAPIKey selects straight-line matrices and synthesized routes.
	ORSAPIKey            string
	ORSProfile           string
	ORSRequestsPerMinute int
	RouteCacheTTL        time.Duration
	SeedPath             string
	SimFrameInterval     time.Duration
	// Extra browser origins allowed to open /simulate.
	SimAllowedOrigins []string
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := Config{
		Port:        Get("PORT", "8080"),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RedisURL:    strings.TrimSpace(os.Getenv("REDIS_URL")),
		ORSAPIKey:   strings.TrimSpace(os.Getenv("ORS_API_KEY")),
		ORSProfile:  Get("ORS_PROFILE", "driving-car"),
		SeedPath:    Get("SEED_PATH", "data/seeds/stops.yaml"),
	}

	var err error
	if cfg.ORSRequestsPerMinute, err = strconv.Atoi(Get("ORS_REQUESTS_PER_MINUTE", "40")); err != nil {
		return Config{}, fmt.Errorf("config: ORS_REQUESTS_PER_MINUTE: %w", err)
	}
	if cfg.RouteCacheTTL, err = time.ParseDuration(Get("ROUTE_CACHE_TTL", "1h")); err != nil {
		return Config{}, fmt.Errorf("config: ROUTE_CACHE_TTL: %w", err)
	}
	if cfg.SimFrameInterval, err = time.ParseDuration(Get("SIM_FRAME_INTERVAL", "16ms")); err != nil {
		return Config{}, fmt.Errorf("config: SIM_FRAME_INTERVAL: %w", err)
	}
	if cfg.SimFrameInterval <= 0 {
		return Config{}, fmt.Errorf("config: SIM_FRAME_INTERVAL must be positive, got %s", cfg.SimFrameInterval)
	}

	cfg.SimAllowedOrigins = List("SIM_ALLOWED_ORIGINS")

	return cfg, nil
}

// Get returns the trimmed value of key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// List splits a comma-separated value into its trimmed, non-empty parts.
func List(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
