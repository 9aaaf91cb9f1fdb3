package config

import (
	"testing"
	"time"
)

func TestGet(t *testing.T) {
	t.Setenv("ROUTE_PLANNER_TEST_KEY", "  value ")
	if got := Get("ROUTE_PLANNER_TEST_KEY", "fallback"); got != "value" {
		t.Fatalf("Get = %q, want %q", got, "value")
	}

	t.Setenv("ROUTE_PLANNER_TEST_KEY", "   ")
	if got := Get("ROUTE_PLANNER_TEST_KEY", "fallback"); got != "fallback" {
		t.Fatalf("Get blank = %q, want %q", got, "fallback")
	}
}

func TestList(t *testing.T) {
	t.Setenv("ROUTE_PLANNER_TEST_LIST", " https://a.example , ,https://b.example,")
	got := List("ROUTE_PLANNER_TEST_LIST")
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("List = %q, want [https://a.example https://b.example]", got)
	}

	t.Setenv("ROUTE_PLANNER_TEST_LIST", "")
	if got := List("ROUTE_PLANNER_TEST_LIST"); len(got) != 0 {
		t.Fatalf("List empty = %q, want none", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DATABASE_URL", "REDIS_URL", "ORS_API_KEY", "ORS_PROFILE",
		"ORS_REQUESTS_PER_MINUTE", "ROUTE_CACHE_TTL", "SEED_PATH", "SIM_FRAME_INTERVAL", "SIM_ALLOWED_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.ORSProfile != "driving-car" {
		t.Fatalf("ORSProfile = %q, want driving-car", cfg.ORSProfile)
	}
	if cfg.ORSRequestsPerMinute != 40 {
		t.Fatalf("ORSRequestsPerMinute = %d, want 40", cfg.ORSRequestsPerMinute)
	}
	if cfg.RouteCacheTTL != time.Hour {
		t.Fatalf("RouteCacheTTL = %s, want 1h", cfg.RouteCacheTTL)
	}
	if cfg.SimFrameInterval != 16*time.Millisecond {
		t.Fatalf("SimFrameInterval = %s, want 16ms", cfg.SimFrameInterval)
	}
	if len(cfg.SimAllowedOrigins) != 0 {
		t.Fatalf("SimAllowedOrigins = %v, want none", cfg.SimAllowedOrigins)
	}
	if cfg.DatabaseURL != "" || cfg.RedisURL != "" || cfg.ORSAPIKey != "" {
		t.Fatalf("optional settings should be empty: %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"ORS_REQUESTS_PER_MINUTE": "many",
		"ROUTE_CACHE_TTL":         "soon",
		"SIM_FRAME_INTERVAL":      "-1s",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			if _, err := Load(); err == nil {
				t.Fatalf("Load with %s=%q: want error", key, val)
			}
		})
	}
}
