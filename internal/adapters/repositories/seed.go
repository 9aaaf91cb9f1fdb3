package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/ports"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type StopSeed struct {
	ID      string  `json:"id" yaml:"id"`
	Name    string  `json:"name" yaml:"name"`
	Address string  `json:"address" yaml:"address"`
	Lon     float64 `json:"lon" yaml:"lon"`
	Lat     float64 `json:"lat" yaml:"lat"`
}

// LoadSeedFile reads a stop sequence from a YAML or JSON file (by extension).
// Stops without an id get a fresh one.
func LoadSeedFile(path string) ([]domain.Stop, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed stops: read %q: %w", path, err)
	}

	var data []StopSeed
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(bytes, &data); err != nil {
			return nil, fmt.Errorf("seed stops: parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(bytes, &data); err != nil {
			return nil, fmt.Errorf("seed stops: parse yaml: %w", err)
		}
	}

	if len(data) > domain.MaxStops {
		return nil, fmt.Errorf("seed stops: %w: %d > %d", domain.ErrTooManyStops, len(data), domain.MaxStops)
	}

	stops := make([]domain.Stop, 0, len(data))
	seen := make(map[string]struct{}, len(data))
	for i, item := range data {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, fmt.Errorf("seed stops: item at index %d: name cannot be empty", i+1)
		}
		if item.Lon < -180 || item.Lon > 180 || item.Lat < -90 || item.Lat > 90 {
			return nil, fmt.Errorf("seed stops: item %q: coordinates out of range: %v,%v", name, item.Lon, item.Lat)
		}

		id := strings.TrimSpace(item.ID)
		if id == "" {
			id = uuid.NewString()
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("seed stops: duplicate id %q", id)
		}
		seen[id] = struct{}{}

		stops = append(stops, domain.Stop{
			ID:       id,
			Name:     name,
			Address:  strings.TrimSpace(item.Address),
			Location: domain.Coordinates{Lon: item.Lon, Lat: item.Lat},
		})
	}

	return stops, nil
}

// SeedStops replaces the stored sequence with the contents of path.
func SeedStops(ctx context.Context, repo ports.StopRepository, path string) (int, error) {
	stops, err := LoadSeedFile(path)
	if err != nil {
		return 0, err
	}
	if err := repo.ReplaceStops(ctx, stops); err != nil {
		return 0, fmt.Errorf("seed stops: %w", err)
	}
	return len(stops), nil
}
