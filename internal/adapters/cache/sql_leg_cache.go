package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"route-planner-service/internal/platform/obs"
	"route-planner-service/internal/ports"
	"strings"
)

// SQLLegCache is a Postgres-backed cache for origin->destination leg distances.
type SQLLegCache struct {
	DB *sql.DB
}

func NewSQLLegCache(db *sql.DB) *SQLLegCache {
	return &SQLLegCache{DB: db}
}

// Fetch cached distances between every pair of the given coordinate keys.
func (s *SQLLegCache) GetLegs(
	ctx context.Context,
	keys []string,
) (_ map[ports.Leg]float64, err error) {
	defer obs.Time(ctx, "leg.cache.GetLegs")(&err)

	if s.DB == nil {
		return nil, errors.New("leg cache: db is nil")
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}

		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		uniq = append(uniq, k)
	}

	if len(uniq) < 2 {
		return map[ports.Leg]float64{}, nil
	}

	q := `
	SELECT origin, destination, distance_meters
	FROM leg_cache
	WHERE origin = ANY($1::text[])
		AND destination = ANY($1::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, uniq)
	if err != nil {
		return nil, fmt.Errorf("get leg cache: query leg_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[ports.Leg]float64, len(uniq)*(len(uniq)-1))
	for rows.Next() {
		var leg ports.Leg
		var meters float64
		if err := rows.Scan(&leg.Origin, &leg.Destination, &meters); err != nil {
			return nil, fmt.Errorf("get leg cache: scan rows: %w", err)
		}
		out[leg] = meters
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get leg cache: row iteration: %w", err)
	}

	return out, nil
}

// Store many leg distances in one transaction.
func (s *SQLLegCache) PutLegs(
	ctx context.Context,
	legs map[ports.Leg]float64,
) error {
	if s.DB == nil {
		return errors.New("leg cache: db is nil")
	}

	if len(legs) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert leg cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO leg_cache (origin, destination, distance_meters)
	VALUES ($1, $2, $3)
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		updated_at = now();
	`)
	if err != nil {
		return fmt.Errorf("insert leg cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for leg, meters := range legs {
		if strings.TrimSpace(leg.Origin) == "" || strings.TrimSpace(leg.Destination) == "" {
			return fmt.Errorf("insert leg cache: empty leg key")
		}

		if _, err := stmt.ExecContext(ctx, leg.Origin, leg.Destination, meters); err != nil {
			return fmt.Errorf("insert leg cache %s -> %s: %w", leg.Origin, leg.Destination, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert leg cache commit: %w", err)
	}

	return nil
}
