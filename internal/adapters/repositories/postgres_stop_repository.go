package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/platform/obs"
)

// Postgres-backed implementation of the StopRepository port.
// The position column holds the visiting order.
type PostgresStopRepository struct{ DB *sql.DB }

func NewPostgresStopRepository(db *sql.DB) *PostgresStopRepository {
	return &PostgresStopRepository{DB: db}
}

// Return the stop sequence in visiting order.
func (s *PostgresStopRepository) ListStops(ctx context.Context) (_ []domain.Stop, err error) {
	defer obs.Time(ctx, "stops.List")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres stop repository: DB is nil")
	}

	query := `
	SELECT
		id,
		name,
		address,
		lon,
		lat
	FROM stops
	ORDER BY position;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stops: query stops table: %w", err)
	}
	defer rows.Close()

	stops := make([]domain.Stop, 0, domain.MaxStops)
	for rows.Next() {
		var st domain.Stop
		if err := rows.Scan(&st.ID, &st.Name, &st.Address, &st.Location.Lon, &st.Location.Lat); err != nil {
			return nil, fmt.Errorf("list stops: scan row: %w", err)
		}
		stops = append(stops, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stops: row iteration: %w", err)
	}

	return stops, nil
}

// Replace the whole sequence in one transaction.
func (s *PostgresStopRepository) ReplaceStops(ctx context.Context, stops []domain.Stop) (err error) {
	defer obs.Time(ctx, "stops.Replace")(&err)

	if s.DB == nil {
		return errors.New("postgres stop repository: DB is nil")
	}
	if len(stops) > domain.MaxStops {
		return fmt.Errorf("replace stops: %w: %d > %d", domain.ErrTooManyStops, len(stops), domain.MaxStops)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace stops: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM stops;`); err != nil {
		return fmt.Errorf("replace stops: clear: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO stops (id, position, name, address, lon, lat)
	VALUES ($1, $2, $3, $4, $5, $6);
	`)
	if err != nil {
		return fmt.Errorf("replace stops: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, st := range stops {
		if _, err := stmt.ExecContext(ctx, st.ID, i, st.Name, st.Address, st.Location.Lon, st.Location.Lat); err != nil {
			return fmt.Errorf("replace stops: insert id=%s: %w", st.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace stops: commit tx: %w", err)
	}

	return nil
}

// Update one stop's location, and its address when one is given.
func (s *PostgresStopRepository) MoveStop(
	ctx context.Context,
	id string,
	loc domain.Coordinates,
	address string,
) (_ domain.Stop, err error) {
	defer obs.Time(ctx, "stops.Move")(&err)

	if s.DB == nil {
		return domain.Stop{}, errors.New("postgres stop repository: DB is nil")
	}

	query := `
	UPDATE stops
	SET lon = $2,
		lat = $3,
		address = COALESCE(NULLIF(TRIM($4), ''), address)
	WHERE id = $1
	RETURNING id, name, address, lon, lat;
	`

	var st domain.Stop
	err = s.DB.QueryRowContext(ctx, query, id, loc.Lon, loc.Lat, address).
		Scan(&st.ID, &st.Name, &st.Address, &st.Location.Lon, &st.Location.Lat)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Stop{}, fmt.Errorf("move stop %q: %w", id, domain.ErrStopNotFound)
	}
	if err != nil {
		return domain.Stop{}, fmt.Errorf("move stop %q: %w", id, err)
	}

	return st, nil
}
