package repositories

import (
	"context"
	"database/sql"
	"os"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/platform/db"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to TEST_DATABASE_URL, creates the schema and empties
// the stops table. Tests are skipped when the variable is unset.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	database, err := db.Open(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, InitSchema(database))
	_, err = database.Exec(`DELETE FROM stops;`)
	require.NoError(t, err)
	return database
}

func TestPostgresStopRepositoryNilDB(t *testing.T) {
	repo := NewPostgresStopRepository(nil)
	ctx := context.Background()

	_, err := repo.ListStops(ctx)
	require.Error(t, err)
	require.Error(t, repo.ReplaceStops(ctx, nil))
	_, err = repo.MoveStop(ctx, "a", domain.Coordinates{}, "")
	require.Error(t, err)
}

func TestPostgresStopRepositoryReplaceKeepsOrder(t *testing.T) {
	repo := NewPostgresStopRepository(openTestDB(t))
	ctx := context.Background()

	first := []domain.Stop{
		{ID: "c", Name: "Third Street", Address: "3 Road", Location: domain.Coordinates{Lon: 3, Lat: 3}},
		{ID: "a", Name: "First Street", Address: "1 Road", Location: domain.Coordinates{Lon: 1, Lat: 1}},
		{ID: "b", Name: "Second Street", Address: "2 Road", Location: domain.Coordinates{Lon: 2, Lat: 2}},
	}
	require.NoError(t, repo.ReplaceStops(ctx, first))

	stops, err := repo.ListStops(ctx)
	require.NoError(t, err)
	require.Equal(t, first, stops)

	// A shorter sequence drops the rows it no longer names.
	second := []domain.Stop{first[2], first[0]}
	require.NoError(t, repo.ReplaceStops(ctx, second))

	stops, err = repo.ListStops(ctx)
	require.NoError(t, err)
	require.Equal(t, second, stops)
}

func TestPostgresStopRepositoryReplaceRejectsTooMany(t *testing.T) {
	repo := NewPostgresStopRepository(openTestDB(t))
	ctx := context.Background()

	seed := []domain.Stop{{ID: "a", Name: "A", Location: domain.Coordinates{Lon: 1, Lat: 1}}}
	require.NoError(t, repo.ReplaceStops(ctx, seed))

	tooMany := make([]domain.Stop, domain.MaxStops+1)
	for i := range tooMany {
		tooMany[i] = domain.NewStop("S", "", domain.Coordinates{Lon: float64(i), Lat: 0})
	}
	require.ErrorIs(t, repo.ReplaceStops(ctx, tooMany), domain.ErrTooManyStops)

	stops, err := repo.ListStops(ctx)
	require.NoError(t, err)
	require.Equal(t, seed, stops)
}

func TestPostgresStopRepositoryReplaceRollsBackOnDuplicate(t *testing.T) {
	repo := NewPostgresStopRepository(openTestDB(t))
	ctx := context.Background()

	seed := []domain.Stop{{ID: "a", Name: "A", Location: domain.Coordinates{Lon: 1, Lat: 1}}}
	require.NoError(t, repo.ReplaceStops(ctx, seed))

	dup := []domain.Stop{
		{ID: "x", Name: "X", Location: domain.Coordinates{Lon: 2, Lat: 2}},
		{ID: "x", Name: "X again", Location: domain.Coordinates{Lon: 3, Lat: 3}},
	}
	require.Error(t, repo.ReplaceStops(ctx, dup))

	stops, err := repo.ListStops(ctx)
	require.NoError(t, err)
	require.Equal(t, seed, stops)
}

func TestPostgresStopRepositoryMove(t *testing.T) {
	repo := NewPostgresStopRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.ReplaceStops(ctx, []domain.Stop{
		{ID: "a", Name: "Depot", Address: "1 Road", Location: domain.Coordinates{Lon: 1, Lat: 1}},
		{ID: "b", Name: "Clinic", Address: "2 Road", Location: domain.Coordinates{Lon: 2, Lat: 2}},
	}))

	tests := []struct {
		name        string
		address     string
		wantAddress string
	}{
		{name: "blank address keeps the stored one", address: "  ", wantAddress: "2 Road"},
		{name: "new address replaces it", address: "9 Avenue", wantAddress: "9 Avenue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := domain.Coordinates{Lon: 5.5, Lat: -4.25}
			got, err := repo.MoveStop(ctx, "b", loc, tt.address)
			require.NoError(t, err)
			require.Equal(t, domain.Stop{ID: "b", Name: "Clinic", Address: tt.wantAddress, Location: loc}, got)
		})
	}

	// Moving keeps the visiting order.
	stops, err := repo.ListStops(ctx)
	require.NoError(t, err)
	require.Len(t, stops, 2)
	require.Equal(t, "a", stops[0].ID)
	require.Equal(t, "b", stops[1].ID)
	require.Equal(t, "9 Avenue", stops[1].Address)
}

func TestPostgresStopRepositoryMoveUnknownID(t *testing.T) {
	repo := NewPostgresStopRepository(openTestDB(t))

	_, err := repo.MoveStop(context.Background(), "missing", domain.Coordinates{Lon: 1, Lat: 1}, "")
	require.ErrorIs(t, err, domain.ErrStopNotFound)
}
