package cache

import (
	"context"
	"database/sql"
	"os"
	"route-planner-service/internal/adapters/repositories"
	"route-planner-service/internal/platform/db"
	"route-planner-service/internal/ports"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
)

// Keys in these tests share a prefix so cleanup leaves other rows alone.
const testKeyPrefix = "legtest:"

func openLegCacheDB(t *testing.T) *sql.DB {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	database, err := db.Open(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, repositories.InitSchema(database))
	purge := func() {
		_, err := database.Exec(`DELETE FROM leg_cache WHERE origin LIKE $1;`, testKeyPrefix+"%")
		require.NoError(t, err)
	}
	purge()
	t.Cleanup(purge)
	return database
}

func TestSQLLegCacheNilDB(t *testing.T) {
	c := NewSQLLegCache(nil)

	_, err := c.GetLegs(context.Background(), []string{"a", "b"})
	require.Error(t, err)
	require.Error(t, c.PutLegs(context.Background(), map[ports.Leg]float64{{Origin: "a", Destination: "b"}: 1}))
}

func TestSQLLegCacheRoundTrip(t *testing.T) {
	c := NewSQLLegCache(openLegCacheDB(t))
	ctx := context.Background()

	a, b, x := testKeyPrefix+"a", testKeyPrefix+"b", testKeyPrefix+"x"
	require.NoError(t, c.PutLegs(ctx, map[ports.Leg]float64{
		{Origin: a, Destination: b}: 120,
		{Origin: b, Destination: a}: 130,
		{Origin: a, Destination: x}: 999,
	}))

	got, err := c.GetLegs(ctx, []string{a, b, a, " "})
	require.NoError(t, err)
	require.Equal(t, map[ports.Leg]float64{
		{Origin: a, Destination: b}: 120,
		{Origin: b, Destination: a}: 130,
	}, got)
}

func TestSQLLegCacheUpsertOverwrites(t *testing.T) {
	c := NewSQLLegCache(openLegCacheDB(t))
	ctx := context.Background()

	leg := ports.Leg{Origin: testKeyPrefix + "a", Destination: testKeyPrefix + "b"}
	require.NoError(t, c.PutLegs(ctx, map[ports.Leg]float64{leg: 10}))
	require.NoError(t, c.PutLegs(ctx, map[ports.Leg]float64{leg: 25.5}))

	got, err := c.GetLegs(ctx, []string{leg.Origin, leg.Destination})
	require.NoError(t, err)
	require.Equal(t, map[ports.Leg]float64{leg: 25.5}, got)
}

func TestSQLLegCacheRejectsEmptyKeyAtomically(t *testing.T) {
	c := NewSQLLegCache(openLegCacheDB(t))
	ctx := context.Background()

	a, b := testKeyPrefix+"a", testKeyPrefix+"b"
	err := c.PutLegs(ctx, map[ports.Leg]float64{
		{Origin: a, Destination: b}:  10,
		{Origin: a, Destination: ""}: 20,
	})
	require.Error(t, err)

	got, err := c.GetLegs(ctx, []string{a, b})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSQLLegCacheFewerThanTwoKeys(t *testing.T) {
	c := NewSQLLegCache(openLegCacheDB(t))

	got, err := c.GetLegs(context.Background(), []string{testKeyPrefix + "a", testKeyPrefix + "a"})
	require.NoError(t, err)
	require.Empty(t, got)
}
