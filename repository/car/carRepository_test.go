package carrepo_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"urbanwheels/model"
	carrepo "urbanwheels/repository/car"
	"urbanwheels/util/database"

	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*sql.DB, carrepo.Repo) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, carrepo.New(db)
}

func addCar(t *testing.T, r carrepo.Repo, m, city string, rate int64) model.Car {
	t.Helper()
	c := model.Car{Model: m, Category: "Sedan", DailyRate: rate, City: city, OwnerUsername: "owner1"}
	require.NoError(t, r.Insert(context.Background(), &c))
	require.NotZero(t, c.ID)
	require.Equal(t, model.CarAvailable, c.Status)
	return c
}

func TestListAvailable_InsertionOrder(t *testing.T) {
	_, r := newTestRepo(t)
	ctx := context.Background()

	addCar(t, r, "Civic", "Pune", 1000)
	addCar(t, r, "Camry", "Mumbai", 1800)
	addCar(t, r, "Swift", "Pune", 700)

	cars, err := r.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, cars, 3)
	require.Equal(t, "Civic", cars[0].Model)
	require.Equal(t, "Camry", cars[1].Model)
	require.Equal(t, "Swift", cars[2].Model)
}

func TestFilterByCity_CaseInsensitive(t *testing.T) {
	_, r := newTestRepo(t)
	ctx := context.Background()

	addCar(t, r, "Civic", "Pune", 1000)
	addCar(t, r, "Camry", "Mumbai", 1800)
	addCar(t, r, "Swift", "PUNE", 700)

	cars, err := r.FilterByCity(ctx, "pune")
	require.NoError(t, err)
	require.Len(t, cars, 2)
	require.Equal(t, "Civic", cars[0].Model)
	require.Equal(t, "Swift", cars[1].Model)

	// empty result, not an error
	cars, err = r.FilterByCity(ctx, "Delhi")
	require.NoError(t, err)
	require.Empty(t, cars)
}

func TestSortByRate_StableAndMonotonic(t *testing.T) {
	_, r := newTestRepo(t)
	ctx := context.Background()

	a := addCar(t, r, "Alto", "Pune", 700)
	b := addCar(t, r, "Swift", "Pune", 700)
	addCar(t, r, "Camry", "Mumbai", 1800)
	addCar(t, r, "Nano", "Pune", 300)

	cars, err := r.SortByRate(ctx)
	require.NoError(t, err)
	require.Len(t, cars, 4)
	for i := 1; i < len(cars); i++ {
		require.GreaterOrEqual(t, cars[i].DailyRate, cars[i-1].DailyRate)
	}
	// tie on 700 keeps insertion order
	require.Equal(t, a.ID, cars[1].ID)
	require.Equal(t, b.ID, cars[2].ID)

	// catalog order itself is untouched
	plain, err := r.ListAvailable(ctx)
	require.NoError(t, err)
	require.Equal(t, "Alto", plain[0].Model)
}

func TestMarkBooked_GuardedFlip(t *testing.T) {
	db, r := newTestRepo(t)
	ctx := context.Background()

	c := addCar(t, r, "Civic", "Pune", 1000)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	flipped, err := r.MarkBooked(ctx, tx, c.ID)
	require.NoError(t, err)
	require.True(t, flipped)
	require.NoError(t, tx.Commit())

	// second flip finds no AVAILABLE row
	tx, err = db.BeginTx(ctx, nil)
	require.NoError(t, err)
	flipped, err = r.MarkBooked(ctx, tx, c.ID)
	require.NoError(t, err)
	require.False(t, flipped)
	require.NoError(t, tx.Rollback())

	// gone from every view
	for name, list := range map[string]func() ([]model.Car, error){
		"list":   func() ([]model.Car, error) { return r.ListAvailable(ctx) },
		"filter": func() ([]model.Car, error) { return r.FilterByCity(ctx, "Pune") },
		"sort":   func() ([]model.Car, error) { return r.SortByRate(ctx) },
	} {
		cars, err := list()
		require.NoError(t, err, name)
		require.Empty(t, cars, name)
	}

	// still visible by id, as BOOKED
	got, err := r.ByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, model.CarBooked, got.Status)
}
