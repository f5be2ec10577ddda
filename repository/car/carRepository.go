// repository/car/carRepository.go
package carrepo

import (
	"context"
	"database/sql"

	"urbanwheels/model"
)

type Repo interface {
	Insert(ctx context.Context, c *model.Car) error

	// Availability views. All three return AVAILABLE cars only and never
	// mutate catalog order; insertion (id) order is the tie-breaker.
	ListAvailable(ctx context.Context) ([]model.Car, error)
	FilterByCity(ctx context.Context, city string) ([]model.Car, error)
	SortByRate(ctx context.Context) ([]model.Car, error)

	ByID(ctx context.Context, id int64) (*model.Car, error)

	// MarkBooked flips AVAILABLE -> BOOKED inside tx. The status guard in
	// the WHERE clause makes the flip the per-car critical section: of two
	// racing transactions exactly one sees a row affected.
	MarkBooked(ctx context.Context, tx *sql.Tx, carID int64) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, c *model.Car) error {
	const q = `
INSERT INTO cars (model, category, daily_rate, city, owner_username, status)
VALUES (?,?,?,?,?,'AVAILABLE')
RETURNING id, status`
	return r.db.QueryRowContext(ctx, q,
		c.Model, c.Category, c.DailyRate, c.City, c.OwnerUsername,
	).Scan(&c.ID, &c.Status)
}

const carCols = `id, model, category, daily_rate, city, owner_username, status`

func (r *repo) ListAvailable(ctx context.Context) ([]model.Car, error) {
	const q = `
SELECT ` + carCols + `
FROM cars
WHERE status='AVAILABLE'
ORDER BY id`
	return r.query(ctx, q)
}

func (r *repo) FilterByCity(ctx context.Context, city string) ([]model.Car, error) {
	const q = `
SELECT ` + carCols + `
FROM cars
WHERE status='AVAILABLE' AND lower(city) = lower(?)
ORDER BY id`
	return r.query(ctx, q, city)
}

func (r *repo) SortByRate(ctx context.Context) ([]model.Car, error) {
	// id as second key keeps the sort stable for equal rates.
	const q = `
SELECT ` + carCols + `
FROM cars
WHERE status='AVAILABLE'
ORDER BY daily_rate, id`
	return r.query(ctx, q)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Car, error) {
	const q = `
SELECT ` + carCols + `
FROM cars
WHERE id = ?`
	var c model.Car
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&c.ID, &c.Model, &c.Category, &c.DailyRate, &c.City, &c.OwnerUsername, &c.Status,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repo) MarkBooked(ctx context.Context, tx *sql.Tx, carID int64) (bool, error) {
	// Guard: only flip if still available.
	const q = `
UPDATE cars
SET status = 'BOOKED'
WHERE id = ?
AND status = 'AVAILABLE'`
	res, err := tx.ExecContext(ctx, q, carID)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff == 1, nil
}

func (r *repo) query(ctx context.Context, q string, args ...any) ([]model.Car, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Car
	for rows.Next() {
		var c model.Car
		if err := rows.Scan(&c.ID, &c.Model, &c.Category, &c.DailyRate, &c.City, &c.OwnerUsername, &c.Status); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
