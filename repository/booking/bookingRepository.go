// repository/booking/bookingRepository.go
package bookingrepo

import (
	"context"
	"database/sql"
	"time"

	"urbanwheels/model"
)

type HistoryRow struct {
	BookingID    int64     `json:"booking_id"`
	CarID        int64     `json:"car_id"`
	CarModel     string    `json:"car_model"`
	Counterparty string    `json:"counterparty"`
	DurationDays int64     `json:"duration_days"`
	TotalCost    int64     `json:"total_cost"`
	CreatedAt    time.Time `json:"created_at"`
}

type Repo interface {
	// Insert appends within the reservation transaction; the ledger has no
	// update or delete path.
	Insert(ctx context.Context, tx *sql.Tx, b *model.Booking) error

	ListByOwner(ctx context.Context, owner string) ([]HistoryRow, error)
	ListByCustomer(ctx context.Context, customer string) ([]HistoryRow, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `
INSERT INTO bookings (customer_username, car_id, car_model, owner_username, duration_days, total_cost)
VALUES (?,?,?,?,?,?)
RETURNING id, created_at`
	return tx.QueryRowContext(ctx, q,
		b.CustomerUsername, b.CarID, b.CarModel, b.OwnerUsername, b.DurationDays, b.TotalCost,
	).Scan(&b.ID, &b.CreatedAt)
}

func (r *repo) ListByOwner(ctx context.Context, owner string) ([]HistoryRow, error) {
	const q = `
			SELECT
			b.id                AS booking_id,
			b.car_id            AS car_id,
			b.car_model         AS car_model,
			b.customer_username AS counterparty,
			b.duration_days     AS duration_days,
			b.total_cost        AS total_cost,
			b.created_at        AS created_at
			FROM bookings b
			WHERE b.owner_username = ?
			ORDER BY b.created_at DESC, b.id DESC`
	return r.query(ctx, q, owner)
}

func (r *repo) ListByCustomer(ctx context.Context, customer string) ([]HistoryRow, error) {
	const q = `
			SELECT
			b.id             AS booking_id,
			b.car_id         AS car_id,
			b.car_model      AS car_model,
			b.owner_username AS counterparty,
			b.duration_days  AS duration_days,
			b.total_cost     AS total_cost,
			b.created_at     AS created_at
			FROM bookings b
			WHERE b.customer_username = ?
			ORDER BY b.created_at DESC, b.id DESC`
	return r.query(ctx, q, customer)
}

func (r *repo) query(ctx context.Context, q string, args ...any) ([]HistoryRow, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryRow
	for rows.Next() {
		var h HistoryRow
		if err := rows.Scan(
			&h.BookingID, &h.CarID, &h.CarModel, &h.Counterparty,
			&h.DurationDays, &h.TotalCost, &h.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
