// model/booking.go
package model

import "time"

// Booking is immutable once created; the ledger is append-only.
// TotalCost is DailyRate x DurationDays frozen at booking time.
type Booking struct {
	ID               int64     `json:"id"`
	CustomerUsername string    `json:"customer_username"`
	CarID            int64     `json:"car_id"`
	CarModel         string    `json:"car_model"`
	OwnerUsername    string    `json:"owner_username"`
	DurationDays     int64     `json:"duration_days"`
	TotalCost        int64     `json:"total_cost"`
	CreatedAt        time.Time `json:"created_at"`
}
