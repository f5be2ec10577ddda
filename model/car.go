// model/car.go
package model

type CarStatus string

const (
	CarAvailable CarStatus = "AVAILABLE"
	CarBooked    CarStatus = "BOOKED"
)

// Car is a single listing. Status is the only mutable field and the
// transition is one-way: AVAILABLE -> BOOKED, no re-listing path.
type Car struct {
	ID            int64     `json:"id"`
	Model         string    `json:"model"`
	Category      string    `json:"category"`
	DailyRate     int64     `json:"daily_rate"`
	City          string    `json:"city"`
	OwnerUsername string    `json:"owner_username"`
	Status        CarStatus `json:"status"`
}

// AddCarReq represents a new listing payload
// swagger:model AddCarReq
type AddCarReq struct {
	Model     string `json:"model" validate:"required"`
	Category  string `json:"category" validate:"required"`
	DailyRate int64  `json:"daily_rate" validate:"gte=0"`
	City      string `json:"city" validate:"required"`
}
