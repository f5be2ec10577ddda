package reservation

type ReserveReq struct {
	CarID        int64 `json:"car_id" validate:"required,gt=0"`
	DurationDays int64 `json:"duration_days" validate:"required,gt=0"`
}
