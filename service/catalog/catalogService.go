package catalogsvc

import (
	"context"
	"errors"
	"strings"

	"urbanwheels/model"
)

type ErrCode string

const (
	ErrInvalidRate ErrCode = "INVALID_RATE"
	ErrBadInput    ErrCode = "BAD_INPUT"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Repo interface {
	Insert(ctx context.Context, c *model.Car) error
	ListAvailable(ctx context.Context) ([]model.Car, error)
	FilterByCity(ctx context.Context, city string) ([]model.Car, error)
	SortByRate(ctx context.Context) ([]model.Car, error)
}

type Service interface {
	// AddCar appends a listing with status AVAILABLE and a stable id.
	AddCar(ctx context.Context, owner string, req model.AddCarReq) (*model.Car, error)

	// Read views. None of them mutate the catalog and none of them ever
	// return a BOOKED car.
	ListAvailable(ctx context.Context) ([]model.Car, error)
	FilterByCity(ctx context.Context, city string) ([]model.Car, error)
	SortByRate(ctx context.Context) ([]model.Car, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) AddCar(ctx context.Context, owner string, req model.AddCarReq) (*model.Car, error) {
	if req.DailyRate < 0 {
		return nil, makeErr(ErrInvalidRate)
	}
	if strings.TrimSpace(req.Model) == "" || strings.TrimSpace(req.Category) == "" ||
		strings.TrimSpace(req.City) == "" || owner == "" {
		return nil, makeErr(ErrBadInput)
	}
	c := &model.Car{
		Model:         strings.TrimSpace(req.Model),
		Category:      strings.TrimSpace(req.Category),
		DailyRate:     req.DailyRate,
		City:          strings.TrimSpace(req.City),
		OwnerUsername: owner,
		Status:        model.CarAvailable,
	}
	if err := s.r.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) ListAvailable(ctx context.Context) ([]model.Car, error) {
	return s.r.ListAvailable(ctx)
}

func (s *service) FilterByCity(ctx context.Context, city string) ([]model.Car, error) {
	return s.r.FilterByCity(ctx, strings.TrimSpace(city))
}

func (s *service) SortByRate(ctx context.Context) ([]model.Car, error) {
	return s.r.SortByRate(ctx)
}
