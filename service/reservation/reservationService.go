// Package reservationsvc executes the book-a-car transition: it is the only
// component that mutates car availability or appends to the booking ledger.
package reservationsvc

import (
	"context"
	"database/sql"
	"errors"

	"urbanwheels/model"
	bookingrepo "urbanwheels/repository/booking"
)

// errors used by controllers

type ErrCode string

const (
	// ErrInvalidSelection covers both an unknown car id and a car that is
	// no longer AVAILABLE; the caller's snapshot has simply gone stale.
	ErrInvalidSelection ErrCode = "INVALID_SELECTION"
	ErrInvalidDuration  ErrCode = "INVALID_DURATION"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Quote is the pre-commit half of the confirmation gate: cost for a stale or
// declined quote never touches state.
type Quote struct {
	Car          model.Car `json:"car"`
	DurationDays int64     `json:"duration_days"`
	TotalCost    int64     `json:"total_cost"`
}

type CarRepo interface {
	ByID(ctx context.Context, id int64) (*model.Car, error)
	MarkBooked(ctx context.Context, tx *sql.Tx, carID int64) (bool, error)
}

type LedgerRepo interface {
	Insert(ctx context.Context, tx *sql.Tx, b *model.Booking) error
	ListByOwner(ctx context.Context, owner string) ([]bookingrepo.HistoryRow, error)
	ListByCustomer(ctx context.Context, customer string) ([]bookingrepo.HistoryRow, error)
}

type Service interface {
	// Quote re-validates the selection and returns the frozen cost without
	// committing anything.
	Quote(ctx context.Context, carID, days int64) (*Quote, error)

	// Reserve commits the AVAILABLE -> BOOKED transition and appends the
	// booking. The transition is terminal; there is no cancellation or
	// return operation in this model.
	Reserve(ctx context.Context, customer string, carID, days int64) (*model.Booking, error)

	OwnerBookings(ctx context.Context, owner string) ([]bookingrepo.HistoryRow, error)
	MyBookings(ctx context.Context, customer string) ([]bookingrepo.HistoryRow, error)
}

type service struct {
	db *sql.DB
	cr CarRepo
	lr LedgerRepo
}

func New(db *sql.DB, cr CarRepo, lr LedgerRepo) Service {
	return &service{db: db, cr: cr, lr: lr}
}

func (s *service) Quote(ctx context.Context, carID, days int64) (*Quote, error) {
	if days <= 0 {
		return nil, makeErr(ErrInvalidDuration)
	}
	car, err := s.cr.ByID(ctx, carID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrInvalidSelection)
		}
		return nil, err
	}
	if car.Status != model.CarAvailable {
		return nil, makeErr(ErrInvalidSelection)
	}
	return &Quote{
		Car:          *car,
		DurationDays: days,
		TotalCost:    car.DailyRate * days,
	}, nil
}

// Reserve flips availability and appends the booking in one transaction.
// The guarded MarkBooked update is the critical section: when two attempts
// race on the same car, exactly one sees the flip succeed and the other
// fails with INVALID_SELECTION.
func (s *service) Reserve(ctx context.Context, customer string, carID, days int64) (b *model.Booking, err error) {
	if days <= 0 {
		return nil, makeErr(ErrInvalidDuration)
	}

	car, err := s.cr.ByID(ctx, carID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrInvalidSelection)
		}
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	flipped, err := s.cr.MarkBooked(ctx, tx, carID)
	if err != nil {
		return nil, err
	}
	if !flipped {
		err = makeErr(ErrInvalidSelection)
		return nil, err
	}

	b = &model.Booking{
		CustomerUsername: customer,
		CarID:            car.ID,
		CarModel:         car.Model,
		OwnerUsername:    car.OwnerUsername,
		DurationDays:     days,
		TotalCost:        car.DailyRate * days,
	}
	if err = s.lr.Insert(ctx, tx, b); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) OwnerBookings(ctx context.Context, owner string) ([]bookingrepo.HistoryRow, error) {
	return s.lr.ListByOwner(ctx, owner)
}

func (s *service) MyBookings(ctx context.Context, customer string) ([]bookingrepo.HistoryRow, error) {
	return s.lr.ListByCustomer(ctx, customer)
}
