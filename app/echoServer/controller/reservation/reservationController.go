package reservation

import (
	"log/slog"
	"net/http"

	"urbanwheels/app/echoServer/jwtx"
	rs "urbanwheels/service/reservation"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc rs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/reservations/quote
func (h *Controller) Quote(c echo.Context) error {
	var req ReserveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	q, err := h.Svc.Quote(c.Request().Context(), req.CarID, req.DurationDays)
	if err != nil {
		h.Log.Error("reservation quote", "err", err)
		switch rs.Code(err) {
		case rs.ErrInvalidSelection:
			return c.JSON(http.StatusConflict, echo.Map{"message": "car not available"})
		case rs.ErrInvalidDuration:
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"message": "duration must be positive"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"quote": q})
}

// POST /v1/reservations
func (h *Controller) Reserve(c echo.Context) error {
	var req ReserveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	customer, err := jwtx.UsernameFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	b, err := h.Svc.Reserve(c.Request().Context(), customer, req.CarID, req.DurationDays)
	if err != nil {
		h.Log.Error("reserve", "err", err)
		switch rs.Code(err) {
		case rs.ErrInvalidSelection:
			return c.JSON(http.StatusConflict, echo.Map{"message": "car not available"})
		case rs.ErrInvalidDuration:
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"message": "duration must be positive"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "booking confirmed",
		"booking": b,
	})
}

// GET /v1/bookings/my
func (h *Controller) MyBookings(c echo.Context) error {
	customer, err := jwtx.UsernameFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	rows, err := h.Svc.MyBookings(c.Request().Context(), customer)
	if err != nil {
		h.Log.Error("my bookings", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/bookings/owner
func (h *Controller) OwnerBookings(c echo.Context) error {
	owner, err := jwtx.UsernameFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	rows, err := h.Svc.OwnerBookings(c.Request().Context(), owner)
	if err != nil {
		h.Log.Error("owner bookings", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
