package catalog

import (
	"log/slog"
	"net/http"

	"urbanwheels/app/echoServer/jwtx"
	"urbanwheels/model"
	cs "urbanwheels/service/catalog"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc cs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/cars
func (h *Controller) AddCar(c echo.Context) error {
	var req model.AddCarReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	owner, err := jwtx.UsernameFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	car, err := h.Svc.AddCar(c.Request().Context(), owner, req)
	if err != nil {
		h.Log.Error("add car", "err", err)
		switch cs.Code(err) {
		case cs.ErrInvalidRate:
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"message": "daily rate must be non-negative"})
		case cs.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"car": car})
}

// GET /v1/cars
func (h *Controller) ListAvailable(c echo.Context) error {
	cars, err := h.Svc.ListAvailable(c.Request().Context())
	if err != nil {
		h.Log.Error("list cars", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": cars})
}

// GET /v1/cars/search?city=
func (h *Controller) SearchByCity(c echo.Context) error {
	city := c.QueryParam("city")
	if city == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "city query required"})
	}
	cars, err := h.Svc.FilterByCity(c.Request().Context(), city)
	if err != nil {
		h.Log.Error("search cars", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	// Empty result is a valid, empty page.
	return c.JSON(http.StatusOK, echo.Map{"data": cars})
}

// GET /v1/cars/by-rate
func (h *Controller) SortByRate(c echo.Context) error {
	cars, err := h.Svc.SortByRate(c.Request().Context())
	if err != nil {
		h.Log.Error("sort cars", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": cars})
}
