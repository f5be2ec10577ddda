package billing

import (
	"log/slog"
	"net/http"

	bs "urbanwheels/service/billing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type QuoteReq struct {
	Gender   string `json:"gender" validate:"required,oneof=male female"`
	Age      int64  `json:"age" validate:"required,gt=0"`
	Subtotal int64  `json:"subtotal" validate:"gte=0"`
}

type Controller struct {
	Svc bs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/billing/quote
func (h *Controller) Quote(c echo.Context) error {
	var req QuoteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	q, err := h.Svc.Quote(req.Gender, req.Age, req.Subtotal)
	if err != nil {
		h.Log.Error("billing quote", "err", err)
		switch bs.Code(err) {
		case bs.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"quote": q})
}
