package echoServer

import (
	"net/http"

	"urbanwheels/app/echoServer/controller/auth"
	"urbanwheels/app/echoServer/controller/billing"
	"urbanwheels/app/echoServer/controller/catalog"
	"urbanwheels/app/echoServer/controller/reservation"
	"urbanwheels/app/echoServer/jwtx"
	"urbanwheels/model"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth        *auth.Controller
	Catalog     *catalog.Controller
	Reservation *reservation.Controller
	Billing     *billing.Controller
	JWTSecret   string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)

	// Billing quotes are stateless; no session needed.
	pub.POST("/billing/quote", c.Billing.Quote)

	// Auth
	auth := e.Group("/v1")
	auth.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))

	// Catalog views
	auth.GET("/cars", c.Catalog.ListAvailable)
	auth.GET("/cars/search", c.Catalog.SearchByCity)
	auth.GET("/cars/by-rate", c.Catalog.SortByRate)

	// Owner endpoints
	auth.POST("/cars", c.Catalog.AddCar, requireRole(model.RoleOwner))
	auth.GET("/bookings/owner", c.Reservation.OwnerBookings, requireRole(model.RoleOwner))

	// Customer endpoints
	auth.POST("/reservations/quote", c.Reservation.Quote, requireRole(model.RoleCustomer))
	auth.POST("/reservations", c.Reservation.Reserve, requireRole(model.RoleCustomer))
	auth.GET("/bookings/my", c.Reservation.MyBookings, requireRole(model.RoleCustomer))
}

func requireRole(role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			r, err := jwtx.RoleFromContext(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			if model.Role(r) != role {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
			}
			return next(c)
		}
	}
}
