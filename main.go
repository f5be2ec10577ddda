// Package main Urban Wheels API.
//
// @title           Urban Wheels Mini API
// @version         1.0
// @description     car rental marketplace (accounts, catalog, reservations, billing).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"urbanwheels/app/console"
	"urbanwheels/app/echoServer"
	authctrl "urbanwheels/app/echoServer/controller/auth"
	billingctrl "urbanwheels/app/echoServer/controller/billing"
	catalogctrl "urbanwheels/app/echoServer/controller/catalog"
	reservationctrl "urbanwheels/app/echoServer/controller/reservation"
	"urbanwheels/app/echoServer/validation"
	"urbanwheels/config"
	bookingrepo "urbanwheels/repository/booking"
	carrepo "urbanwheels/repository/car"
	userrepo "urbanwheels/repository/user"
	authsvc "urbanwheels/service/auth"
	billingsvc "urbanwheels/service/billing"
	catalogsvc "urbanwheels/service/catalog"
	reservationsvc "urbanwheels/service/reservation"
	"urbanwheels/util/database"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	// DB: in-memory SQLite, gone on exit
	db, err := database.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Error("db open failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	cr := carrepo.New(db)
	br := bookingrepo.New(db)

	// services
	as := authsvc.New(ur, cfg.JWTSecret)
	cs := catalogsvc.New(cr)
	rs := reservationsvc.New(db, cr, br)
	bs := billingsvc.New()

	if len(os.Args) > 1 && os.Args[1] == "serve" {
		serve(cfg, log, as, cs, rs, bs)
		return
	}

	// Default: the interactive console on stdin/stdout.
	ui := console.New(os.Stdin, os.Stdout, as, cs, rs, bs, log)
	ui.Run(ctx)
}

func serve(cfg config.App, log *slog.Logger, as authsvc.Service, cs catalogsvc.Service, rs reservationsvc.Service, bs billingsvc.Service) {
	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	catalogC := &catalogctrl.Controller{Svc: cs, V: v, Log: log}
	reservationC := &reservationctrl.Controller{Svc: rs, V: v, Log: log}
	billingC := &billingctrl.Controller{Svc: bs, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:        authC,
		Catalog:     catalogC,
		Reservation: reservationC,
		Billing:     billingC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	slog.Info("starting server", "port", port)

	e.Logger.Fatal(e.Start(":" + port))
}
