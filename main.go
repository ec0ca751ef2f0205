package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/voltride/rental-service/config"
	"github.com/voltride/rental-service/internal/consumer"
	"github.com/voltride/rental-service/internal/handler"
	"github.com/voltride/rental-service/internal/middleware"
	"github.com/voltride/rental-service/internal/repository"
	"github.com/voltride/rental-service/internal/service"
	"github.com/voltride/rental-service/pkg/database"
	"github.com/voltride/rental-service/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ consumer: sync the vehicle/station directory from the fleet service
	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}

	fleetConsumer := consumer.NewFleetConsumer(db)
	fleetConsumer.Start(msgs)

	// RabbitMQ publisher: booking lifecycle events for the notification layer
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to create RabbitMQ publisher: %v", err)
	}
	defer publisher.Close()

	// Repositories
	bookingRepo := repository.NewBookingRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	stationRepo := repository.NewStationRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	penaltyRepo := repository.NewPenaltyRepository(db)

	// Services
	bookingSvc := service.NewBookingService(bookingRepo, vehicleRepo, stationRepo, customerRepo, penaltyRepo, publisher)
	penaltySvc := service.NewPenaltyService(penaltyRepo, bookingRepo, customerRepo, publisher)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "rental-service"})
	})

	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e)
	handler.NewPenaltyHandler(penaltySvc).RegisterRoutes(e)

	log.Printf("Rental Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
