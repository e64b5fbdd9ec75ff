package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/minhvt/thoitiet-api/internal/api/http"
	"github.com/minhvt/thoitiet-api/internal/config"
	"github.com/minhvt/thoitiet-api/internal/openmeteo"
	"github.com/minhvt/thoitiet-api/internal/weather"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Open-Meteo clients with resilience (backoff + circuit breaker + rate limit).
	geocoder := openmeteo.NewGeocoderClient(httpClient, cfg.GeocodingBaseURL, cfg.GeocodingLanguage, cfg.UpstreamRPS, cfg.UpstreamBurst)
	forecasts := openmeteo.NewForecastClient(httpClient, cfg.ForecastBaseURL, cfg.UpstreamRPS, cfg.UpstreamBurst)

	// Facade orchestrating resolve -> fetch -> normalize with placeholder fallback.
	service := weather.NewService(geocoder, forecasts, cfg.ForecastDays, cfg.ForecastMaxEntries)

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "thoitiet-api",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "thoitiet-api",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	// Start server with graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
