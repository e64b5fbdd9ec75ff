package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/minhvt/thoitiet-api/internal/openmeteo"
)

type AppConfig struct {
	Port string

	// HTTPTimeout bounds each outbound provider call.
	HTTPTimeout time.Duration

	// Open-Meteo endpoints. Plain config constants, not secrets; neither
	// endpoint needs an API key.
	GeocodingBaseURL  string
	ForecastBaseURL   string
	GeocodingLanguage string

	// Forecast defaults.
	ForecastDays       int
	ForecastMaxEntries int

	// Client-side rate limiting of outbound Open-Meteo calls.
	UpstreamRPS   float64
	UpstreamBurst int
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.GeocodingBaseURL = getenvDefault("GEOCODING_BASE_URL", openmeteo.DefaultGeocodingBaseURL)
	cfg.ForecastBaseURL = getenvDefault("FORECAST_BASE_URL", openmeteo.DefaultForecastBaseURL)
	cfg.GeocodingLanguage = getenvDefault("GEOCODING_LANGUAGE", "vi")

	cfg.ForecastDays = getenvInt("FORECAST_DAYS", 5)
	if cfg.ForecastDays < 1 || cfg.ForecastDays > 7 {
		return nil, fmt.Errorf("FORECAST_DAYS must be between 1 and 7, got %d", cfg.ForecastDays)
	}
	cfg.ForecastMaxEntries = getenvInt("FORECAST_MAX_ENTRIES", 40)

	cfg.UpstreamRPS = getenvFloat("UPSTREAM_RPS", 8)
	cfg.UpstreamBurst = getenvInt("UPSTREAM_BURST", 4)

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
