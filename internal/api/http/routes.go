package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/minhvt/thoitiet-api/internal/format"
	"github.com/minhvt/thoitiet-api/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		var q cityQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		cc := service.GetCurrentWeather(c.UserContext(), q.City)
		return c.JSON(currentResponse(cc))
	})

	v1.Get("/weather/current/by-coords", func(c *fiber.Ctx) error {
		var q coordsQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		cc := service.GetWeatherByCoordinates(c.UserContext(), q.Lat, q.Lon)
		return c.JSON(currentResponse(cc))
	})

	v1.Get("/weather/forecast", func(c *fiber.Ctx) error {
		var q forecastQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		series := service.GetForecast(c.UserContext(), q.City, q.Days)
		return c.JSON(series)
	})

	v1.Get("/locations/search", func(c *fiber.Ctx) error {
		var q searchQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		locs, err := service.SearchLocations(c.UserContext(), q.Query, 5)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "location search failed")
		}
		return c.JSON(fiber.Map{"results": locs})
	})
}

// currentResponse wraps canonical data with its display annotations.
func currentResponse(cc weather.CurrentConditions) fiber.Map {
	return fiber.Map{
		"data": cc,
		"display": fiber.Map{
			"temperature":   format.Temperature(cc.TemperatureC),
			"feelsLike":     format.Temperature(cc.FeelsLikeC),
			"windDirection": format.CompassFromBearing(cc.WindBearingDeg),
		},
	}
}

// cityQuery holds the query parameter identifying a location by name.
type cityQuery struct {
	City string `validate:"required"`
}

func (q *cityQuery) bind(c *fiber.Ctx) error {
	q.City = c.Query("city")
	return validate.Struct(q)
}

// coordsQuery holds query parameters for a coordinate lookup.
type coordsQuery struct {
	Lat float64 `validate:"latitude"`
	Lon float64 `validate:"longitude"`
}

func (q *coordsQuery) bind(c *fiber.Ctx) error {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		return errors.New("lat and lon query parameters are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return errors.New("invalid lat value")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return errors.New("invalid lon value")
	}

	q.Lat = lat
	q.Lon = lon
	return validate.Struct(q)
}

// forecastQuery holds query parameters for the forecast endpoint. Days is
// optional; zero means the service default.
type forecastQuery struct {
	City string `validate:"required"`
	Days int    `validate:"omitempty,min=1,max=7"`
}

func (q *forecastQuery) bind(c *fiber.Ctx) error {
	q.City = c.Query("city")

	if daysStr := c.Query("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			return errors.New("invalid days value")
		}
		q.Days = days
	}

	return validate.Struct(q)
}

// searchQuery holds the free-text location search parameter.
type searchQuery struct {
	Query string `validate:"required"`
}

func (q *searchQuery) bind(c *fiber.Ctx) error {
	q.Query = c.Query("q")
	return validate.Struct(q)
}
