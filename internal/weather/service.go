package weather

import (
	"context"
	"log"

	"github.com/minhvt/thoitiet-api/internal/openmeteo"
)

// coordinateLookupName labels locations synthesized for coordinate lookups.
const coordinateLookupName = "Vị trí hiện tại"

// Geocoder resolves free-text place names. Satisfied by
// *openmeteo.GeocoderClient; test doubles plug in here.
type Geocoder interface {
	Resolve(ctx context.Context, query string) (openmeteo.Place, error)
	Search(ctx context.Context, query string, limit int) ([]openmeteo.Place, error)
}

// ForecastFetcher fetches raw provider payloads for resolved coordinates.
// Satisfied by *openmeteo.ForecastClient.
type ForecastFetcher interface {
	FetchCurrent(ctx context.Context, lat, lon float64) (openmeteo.CurrentResponse, error)
	FetchHourly(ctx context.Context, lat, lon float64, days int) (openmeteo.HourlyResponse, error)
}

// Service is the weather facade: resolve, fetch, normalize. It is the only
// interface callers see. On any resolution or upstream failure the facade
// substitutes a synthetic placeholder (marked Synthetic) instead of
// propagating the error, so callers always receive a renderable object.
//
// Each call is independent: no cache, no shared state, no coalescing of
// concurrent identical queries.
type Service struct {
	geocoder     Geocoder
	forecasts    ForecastFetcher
	forecastDays int
	maxEntries   int
}

// NewService constructs the facade. forecastDays and maxSeriesEntries fall
// back to 5 and DefaultMaxSeriesEntries when non-positive.
func NewService(geocoder Geocoder, forecasts ForecastFetcher, forecastDays, maxSeriesEntries int) *Service {
	if forecastDays <= 0 {
		forecastDays = 5
	}
	if maxSeriesEntries <= 0 {
		maxSeriesEntries = DefaultMaxSeriesEntries
	}
	return &Service{
		geocoder:     geocoder,
		forecasts:    forecasts,
		forecastDays: forecastDays,
		maxEntries:   maxSeriesEntries,
	}
}

// GetCurrentWeather resolves the city query, fetches current conditions,
// and normalizes them. Geocoding strictly precedes the forecast fetch; the
// fetch needs resolved coordinates.
func (s *Service) GetCurrentWeather(ctx context.Context, city string) CurrentConditions {
	place, err := s.geocoder.Resolve(ctx, city)
	if err != nil {
		log.Printf("weather: resolve failed for %q, serving placeholder: %v", city, err)
		return placeholderCurrent(city)
	}

	raw, err := s.forecasts.FetchCurrent(ctx, place.Latitude, place.Longitude)
	if err != nil {
		log.Printf("weather: current fetch failed for %q, serving placeholder: %v", city, err)
		return placeholderCurrent(city)
	}

	return CurrentFromPayload(raw.Current, raw.Hourly.Temperature2m, locationFromPlace(place))
}

// GetWeatherByCoordinates is the coordinate variant of GetCurrentWeather.
// Geocoding is skipped; the location carries a fixed display name.
func (s *Service) GetWeatherByCoordinates(ctx context.Context, lat, lon float64) CurrentConditions {
	loc := Location{
		Name:        coordinateLookupName,
		Latitude:    lat,
		Longitude:   lon,
		CountryCode: "VN",
	}

	raw, err := s.forecasts.FetchCurrent(ctx, lat, lon)
	if err != nil {
		log.Printf("weather: current fetch failed for (%.4f, %.4f), serving placeholder: %v", lat, lon, err)
		return placeholderCurrent(coordinateLookupName)
	}

	return CurrentFromPayload(raw.Current, raw.Hourly.Temperature2m, loc)
}

// GetForecast resolves the city query, fetches the hourly series, and
// resamples it into the canonical forecast. days <= 0 uses the configured
// default.
func (s *Service) GetForecast(ctx context.Context, city string, days int) ForecastSeries {
	if days <= 0 {
		days = s.forecastDays
	}

	place, err := s.geocoder.Resolve(ctx, city)
	if err != nil {
		log.Printf("weather: resolve failed for %q, serving placeholder forecast: %v", city, err)
		return placeholderSeries(city, s.maxEntries)
	}

	raw, err := s.forecasts.FetchHourly(ctx, place.Latitude, place.Longitude, days)
	if err != nil {
		log.Printf("weather: hourly fetch failed for %q, serving placeholder forecast: %v", city, err)
		return placeholderSeries(city, s.maxEntries)
	}

	return SeriesFromHourly(raw.Hourly, locationFromPlace(place), s.maxEntries)
}

// SearchLocations returns up to limit matching places for a free-text
// query. This is a collaborator surface, not part of the fallback-guarded
// facade trio, so errors propagate.
func (s *Service) SearchLocations(ctx context.Context, query string, limit int) ([]Location, error) {
	places, err := s.geocoder.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	locs := make([]Location, 0, len(places))
	for _, p := range places {
		locs = append(locs, locationFromPlace(p))
	}
	return locs, nil
}

func locationFromPlace(p openmeteo.Place) Location {
	return Location{
		Name:        p.Name,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		CountryCode: p.CountryCode,
		Admin1:      p.Admin1,
		Population:  p.Population,
	}
}
