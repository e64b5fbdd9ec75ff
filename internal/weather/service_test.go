package weather

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/minhvt/thoitiet-api/internal/openmeteo"
)

type stubGeocoder struct {
	place      openmeteo.Place
	resolveErr error
	results    []openmeteo.Place
	searchErr  error
}

func (s stubGeocoder) Resolve(ctx context.Context, query string) (openmeteo.Place, error) {
	return s.place, s.resolveErr
}

func (s stubGeocoder) Search(ctx context.Context, query string, limit int) ([]openmeteo.Place, error) {
	return s.results, s.searchErr
}

type stubFetcher struct {
	current    openmeteo.CurrentResponse
	currentErr error
	hourly     openmeteo.HourlyResponse
	hourlyErr  error
}

func (s stubFetcher) FetchCurrent(ctx context.Context, lat, lon float64) (openmeteo.CurrentResponse, error) {
	return s.current, s.currentErr
}

func (s stubFetcher) FetchHourly(ctx context.Context, lat, lon float64, days int) (openmeteo.HourlyResponse, error) {
	return s.hourly, s.hourlyErr
}

func hanoiPlace() openmeteo.Place {
	return openmeteo.Place{
		Name:        "Hà Nội",
		Latitude:    21.0285,
		Longitude:   105.8542,
		CountryCode: "VN",
	}
}

func liveCurrentResponse() openmeteo.CurrentResponse {
	var resp openmeteo.CurrentResponse
	resp.Current = openmeteo.CurrentObservation{
		Time:               time.Now().Format("2006-01-02T15:04"),
		Temperature2m:      27.5,
		RelativeHumidity2m: 65,
		WeatherCode:        3,
		WindSpeed10m:       11,
		WindDirection10m:   135,
	}
	resp.Hourly.Temperature2m = []float64{25, 26, 27.5, 28, 29, 27}
	return resp
}

func TestGetCurrentWeatherSuccess(t *testing.T) {
	svc := NewService(
		stubGeocoder{place: hanoiPlace()},
		stubFetcher{current: liveCurrentResponse()},
		0, 0,
	)

	cc := svc.GetCurrentWeather(context.Background(), "Hà Nội")

	if cc.Synthetic {
		t.Fatal("successful fetch must not be synthetic")
	}
	if cc.Location.Name != "Hà Nội" {
		t.Errorf("location name = %q, want resolved name", cc.Location.Name)
	}
	if cc.TemperatureC < -5 || cc.TemperatureC > 45 {
		t.Errorf("temperature %v outside plausible range", cc.TemperatureC)
	}
	switch cc.Condition.Category {
	case CategoryClear, CategoryClouds, CategoryMist, CategoryDrizzle, CategoryRain, CategoryStorm, CategoryUnknown:
	default:
		t.Errorf("unexpected condition category %q", cc.Condition.Category)
	}
}

func TestGetCurrentWeatherResolveFailure(t *testing.T) {
	svc := NewService(
		stubGeocoder{resolveErr: openmeteo.ErrNoResults},
		stubFetcher{},
		0, 0,
	)

	cc := svc.GetCurrentWeather(context.Background(), "Xyzzyqq123")

	if !cc.Synthetic {
		t.Fatal("fallback result must be marked synthetic")
	}
	if cc.Location.Name != "Xyzzyqq123" {
		t.Errorf("placeholder location name = %q, want the original query", cc.Location.Name)
	}
	if cc.PressureHpa == 0 || cc.Condition.Description == "" {
		t.Error("placeholder must be structurally valid")
	}
}

func TestGetCurrentWeatherUpstreamFailure(t *testing.T) {
	svc := NewService(
		stubGeocoder{place: hanoiPlace()},
		stubFetcher{currentErr: &openmeteo.UpstreamError{Endpoint: "forecast", StatusCode: 503}},
		0, 0,
	)

	cc := svc.GetCurrentWeather(context.Background(), "Hà Nội")
	if !cc.Synthetic {
		t.Fatal("upstream failure must fall back to synthetic placeholder")
	}
}

func TestGetWeatherByCoordinates(t *testing.T) {
	svc := NewService(
		stubGeocoder{},
		stubFetcher{current: liveCurrentResponse()},
		0, 0,
	)

	cc := svc.GetWeatherByCoordinates(context.Background(), 21.03, 105.85)

	if cc.Synthetic {
		t.Fatal("successful fetch must not be synthetic")
	}
	if cc.Location.Name != "Vị trí hiện tại" {
		t.Errorf("location name = %q, want coordinate placeholder name", cc.Location.Name)
	}
	if cc.Location.Latitude != 21.03 || cc.Location.Longitude != 105.85 {
		t.Errorf("location coords = (%v, %v), want caller coordinates", cc.Location.Latitude, cc.Location.Longitude)
	}
}

func TestGetForecastSuccess(t *testing.T) {
	start := time.Date(2025, 3, 15, 0, 0, 0, 0, time.Local)
	var hourly openmeteo.HourlyResponse
	hourly.Hourly = openmeteo.HourlySeries{
		Time:          hourlyTimes(start, 48),
		Temperature2m: make([]float64, 48),
		WeatherCode:   make([]int, 48),
	}

	svc := NewService(
		stubGeocoder{place: hanoiPlace()},
		stubFetcher{hourly: hourly},
		5, 40,
	)

	series := svc.GetForecast(context.Background(), "Hà Nội", 0)

	if series.Synthetic {
		t.Fatal("successful fetch must not be synthetic")
	}
	if len(series.Entries) != 16 {
		t.Errorf("got %d entries, want 16 from 48 hourly samples", len(series.Entries))
	}
	if series.Location.Name != "Hà Nội" {
		t.Errorf("location name = %q, want resolved name", series.Location.Name)
	}
}

func TestGetForecastFailureFallsBack(t *testing.T) {
	svc := NewService(
		stubGeocoder{place: hanoiPlace()},
		stubFetcher{hourlyErr: errors.New("connection refused")},
		5, 40,
	)

	series := svc.GetForecast(context.Background(), "Đà Nẵng", 0)

	if !series.Synthetic {
		t.Fatal("fallback forecast must be marked synthetic")
	}
	if series.Location.Name != "Đà Nẵng" {
		t.Errorf("placeholder location name = %q, want the original query", series.Location.Name)
	}
	if len(series.Entries) != 40 {
		t.Errorf("placeholder has %d entries, want 40", len(series.Entries))
	}
	for i := 1; i < len(series.Entries); i++ {
		if series.Entries[i].EpochSeconds <= series.Entries[i-1].EpochSeconds {
			t.Fatalf("placeholder entries not strictly increasing at %d", i)
		}
	}
}

func TestSearchLocations(t *testing.T) {
	svc := NewService(
		stubGeocoder{results: []openmeteo.Place{hanoiPlace()}},
		stubFetcher{},
		0, 0,
	)

	locs, err := svc.SearchLocations(context.Background(), "Hà", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(locs) != 1 || locs[0].Name != "Hà Nội" {
		t.Errorf("unexpected results: %+v", locs)
	}
}

func TestSearchLocationsPropagatesError(t *testing.T) {
	wantErr := &openmeteo.UpstreamError{Endpoint: "geocoding", StatusCode: 502}
	svc := NewService(stubGeocoder{searchErr: wantErr}, stubFetcher{}, 0, 0)

	_, err := svc.SearchLocations(context.Background(), "Hà", 5)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected upstream error to propagate, got %v", err)
	}
}
