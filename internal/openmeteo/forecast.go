package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// DefaultForecastBaseURL is the public Open-Meteo forecast API.
const DefaultForecastBaseURL = "https://api.open-meteo.com/v1"

const (
	currentFields = "temperature_2m,relative_humidity_2m,apparent_temperature," +
		"weather_code,surface_pressure,wind_speed_10m,wind_direction_10m"
	hourlyFields = "temperature_2m,relative_humidity_2m,weather_code," +
		"wind_speed_10m,precipitation_probability"
)

// CurrentObservation is the provider-native current-conditions block.
// ApparentTemperature and SurfacePressure are pointers because the provider
// may omit them; normalization substitutes defaults.
type CurrentObservation struct {
	Time                string   `json:"time"`
	Temperature2m       float64  `json:"temperature_2m"`
	RelativeHumidity2m  float64  `json:"relative_humidity_2m"`
	ApparentTemperature *float64 `json:"apparent_temperature"`
	WeatherCode         int      `json:"weather_code"`
	SurfacePressure     *float64 `json:"surface_pressure"`
	WindSpeed10m        float64  `json:"wind_speed_10m"` // km/h, provider native
	WindDirection10m    float64  `json:"wind_direction_10m"`
}

// CurrentResponse is the raw payload for a current-conditions fetch. The
// hourly block carries the same-day temperature window used to derive
// min/max.
type CurrentResponse struct {
	Current CurrentObservation `json:"current"`
	Hourly  struct {
		Temperature2m []float64 `json:"temperature_2m"`
	} `json:"hourly"`
}

// HourlySeries holds parallel, time-indexed arrays. Fields for different
// variables are index-aligned; any of them may be shorter or absent, so
// consumers must bound-check before indexing.
type HourlySeries struct {
	Time                     []string  `json:"time"`
	Temperature2m            []float64 `json:"temperature_2m"`
	RelativeHumidity2m       []float64 `json:"relative_humidity_2m"`
	WeatherCode              []int     `json:"weather_code"`
	WindSpeed10m             []float64 `json:"wind_speed_10m"` // km/h
	PrecipitationProbability []float64 `json:"precipitation_probability"` // percent
}

// HourlyResponse is the raw payload for a multi-day hourly fetch.
type HourlyResponse struct {
	Hourly HourlySeries `json:"hourly"`
}

// ForecastClient fetches raw current and hourly data from the Open-Meteo
// forecast endpoint.
type ForecastClient struct {
	baseURL string
	tr      transport
}

// NewForecastClient creates a forecast client. rps/burst bound outbound
// call rate.
func NewForecastClient(client *http.Client, baseURL string, rps float64, burst int) *ForecastClient {
	if baseURL == "" {
		baseURL = DefaultForecastBaseURL
	}
	return &ForecastClient{
		baseURL: baseURL,
		tr: transport{
			endpoint: "forecast",
			httpCfg: HTTPClientConfig{
				Client:  client,
				Backoff: defaultBackoff(),
			},
			circuit: newCircuitBreaker("openmeteo-forecast"),
			limiter: newLimiter(rps, burst),
		},
	}
}

// FetchCurrent fetches current conditions plus a one-day hourly temperature
// window for the given coordinates.
func (c *ForecastClient) FetchCurrent(ctx context.Context, lat, lon float64) (CurrentResponse, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", formatCoord(lat))
		values.Set("longitude", formatCoord(lon))
		values.Set("current", currentFields)
		values.Set("hourly", "temperature_2m")
		values.Set("timezone", "auto")
		values.Set("forecast_days", "1")

		u := fmt.Sprintf("%s/forecast?%s", c.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := c.tr.do(ctx, buildRequest)
	if err != nil {
		return CurrentResponse{}, err
	}
	defer resp.Body.Close()

	var payload CurrentResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return CurrentResponse{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return payload, nil
}

// FetchHourly fetches the hourly series for the given coordinates over the
// requested number of days. The provider is expected to return days*24
// samples, but callers must not rely on the exact length.
func (c *ForecastClient) FetchHourly(ctx context.Context, lat, lon float64, days int) (HourlyResponse, error) {
	if days <= 0 {
		days = 5
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", formatCoord(lat))
		values.Set("longitude", formatCoord(lon))
		values.Set("hourly", hourlyFields)
		values.Set("timezone", "auto")
		values.Set("forecast_days", strconv.Itoa(days))

		u := fmt.Sprintf("%s/forecast?%s", c.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := c.tr.do(ctx, buildRequest)
	if err != nil {
		return HourlyResponse{}, err
	}
	defer resp.Body.Close()

	var payload HourlyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return HourlyResponse{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return payload, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
