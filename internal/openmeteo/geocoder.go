package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// DefaultGeocodingBaseURL is the public Open-Meteo geocoding API.
const DefaultGeocodingBaseURL = "https://geocoding-api.open-meteo.com/v1"

// Place is a single geocoding match in upstream ranking order.
type Place struct {
	Name        string
	Latitude    float64
	Longitude   float64
	CountryCode string
	Admin1      string
	Population  int64
}

// GeocoderClient resolves free-text place names against the Open-Meteo
// geocoding endpoint.
type GeocoderClient struct {
	baseURL  string
	language string
	tr       transport
}

// NewGeocoderClient creates a geocoder client. language selects the locale
// of returned place names (e.g. "vi"). rps/burst bound outbound call rate.
func NewGeocoderClient(client *http.Client, baseURL, language string, rps float64, burst int) *GeocoderClient {
	if baseURL == "" {
		baseURL = DefaultGeocodingBaseURL
	}
	if language == "" {
		language = "vi"
	}
	return &GeocoderClient{
		baseURL:  baseURL,
		language: language,
		tr: transport{
			endpoint: "geocoding",
			httpCfg: HTTPClientConfig{
				Client:  client,
				Backoff: defaultBackoff(),
			},
			circuit: newCircuitBreaker("openmeteo-geocoding"),
			limiter: newLimiter(rps, burst),
		},
	}
}

// Search returns up to limit places matching the query, in upstream ranking
// order. A query matching nothing yields an empty slice, not an error.
func (c *GeocoderClient) Search(ctx context.Context, query string, limit int) ([]Place, error) {
	if limit <= 0 {
		limit = 5
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("name", query)
		values.Set("count", strconv.Itoa(limit))
		values.Set("language", c.language)
		values.Set("format", "json")

		u := fmt.Sprintf("%s/search?%s", c.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := c.tr.do(ctx, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Results []struct {
			Name        string  `json:"name"`
			Latitude    float64 `json:"latitude"`
			Longitude   float64 `json:"longitude"`
			CountryCode string  `json:"country_code"`
			Admin1      string  `json:"admin1"`
			Population  int64   `json:"population"`
		} `json:"results"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	places := make([]Place, 0, len(payload.Results))
	for _, r := range payload.Results {
		places = append(places, Place{
			Name:        r.Name,
			Latitude:    r.Latitude,
			Longitude:   r.Longitude,
			CountryCode: r.CountryCode,
			Admin1:      r.Admin1,
			Population:  r.Population,
		})
	}
	return places, nil
}

// Resolve maps a free-text query to the single best place, trusting the
// upstream ranking (index 0). Fails with ErrNoResults on zero matches.
func (c *GeocoderClient) Resolve(ctx context.Context, query string) (Place, error) {
	places, err := c.Search(ctx, query, 1)
	if err != nil {
		return Place{}, err
	}
	if len(places) == 0 {
		return Place{}, fmt.Errorf("%w: %q", ErrNoResults, query)
	}
	return places[0], nil
}
