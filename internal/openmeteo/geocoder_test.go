package openmeteo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestGeocoder(t *testing.T, handler http.HandlerFunc) *GeocoderClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGeocoderClient(srv.Client(), srv.URL, "vi", 100, 10)
}

func TestSearchBuildsQuery(t *testing.T) {
	var gotQuery map[string]string

	client := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"name":     r.URL.Query().Get("name"),
			"count":    r.URL.Query().Get("count"),
			"language": r.URL.Query().Get("language"),
			"format":   r.URL.Query().Get("format"),
		}
		w.Write([]byte(`{"results":[{"name":"Hà Nội","latitude":21.0285,"longitude":105.8542,"country_code":"VN","admin1":"Hanoi","population":8053663}]}`))
	})

	places, err := client.Search(context.Background(), "Hà Nội", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotQuery["name"] != "Hà Nội" || gotQuery["count"] != "5" || gotQuery["language"] != "vi" || gotQuery["format"] != "json" {
		t.Errorf("unexpected query parameters: %v", gotQuery)
	}

	if len(places) != 1 {
		t.Fatalf("got %d places, want 1", len(places))
	}
	p := places[0]
	if p.Name != "Hà Nội" || p.CountryCode != "VN" || p.Population != 8053663 {
		t.Errorf("unexpected place: %+v", p)
	}
	if p.Latitude < 21.02 || p.Latitude > 21.04 || p.Longitude < 105.84 || p.Longitude > 105.86 {
		t.Errorf("unexpected coordinates: (%v, %v)", p.Latitude, p.Longitude)
	}
}

func TestResolveTakesFirstRankedResult(t *testing.T) {
	client := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("count") != "1" {
			t.Errorf("resolve should request count=1, got %q", r.URL.Query().Get("count"))
		}
		w.Write([]byte(`{"results":[{"name":"First","latitude":1,"longitude":2},{"name":"Second","latitude":3,"longitude":4}]}`))
	})

	place, err := client.Resolve(context.Background(), "somewhere")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if place.Name != "First" {
		t.Errorf("resolved %q, want the first ranked result", place.Name)
	}
}

func TestResolveNoResults(t *testing.T) {
	client := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := client.Resolve(context.Background(), "Xyzzyqq123")
	if !errors.Is(err, ErrNoResults) {
		t.Fatalf("expected ErrNoResults, got %v", err)
	}
}

func TestSearchUpstreamStatus(t *testing.T) {
	client := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Search(context.Background(), "anything", 5)

	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if ue.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", ue.StatusCode)
	}
}

func TestSearchMalformedResponse(t *testing.T) {
	client := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := client.Search(context.Background(), "anything", 5)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}
