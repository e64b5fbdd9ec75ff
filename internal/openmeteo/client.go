// Package openmeteo contains HTTP clients for the Open-Meteo geocoding and
// forecast endpoints. Neither endpoint requires an API key; both are
// idempotent GETs and safe to retry.
package openmeteo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

var (
	// ErrNoResults is returned when a geocoding query matches zero places.
	ErrNoResults = errors.New("geocoding returned no results")

	// ErrMalformedResponse is returned when an upstream body cannot be
	// decoded into the expected shape.
	ErrMalformedResponse = errors.New("malformed upstream response")

	errCircuitOpen   = errors.New("circuit breaker open")
	errNoHTTPClient  = errors.New("http client not configured")
	errInvalidConfig = errors.New("invalid backoff configuration")
)

// UpstreamError reports a transport failure or non-2xx status from an
// Open-Meteo endpoint.
type UpstreamError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("openmeteo %s: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("openmeteo %s: unexpected status %d", e.Endpoint, e.StatusCode)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// retryable reports whether the failure is worth another attempt.
func (e *UpstreamError) retryable() bool {
	if e.Err != nil {
		return true // transport failure
	}
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// BackoffConfig controls exponential backoff behaviour.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// HTTPClientConfig bundles HTTP client and resilience settings.
type HTTPClientConfig struct {
	Client  *http.Client
	Backoff BackoffConfig
}

func defaultBackoff() BackoffConfig {
	return BackoffConfig{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
	}
}

func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
}

func newLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		rps = 8
	}
	if burst <= 0 {
		burst = 4
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// transport is the shared outbound plumbing for both clients: rate limiting,
// retries with exponential backoff, and a circuit breaker per endpoint.
type transport struct {
	endpoint string
	httpCfg  HTTPClientConfig
	circuit  *gobreaker.CircuitBreaker
	limiter  *rate.Limiter
}

func (t *transport) do(ctx context.Context, buildRequest func() (*http.Request, error)) (*http.Response, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	return doRequestWithResilience(ctx, t.endpoint, t.httpCfg, t.circuit, buildRequest)
}

// doRequestWithResilience executes the HTTP request with retries,
// exponential backoff, and a circuit breaker. Non-retryable upstream
// failures (4xx other than 429) propagate immediately.
func doRequestWithResilience(
	ctx context.Context,
	endpoint string,
	cfg HTTPClientConfig,
	cb *gobreaker.CircuitBreaker,
	buildRequest func() (*http.Request, error),
) (*http.Response, error) {
	if cfg.Client == nil {
		return nil, errNoHTTPClient
	}
	if cfg.Backoff.MaxRetries < 0 || cfg.Backoff.InitialInterval <= 0 {
		return nil, errInvalidConfig
	}

	var attempt int
	var lastErr error

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := buildRequest()
		if err != nil {
			return nil, err
		}

		// Ensure the request obeys context cancellation.
		req = req.WithContext(ctx)

		result, err := cb.Execute(func() (interface{}, error) {
			resp, execErr := cfg.Client.Do(req)
			if execErr != nil {
				return nil, &UpstreamError{Endpoint: endpoint, Err: execErr}
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				resp.Body.Close()
				return nil, &UpstreamError{Endpoint: endpoint, StatusCode: resp.StatusCode}
			}
			return resp, nil
		})

		if err == nil {
			resp, ok := result.(*http.Response)
			if !ok {
				return nil, fmt.Errorf("unexpected result type from circuit breaker")
			}
			return resp, nil
		}

		// If the circuit is open, propagate immediately.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		var ue *UpstreamError
		if errors.As(err, &ue) && !ue.retryable() {
			return nil, err
		}

		lastErr = err
		if attempt >= cfg.Backoff.MaxRetries {
			return nil, lastErr
		}

		// Backoff with exponential delay.
		delay := cfg.Backoff.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if delay > cfg.Backoff.MaxInterval && cfg.Backoff.MaxInterval > 0 {
			delay = cfg.Backoff.MaxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
			// continue to next attempt
		}

		attempt++
	}
}
