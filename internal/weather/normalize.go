package weather

import (
	"math"
	"time"

	"github.com/minhvt/thoitiet-api/internal/openmeteo"
)

const (
	// observationTimeLayout matches Open-Meteo's minute-resolution ISO times.
	observationTimeLayout = "2006-01-02T15:04"

	defaultPressureHpa = 1013
	defaultVisibilityM = 10000

	// currentWindowHours is the same-day window over which current-conditions
	// min/max are derived.
	currentWindowHours = 24

	// seriesStride is the resampling interval of the forecast series, in
	// hourly samples.
	seriesStride = 3

	// DefaultMaxSeriesEntries caps forecast output at 5 days of 3-hour steps.
	DefaultMaxSeriesEntries = 40
)

// CurrentFromPayload converts a provider-native current observation plus its
// same-day hourly temperature window into canonical CurrentConditions.
//
// Wind speed stays in km/h (the provider's native unit); no conversion
// happens here. Min/max are true extrema over the first 24 window samples,
// rounded independently. A window shorter than 24 samples is used as-is; an
// empty window falls back to the observed temperature.
func CurrentFromPayload(cur openmeteo.CurrentObservation, hourlyTemps []float64, loc Location) CurrentConditions {
	feelsLike := cur.Temperature2m
	if cur.ApparentTemperature != nil {
		feelsLike = *cur.ApparentTemperature
	}

	pressure := float64(defaultPressureHpa)
	if cur.SurfacePressure != nil {
		pressure = *cur.SurfacePressure
	}

	minC, maxC := dailyExtremes(hourlyTemps, cur.Temperature2m)
	sunrise, sunset := approximateSunTimes(time.Now())

	return CurrentConditions{
		Location:       loc,
		ObservedAt:     parseObservationTime(cur.Time),
		TemperatureC:   cur.Temperature2m,
		FeelsLikeC:     feelsLike,
		MinC:           minC,
		MaxC:           maxC,
		HumidityPct:    int(math.Round(cur.RelativeHumidity2m)),
		PressureHpa:    int(math.Round(pressure)),
		WindSpeedKmh:   cur.WindSpeed10m,
		WindBearingDeg: cur.WindDirection10m,
		VisibilityM:    defaultVisibilityM,
		Condition:      Describe(cur.WeatherCode),
		SunriseApprox:  sunrise,
		SunsetApprox:   sunset,
	}
}

// SeriesFromHourly resamples a provider-native hourly series at a fixed
// 3-hour stride into a ForecastSeries, producing at most maxEntries entries
// (DefaultMaxSeriesEntries when maxEntries <= 0).
//
// All parallel-array access is bound-checked: a missing or short field
// array yields defaults, never a failure. Samples with an unparseable
// timestamp are skipped. Per-entry min/max are the fixed ±2°C
// spreadEstimate, deliberately distinct from the windowed dailyExtremes of
// current conditions. Precipitation probability arrives as a percentage and
// is stored as a fraction in [0,1]; absent means 0.
func SeriesFromHourly(hourly openmeteo.HourlySeries, loc Location, maxEntries int) ForecastSeries {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxSeriesEntries
	}

	entries := make([]ForecastEntry, 0, maxEntries)
	for i := 0; i < len(hourly.Time) && len(entries) < maxEntries; i += seriesStride {
		ts, err := time.ParseInLocation(observationTimeLayout, hourly.Time[i], time.Local)
		if err != nil {
			continue
		}

		temp := floatAt(hourly.Temperature2m, i, 0)
		minC, maxC := spreadEstimate(temp)

		entries = append(entries, ForecastEntry{
			EpochSeconds:      ts.Unix(),
			TemperatureC:      temp,
			FeelsLikeC:        temp,
			MinC:              minC,
			MaxC:              maxC,
			HumidityPct:       int(math.Round(floatAt(hourly.RelativeHumidity2m, i, 0))),
			WindSpeedKmh:      floatAt(hourly.WindSpeed10m, i, 0),
			PrecipProbability: clamp01(floatAt(hourly.PrecipitationProbability, i, 0) / 100),
			Condition:         Describe(intAt(hourly.WeatherCode, i, -1)),
		})
	}

	// Input order is chronological and the stride preserves it, so entries
	// are strictly increasing without sorting.
	return ForecastSeries{Location: loc, Entries: entries}
}

// dailyExtremes returns the rounded minimum and maximum temperature over the
// first currentWindowHours samples of the window. An empty window falls back
// to the observed temperature.
func dailyExtremes(temps []float64, fallback float64) (minC, maxC float64) {
	window := temps
	if len(window) > currentWindowHours {
		window = window[:currentWindowHours]
	}
	if len(window) == 0 {
		r := math.Round(fallback)
		return r, r
	}

	lo, hi := window[0], window[0]
	for _, t := range window[1:] {
		if t < lo {
			lo = t
		}
		if t > hi {
			hi = t
		}
	}
	return math.Round(lo), math.Round(hi)
}

// spreadEstimate is the forecast-entry min/max: a fixed symmetric ±2°C
// spread around the point temperature, not a windowed extremum.
func spreadEstimate(temp float64) (minC, maxC float64) {
	return math.Round(temp - 2), math.Round(temp + 2)
}

// approximateSunTimes synthesizes sunrise and sunset as 06:00 and 18:00
// local time of the given day. Approximation only, not astronomical.
func approximateSunTimes(now time.Time) (sunrise, sunset int64) {
	y, m, d := now.Date()
	rise := time.Date(y, m, d, 6, 0, 0, 0, now.Location())
	set := time.Date(y, m, d, 18, 0, 0, 0, now.Location())
	return rise.Unix(), set.Unix()
}

func parseObservationTime(s string) int64 {
	ts, err := time.ParseInLocation(observationTimeLayout, s, time.Local)
	if err != nil {
		return time.Now().Unix()
	}
	return ts.Unix()
}

func floatAt(values []float64, i int, def float64) float64 {
	if i < len(values) {
		return values[i]
	}
	return def
}

func intAt(values []int, i, def int) int {
	if i < len(values) {
		return values[i]
	}
	return def
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
