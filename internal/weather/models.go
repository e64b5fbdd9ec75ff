package weather

// Category represents a normalized high-level weather condition class.
type Category string

const (
	CategoryUnknown Category = "unknown"
	CategoryClear   Category = "clear"
	CategoryClouds  Category = "clouds"
	CategoryMist    Category = "mist"
	CategoryDrizzle Category = "drizzle"
	CategoryRain    Category = "rain"
	CategoryStorm   Category = "storm"
)

// Condition is the display triple derived from a provider weather code.
// It is a stateless value with no identity; Describe is its only producer.
type Condition struct {
	Category    Category `json:"category"`
	Description string   `json:"description"`
	IconKey     string   `json:"iconKey"`
}

// Location is a resolved place. It is produced once per fetch cycle by the
// geocoder (or synthesized for coordinate lookups) and never persisted.
type Location struct {
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	CountryCode string  `json:"countryCode"`
	Admin1      string  `json:"admin1,omitempty"`
	Population  int64   `json:"population,omitempty"`
}

// CurrentConditions is the canonical, provider-independent view of current
// weather. Constructed fresh on every fetch and never mutated.
//
// SunriseApprox/SunsetApprox are synthesized fixed local times (06:00 and
// 18:00 of the current day), not astronomical values.
type CurrentConditions struct {
	Location       Location  `json:"location"`
	ObservedAt     int64     `json:"observedAtEpochSeconds"`
	TemperatureC   float64   `json:"temperatureC"`
	FeelsLikeC     float64   `json:"feelsLikeC"`
	MinC           float64   `json:"minC"`
	MaxC           float64   `json:"maxC"`
	HumidityPct    int       `json:"humidityPct"`
	PressureHpa    int       `json:"pressureHpa"`
	WindSpeedKmh   float64   `json:"windSpeedKmh"`
	WindBearingDeg float64   `json:"windBearingDeg"`
	VisibilityM    int       `json:"visibilityM"`
	Condition      Condition `json:"condition"`
	SunriseApprox  int64     `json:"sunriseApprox,omitempty"`
	SunsetApprox   int64     `json:"sunsetApprox,omitempty"`

	// Synthetic marks placeholder data returned when the upstream failed.
	Synthetic bool `json:"synthetic"`
}

// ForecastEntry is a single resampled point of the forecast series.
// MinC/MaxC here are a fixed ±2°C spread around the point temperature, not
// windowed extrema; see SeriesFromHourly. Wind bearing is not part of the
// forecast schema because the hourly query never requests it.
type ForecastEntry struct {
	EpochSeconds      int64     `json:"epochSeconds"`
	TemperatureC      float64   `json:"temperatureC"`
	FeelsLikeC        float64   `json:"feelsLikeC"`
	MinC              float64   `json:"minC"`
	MaxC              float64   `json:"maxC"`
	HumidityPct       int       `json:"humidityPct"`
	WindSpeedKmh      float64   `json:"windSpeedKmh"`
	PrecipProbability float64   `json:"precipitationProbability"` // fraction in [0,1]
	Condition         Condition `json:"condition"`
}

// ForecastSeries is the resampled forecast for one location. Entries are
// strictly increasing in EpochSeconds with a constant 3-hour stride.
// Rebuilt wholesale on every fetch.
type ForecastSeries struct {
	Location  Location        `json:"location"`
	Entries   []ForecastEntry `json:"entries"`
	Synthetic bool            `json:"synthetic"`
}
