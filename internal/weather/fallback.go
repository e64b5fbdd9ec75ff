package weather

import "time"

// Synthetic placeholder datasets returned when location resolution or an
// upstream fetch fails. Structurally valid, clearly marked Synthetic, and
// deterministic so callers (and tests) see stable shapes.

var placeholderCoord = Location{
	Name:        "Hồ Chí Minh",
	Latitude:    10.8231,
	Longitude:   106.6297,
	CountryCode: "VN",
}

// placeholderCycle drives the synthetic forecast through a plausible
// day-shaped temperature swing and a matching condition rotation.
var placeholderCycle = []struct {
	tempOffset float64
	code       int
	precipPct  float64
}{
	{0, 0, 10},
	{2, 1, 10},
	{4, 2, 20},
	{3, 2, 30},
	{1, 3, 40},
	{-1, 80, 60},
	{-2, 61, 50},
	{-1, 3, 20},
}

// placeholderCurrent builds the synthetic current-conditions dataset. The
// location name echoes the caller's original query so the substitution is
// traceable.
func placeholderCurrent(name string) CurrentConditions {
	now := time.Now()
	loc := placeholderCoord
	loc.Name = name

	sunrise, sunset := approximateSunTimes(now)

	return CurrentConditions{
		Location:       loc,
		ObservedAt:     now.Unix(),
		TemperatureC:   32,
		FeelsLikeC:     36,
		MinC:           30,
		MaxC:           34,
		HumidityPct:    70,
		PressureHpa:    defaultPressureHpa,
		WindSpeedKmh:   12.6,
		WindBearingDeg: 180,
		VisibilityM:    defaultVisibilityM,
		Condition:      Describe(2),
		SunriseApprox:  sunrise,
		SunsetApprox:   sunset,
		Synthetic:      true,
	}
}

// placeholderSeries builds a synthetic forecast series: maxEntries entries
// at the regular 3-hour stride starting from the next whole hour.
func placeholderSeries(name string, maxEntries int) ForecastSeries {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxSeriesEntries
	}

	loc := placeholderCoord
	loc.Name = name

	base := time.Now().Truncate(time.Hour).Add(time.Hour)
	const baseTemp = 28.0

	entries := make([]ForecastEntry, 0, maxEntries)
	for i := 0; i < maxEntries; i++ {
		step := placeholderCycle[i%len(placeholderCycle)]
		temp := baseTemp + step.tempOffset
		minC, maxC := spreadEstimate(temp)

		entries = append(entries, ForecastEntry{
			EpochSeconds:      base.Add(time.Duration(i) * 3 * time.Hour).Unix(),
			TemperatureC:      temp,
			FeelsLikeC:        temp,
			MinC:              minC,
			MaxC:              maxC,
			HumidityPct:       75,
			WindSpeedKmh:      10,
			PrecipProbability: step.precipPct / 100,
			Condition:         Describe(step.code),
		})
	}

	return ForecastSeries{Location: loc, Entries: entries, Synthetic: true}
}
