// Package format holds display-side formatting helpers. The canonical
// weather schema stores raw values; anything here is presentation only.
package format

import (
	"fmt"
	"math"
)

// compassLabels starts at North and rotates clockwise in 45° steps.
var compassLabels = [8]string{
	"Bắc", "Đông Bắc", "Đông", "Đông Nam", "Nam", "Tây Nam", "Tây", "Tây Bắc",
}

// CompassFromBearing returns the 8-point compass label for a bearing in
// degrees. 360 wraps back to North.
func CompassFromBearing(degrees float64) string {
	idx := int(math.Round(degrees/45)) % 8
	if idx < 0 {
		idx += 8
	}
	return compassLabels[idx]
}

// WindSpeedKmhFromMS converts a wind speed in m/s to km/h, rounded for
// display. The canonical schema is km/h end to end (Open-Meteo's native
// unit); this exists for m/s-denominated sources and converts exactly once.
func WindSpeedKmhFromMS(speed float64) int {
	return int(math.Round(speed * 3.6))
}

// Temperature renders a Celsius value for display, e.g. "32°C".
func Temperature(tempC float64) string {
	return fmt.Sprintf("%d°C", int(math.Round(tempC)))
}
