package weather

// conditionTable maps Open-Meteo WMO weather codes to display conditions.
// Adding support for a new code is a table edit, not a logic change.
var conditionTable = map[int]Condition{
	0:  {CategoryClear, "trời quang", "01d"},
	1:  {CategoryClear, "chủ yếu quang", "01d"},
	2:  {CategoryClouds, "một phần có mây", "02d"},
	3:  {CategoryClouds, "nhiều mây", "03d"},
	45: {CategoryMist, "sương mù", "50d"},
	48: {CategoryMist, "sương mù đông", "50d"},
	51: {CategoryDrizzle, "mưa phùn nhẹ", "09d"},
	53: {CategoryDrizzle, "mưa phùn vừa", "09d"},
	55: {CategoryDrizzle, "mưa phùn nặng", "09d"},
	61: {CategoryRain, "mưa nhẹ", "10d"},
	63: {CategoryRain, "mưa vừa", "10d"},
	65: {CategoryRain, "mưa nặng", "10d"},
	80: {CategoryRain, "mưa rào nhẹ", "09d"},
	81: {CategoryRain, "mưa rào vừa", "09d"},
	82: {CategoryRain, "mưa rào nặng", "09d"},
	95: {CategoryStorm, "dông bão", "11d"},
}

// defaultCondition is returned for any code missing from the table.
var defaultCondition = Condition{CategoryUnknown, "không xác định", "01d"}

// Describe maps a provider weather code to its display condition.
// Total over all ints; unknown codes get defaultCondition, never an error.
func Describe(code int) Condition {
	if c, ok := conditionTable[code]; ok {
		return c
	}
	return defaultCondition
}
