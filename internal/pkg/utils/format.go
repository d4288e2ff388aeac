package utils

import (
	"esperanza-kiosk/internal/pkg/constvars"
	"math"
	"strconv"
)

// FormatMeasurement renders value with a fixed number of decimals and an
// optional unit suffix. Nil or non-finite values render as the missing placeholder.
func FormatMeasurement(value *float64, decimals int, unit string) string {
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) {
		return constvars.PlaceholderMissingValue
	}
	formatted := strconv.FormatFloat(*value, 'f', decimals, 64)
	if unit == "" {
		return formatted
	}
	if unit == "%" {
		return formatted + unit
	}
	return formatted + " " + unit
}

func RoundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}

func Float64Ptr(value float64) *float64 {
	return &value
}
