package utils

import (
	"esperanza-kiosk/internal/pkg/constvars"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatMeasurement(t *testing.T) {
	assert.Equal(t, "70.5 kg", FormatMeasurement(Float64Ptr(70.5), 1, "kg"))
	assert.Equal(t, "98%", FormatMeasurement(Float64Ptr(98), 0, "%"))
	assert.Equal(t, "22.9", FormatMeasurement(Float64Ptr(22.857), 1, ""))
	assert.Equal(t, constvars.PlaceholderMissingValue, FormatMeasurement(nil, 1, "kg"))
	assert.Equal(t, constvars.PlaceholderMissingValue, FormatMeasurement(Float64Ptr(math.NaN()), 1, "kg"))
	assert.Equal(t, constvars.PlaceholderMissingValue, FormatMeasurement(Float64Ptr(math.Inf(1)), 1, "kg"))
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 36.6, RoundTo(36.649, 1))
	assert.Equal(t, 37.0, RoundTo(36.96, 1))
}

func TestCalculateAge(t *testing.T) {
	now := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 34, CalculateAge("1990-05-17", now))
	assert.Equal(t, 35, CalculateAge("1990-03-10", now))
	assert.Equal(t, 0, CalculateAge("", now))
	assert.Equal(t, 0, CalculateAge("not-a-date", now))
	assert.Equal(t, 34, CalculateAge("1990-05-17T00:00:00Z", now))
}

func TestFormatFullName(t *testing.T) {
	assert.Equal(t, "Maria S. Santos", FormatFullName("Maria", "S", "Santos"))
	assert.Equal(t, "Maria Santos", FormatFullName("Maria", "", "Santos"))
	assert.Equal(t, "Santos", FormatFullName("", "", "Santos"))
}
