package vitalsview

import (
	"esperanza-kiosk/internal/app/models"
	"esperanza-kiosk/internal/pkg/constvars"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptr(value float64) *float64 {
	return &value
}

func TestSummary(t *testing.T) {
	t.Run("Full Record", func(t *testing.T) {
		view := Summary(models.VitalsRecord{
			WeightKg:      ptr(70),
			HeightCm:      ptr(175),
			HeartRate:     ptr(72),
			SpO2:          ptr(98),
			Temperature:   ptr(36.6),
			BloodPressure: "120/80",
		})

		assert.Equal(t, "70.0 kg", view.Weight)
		assert.Equal(t, "175.0 cm", view.Height)
		assert.Equal(t, "72 bpm", view.HeartRate)
		assert.Equal(t, "98%", view.SpO2)
		assert.Equal(t, "36.6 °C", view.Temperature)
		assert.Equal(t, "120/80 mmHg", view.BloodPressure)
		assert.Equal(t, "22.9", view.BMI)
	})

	t.Run("Empty Record", func(t *testing.T) {
		view := Summary(models.VitalsRecord{})

		assert.Equal(t, constvars.PlaceholderMissingValue, view.Weight)
		assert.Equal(t, constvars.PlaceholderMissingValue, view.BloodPressure)
		assert.Equal(t, constvars.PlaceholderMissingValue, view.BMI)
	})

	t.Run("Zero Height Has No BMI", func(t *testing.T) {
		view := Summary(models.VitalsRecord{WeightKg: ptr(70), HeightCm: ptr(0)})
		assert.Equal(t, constvars.PlaceholderMissingValue, view.BMI)
	})
}

func TestQueueEntry(t *testing.T) {
	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

	view := QueueEntry(models.QueueEntry{
		ID:             "Q-1",
		PriorityStatus: constvars.PriorityPriority,
		PriorityCode:   "E02",
		Status:         constvars.QueueStatusWaiting,
		Patient: models.PatientProfile{
			PatientID:     "P-001",
			FirstName:     "Maria",
			MiddleInitial: "L",
			LastName:      "Santos",
			DateOfBirth:   "1990-05-20",
		},
	}, now)

	assert.Equal(t, constvars.PlaceholderQueueNumber, view.QueueNumber)
	assert.Equal(t, "Maria L. Santos", view.PatientName)
	assert.Equal(t, 34, view.Age)
	assert.Equal(t, constvars.PlaceholderMissingValue, view.Vitals.Weight)
}
