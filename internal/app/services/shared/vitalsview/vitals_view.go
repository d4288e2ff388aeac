package vitalsview

import (
	"esperanza-kiosk/internal/app/models"
	"esperanza-kiosk/internal/pkg/constvars"
	"esperanza-kiosk/internal/pkg/dto/responses"
	"esperanza-kiosk/internal/pkg/utils"
	"time"
)

// Summary renders a vitals record for display. Missing values, and a BMI
// that cannot be computed, render as the placeholder.
func Summary(record models.VitalsRecord) responses.SummaryVitals {
	bmi := record.BMI
	if bmi == nil {
		bmi = models.CalculateBMI(record.WeightKg, record.HeightCm)
	}

	bloodPressure := record.BloodPressure
	if bloodPressure == "" {
		bloodPressure = constvars.PlaceholderMissingValue
	} else {
		bloodPressure += " mmHg"
	}

	return responses.SummaryVitals{
		Weight:        utils.FormatMeasurement(record.WeightKg, 1, "kg"),
		Height:        utils.FormatMeasurement(record.HeightCm, 1, "cm"),
		HeartRate:     utils.FormatMeasurement(record.HeartRate, 0, "bpm"),
		SpO2:          utils.FormatMeasurement(record.SpO2, 0, "%"),
		Temperature:   utils.FormatMeasurement(record.Temperature, 1, "°C"),
		BloodPressure: bloodPressure,
		BMI:           utils.FormatMeasurement(bmi, 1, ""),
	}
}

func Profile(profile models.PatientProfile, now time.Time) responses.PatientProfile {
	return responses.PatientProfile{
		PatientID:     profile.PatientID,
		Name:          profile.FullName(),
		Username:      profile.Username,
		Sex:           profile.Sex,
		Age:           utils.CalculateAge(profile.DateOfBirth, now),
		DateOfBirth:   profile.DateOfBirth,
		Address:       profile.Address,
		ContactNumber: profile.ContactNumber,
	}
}

func QueueEntry(entry models.QueueEntry, now time.Time) responses.QueueEntry {
	view := responses.QueueEntry{
		ID:             entry.ID,
		QueueNumber:    entry.QueueNumber,
		PriorityStatus: entry.PriorityStatus,
		PriorityCode:   entry.PriorityCode,
		Status:         entry.Status,
		PatientID:      entry.Patient.PatientID,
		PatientName:    entry.Patient.FullName(),
		Sex:            entry.Patient.Sex,
		Age:            utils.CalculateAge(entry.Patient.DateOfBirth, now),
		EnteredAt:      entry.EnteredAt,
	}
	if view.QueueNumber == "" {
		view.QueueNumber = constvars.PlaceholderQueueNumber
	}
	if entry.LatestVitals != nil {
		view.Vitals = Summary(*entry.LatestVitals)
	} else {
		view.Vitals = Summary(models.VitalsRecord{})
	}
	return view
}

func VitalsRow(record models.VitalsRecord) responses.VitalsRow {
	return responses.VitalsRow{
		ID:         record.ID,
		RecordedAt: record.RecordedAt,
		Vitals:     Summary(record),
	}
}
