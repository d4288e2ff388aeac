package models

import (
	"math"
	"time"
)

// VitalsRecord is one set of vitals as the backend stores it.
type VitalsRecord struct {
	ID            string     `json:"id,omitempty"`
	PatientID     string     `json:"patient_id"`
	WeightKg      *float64   `json:"weight_kg,omitempty"`
	HeightCm      *float64   `json:"height_cm,omitempty"`
	HeartRate     *float64   `json:"heart_rate,omitempty"`
	SpO2          *float64   `json:"spo2,omitempty"`
	Temperature   *float64   `json:"temperature,omitempty"`
	BloodPressure string     `json:"blood_pressure,omitempty"`
	BMI           *float64   `json:"bmi,omitempty"`
	RecordedAt    *time.Time `json:"recorded_at,omitempty"`
}

type PatientVitals struct {
	Latest  *VitalsRecord
	History []VitalsRecord
}

// VitalsUpsert is a partial save to /receive-vitals/. An empty ID creates a record.
type VitalsUpsert struct {
	ID            string
	PatientID     string
	WeightKg      *float64
	HeightCm      *float64
	HeartRate     *float64
	SpO2          *float64
	Temperature   *float64
	BloodPressure string
	Complete      bool
}

// StaffVitalsEntry is a blood pressure reading typed in by staff from the
// records screen. Date is YYYY-MM-DD.
type StaffVitalsEntry struct {
	PatientID     string
	BloodPressure string
	Date          string
}

// SensorReading is what a measurement endpoint returned. Error carries the
// device message when no usable value was produced.
type SensorReading struct {
	Weight      *float64
	Height      *float64
	HeartRate   *float64
	SpO2        *float64
	Temperature *float64
	Error       string
}

// CalculateBMI returns kg/m², or nil when either input is missing, not
// positive or the result is not finite.
func CalculateBMI(weightKg, heightCm *float64) *float64 {
	if weightKg == nil || heightCm == nil {
		return nil
	}
	heightM := *heightCm / 100
	if math.IsNaN(heightM) || math.IsInf(heightM, 0) || heightM <= 0 {
		return nil
	}
	bmi := *weightKg / (heightM * heightM)
	if math.IsNaN(bmi) || math.IsInf(bmi, 0) || bmi <= 0 {
		return nil
	}
	return &bmi
}

// LatestVitals is the per-patient copy of the last summarized snapshot. The
// summary falls back to it for metrics the current snapshot lacks.
type LatestVitals struct {
	Vitals      VitalsRecord  `json:"vitals"`
	Triage      *TriageResult `json:"triage,omitempty"`
	QueueNumber string        `json:"queue_number,omitempty"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// FillMissing copies into r every metric it lacks from fallback and
// recomputes BMI from the merged weight and height.
func (r *VitalsRecord) FillMissing(fallback VitalsRecord) {
	if r.WeightKg == nil {
		r.WeightKg = fallback.WeightKg
	}
	if r.HeightCm == nil {
		r.HeightCm = fallback.HeightCm
	}
	if r.HeartRate == nil {
		r.HeartRate = fallback.HeartRate
	}
	if r.SpO2 == nil {
		r.SpO2 = fallback.SpO2
	}
	if r.Temperature == nil {
		r.Temperature = fallback.Temperature
	}
	if r.BloodPressure == "" {
		r.BloodPressure = fallback.BloodPressure
	}
	r.BMI = CalculateBMI(r.WeightKg, r.HeightCm)
}

// IsComplete reports whether every metric the wizard collects is present.
func (r VitalsRecord) IsComplete() bool {
	return r.WeightKg != nil && r.HeightCm != nil && r.HeartRate != nil &&
		r.SpO2 != nil && r.Temperature != nil && r.BloodPressure != ""
}
